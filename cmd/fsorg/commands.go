package fsorg

import (
	"embed"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthur-debert/fsorg/internal/version"
	"github.com/arthur-debert/fsorg/pkg/cobrax/topics"
	"github.com/arthur-debert/fsorg/pkg/commands"
	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/journal"
	"github.com/arthur-debert/fsorg/pkg/logging"
	"github.com/arthur-debert/fsorg/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "fsorg",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Info(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVarP(&g.source, "source", "s", "", MsgFlagSource)
	pf.StringVarP(&g.destination, "destination", "d", "", MsgFlagDestination)
	pf.StringVarP(&g.rulesFile, "rules", "c", "", MsgFlagRules)
	pf.StringVar(&g.settings, "settings", "", MsgFlagSettings)
	pf.StringVar(&g.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newOrganizeCmd(g))
	rootCmd.AddCommand(newPlanCmd(g))
	rootCmd.AddCommand(newApplyCmd(g))
	rootCmd.AddCommand(newShowCmd(g))
	rootCmd.AddCommand(newRulesCmd(g))
	rootCmd.AddCommand(newHistoryCmd(g))
	rootCmd.AddCommand(newWatchCmd(g))
	rootCmd.AddCommand(newVersionCmd())

	tm, err := topics.Load(topicFiles, "topics", topics.Options{Renderer: topics.NewGlamourRenderer()})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	} else {
		tm.Install(rootCmd)
	}

	return rootCmd
}

func newOrganizeCmd(g *globalFlags) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:     "organize",
		Short:   MsgOrganizeShort,
		Long:    MsgOrganizeLong,
		Example: MsgOrganizeExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.resolve(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("source", s.Source).
				Str("destination", s.Destination).
				Str("rules", s.RulesFile).
				Msg("Organizing")

			result, err := commands.Organize(cmd.Context(), commands.OrganizeOptions{
				SourceDir:       s.Source,
				DestinationRoot: s.Destination,
				RulesFile:       s.RulesFile,
				VerifyCopy:      s.VerifyCopy || verify,
				DirMode:         s.DirMode,
				JournalPath:     s.JournalPath,
			})
			if err != nil {
				return err
			}

			report := ui.NewRunReport(result.RunID, result.Stats, result.Outcomes)
			return ui.RenderRun(cmd.OutOrStdout(), report, s.Format)
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, MsgFlagVerify)
	return cmd
}

func newPlanCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "plan [file]",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		Example: MsgPlanExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.resolve(cmd)
			if err != nil {
				return err
			}

			opts := commands.DryRunOptions{
				SourceDir:       s.Source,
				DestinationRoot: s.Destination,
				RulesFile:       s.RulesFile,
			}
			if len(args) == 1 {
				opts.PlanFile = args[0]
			}

			result, err := commands.DryRun(opts)
			if err != nil {
				return err
			}

			if result.PlanFile != "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgPlanExported, result.PlanFile)
				return err
			}
			return ui.RenderPlan(cmd.OutOrStdout(), result.Plan, s.Format)
		},
	}
}

func newApplyCmd(g *globalFlags) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:     "apply <file>",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.resolve(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Apply(cmd.Context(), commands.ApplyOptions{
				PlanFile:    args[0],
				VerifyCopy:  s.VerifyCopy || verify,
				DirMode:     s.DirMode,
				JournalPath: s.JournalPath,
			})
			if err != nil {
				return err
			}

			report := ui.NewRunReport(result.RunID, result.Stats, result.Outcomes)
			return ui.RenderRun(cmd.OutOrStdout(), report, s.Format)
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, MsgFlagVerify)
	return cmd
}

func newShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "show <file>",
		Short:   MsgShowShort,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.resolve(cmd)
			if err != nil {
				return err
			}

			p, err := commands.ShowPlan(nil, args[0])
			if err != nil {
				return err
			}
			return ui.RenderPlan(cmd.OutOrStdout(), p, s.Format)
		},
	}
}

func newRulesCmd(g *globalFlags) *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		Long:    MsgRulesLong,
		Example: MsgRulesExample,
		GroupID: "core",
	}

	rulesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: MsgRulesListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.resolve(cmd)
			if err != nil {
				return err
			}

			rules, err := commands.ListRules(commands.RulesOptions{RulesFile: s.RulesFile})
			if err != nil {
				return err
			}
			return ui.RenderRules(cmd.OutOrStdout(), rules, s.Format)
		},
	})

	rulesCmd.AddCommand(&cobra.Command{
		Use:   "add <pattern> <destination>",
		Short: MsgRulesAddShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.resolve(cmd)
			if err != nil {
				return err
			}

			rules, err := commands.AddRule(commands.RulesOptions{RulesFile: s.RulesFile}, args[0], args[1])
			if err != nil {
				return err
			}
			if ui.Resolve(s.Format, cmd.OutOrStdout()) == ui.FormatJSON {
				return ui.RenderRules(cmd.OutOrStdout(), rules, s.Format)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgRuleAdded, args[0], args[1])
			return err
		},
	})

	rulesCmd.AddCommand(&cobra.Command{
		Use:   "remove <pattern>",
		Short: MsgRulesRemoveShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.resolve(cmd)
			if err != nil {
				return err
			}

			rules, err := commands.RemoveRule(commands.RulesOptions{RulesFile: s.RulesFile}, args[0])
			if err != nil {
				return err
			}
			if ui.Resolve(s.Format, cmd.OutOrStdout()) == ui.FormatJSON {
				return ui.RenderRules(cmd.OutOrStdout(), rules, s.Format)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgRuleRemoved, args[0])
			return err
		},
	})

	return rulesCmd
}

func newHistoryCmd(g *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "history [run-id]",
		Short:   MsgHistoryShort,
		Long:    MsgHistoryLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.resolve(cmd)
			if err != nil {
				return err
			}
			if s.JournalPath == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), MsgJournalOff)
				return err
			}

			opts := commands.HistoryOptions{JournalPath: s.JournalPath, Limit: limit}
			if len(args) == 1 {
				opts.RunID = args[0]
			}
			result, err := commands.History(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if opts.RunID != "" {
				if len(result.Runs) == 0 {
					return errors.Newf(errors.ErrInvalidInput, "no run with id %s", opts.RunID)
				}
				entry := result.Runs[0]
				return ui.RenderRunDetail(cmd.OutOrStdout(), entry.Run, entry.Moves, s.Format)
			}
			runs := make([]journal.Run, 0, len(result.Runs))
			for _, entry := range result.Runs {
				runs = append(runs, entry.Run)
			}
			return ui.RenderRuns(cmd.OutOrStdout(), runs, s.Format)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, MsgFlagLimit)
	return cmd
}

func newWatchCmd(g *globalFlags) *cobra.Command {
	var debounce string

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.resolve(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debounce") {
				if s.Debounce, err = parseDebounce(debounce); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			if ui.Resolve(s.Format, out) != ui.FormatJSON {
				_, _ = fmt.Fprintf(out, MsgWatching, s.Source)
			}

			_, err = commands.Watch(ctx, commands.WatchOptions{
				SourceDir:       s.Source,
				DestinationRoot: s.Destination,
				RulesFile:       s.RulesFile,
				VerifyCopy:      s.VerifyCopy,
				DirMode:         s.DirMode,
				JournalPath:     s.JournalPath,
				Debounce:        s.Debounce,
			}, func(result *commands.RunResult) {
				report := ui.NewRunReport(result.RunID, result.Stats, result.Outcomes)
				if err := ui.RenderRun(out, report, s.Format); err != nil {
					log.Warn().Err(err).Msg("Failed to render pass summary")
				}
			})
			return err
		},
	}
	cmd.Flags().StringVar(&debounce, "debounce", "", MsgFlagDebounce)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionLine, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func parseDebounce(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, errors.Newf(errors.ErrInvalidInput, "invalid debounce %q", value).
			WithDetail("debounce", value)
	}
	return d, nil
}
