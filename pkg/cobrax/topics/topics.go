// Package topics adds free-form help topics to a Cobra command tree. Topics
// are markdown or text files read from an fs.FS, usually an embedded one, and
// are shown with "<app> help <topic>".
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/spf13/cobra"
)

// TopicManager holds the topics loaded for one command tree
type TopicManager struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// Topic is one help file
type Topic struct {
	Name    string
	Ext     string
	Content string
}

// Options configures the TopicManager
type Options struct {
	// Extensions defaults to [".md", ".txt"]
	Extensions []string

	// Renderer defaults to PlainRenderer
	Renderer Renderer
}

// Load reads every file with a supported extension under dir in fsys
func Load(fsys fs.FS, dir string, opts Options) (*TopicManager, error) {
	tm := &TopicManager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(tm.extensions) == 0 {
		tm.extensions = []string{".md", ".txt"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !tm.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		tm.topics[name] = &Topic{Name: name, Ext: ext, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to load help topics from %s", dir)
	}
	return tm, nil
}

func (tm *TopicManager) supported(ext string) bool {
	for _, valid := range tm.extensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// GetTopic retrieves a topic by name. A leading "--" is ignored so flag
// names can be looked up too.
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	topic, exists := tm.topics[name]
	return topic, exists
}

// ListTopics returns the topic names in alphabetical order
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Print writes the rendered topic to w
func (tm *TopicManager) Print(w io.Writer, topic *Topic) error {
	_, err := io.WriteString(w, tm.renderer.Render(topic.Content, topic.Ext))
	return err
}

// Install replaces the help command of rootCmd with one that also knows
// about the loaded topics. "help topics" lists them.
func (tm *TopicManager) Install(rootCmd *cobra.Command) {
	originalHelp := rootCmd.HelpFunc()
	app := rootCmd.Name()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + app + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + app + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				originalHelp(rootCmd, args)
				return nil
			}

			if args[0] == "topics" {
				return tm.printIndex(out, app)
			}

			if topic, exists := tm.GetTopic(args[0]); exists {
				return tm.Print(out, topic)
			}

			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil {
				return errors.Newf(errors.ErrInvalidInput, "unknown help topic %q", strings.Join(args, " "))
			}
			originalHelp(target, args)
			return nil
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.SetHelpCommand(helpCmd)
}

func (tm *TopicManager) printIndex(w io.Writer, app string) error {
	names := tm.ListTopics()
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "No help topics available.")
		return err
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", name)
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", app)
	_, err := io.WriteString(w, b.String())
	return err
}
