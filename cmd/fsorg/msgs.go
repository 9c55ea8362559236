package fsorg

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Organize files into folders by name rules"
	MsgOrganizeShort    = "Move matching files into their rule destinations now"
	MsgPlanShort        = "Build the moves without executing them, optionally exporting a plan file"
	MsgApplyShort       = "Execute a previously exported plan file"
	MsgShowShort        = "Preview the moves of a plan file"
	MsgRulesShort       = "List and edit the organizing rules"
	MsgRulesListShort   = "List rules in precedence order"
	MsgRulesAddShort    = "Add a rule or change the destination of an existing pattern"
	MsgRulesRemoveShort = "Remove the rule with the given pattern"
	MsgHistoryShort     = "List recorded runs"
	MsgWatchShort       = "Organize continuously as new files arrive"
	MsgVersionShort     = "Print version information"

	// Status messages
	MsgPlanExported = "Action Plan has been exported to: %s\n"
	MsgRuleAdded    = "Rule added: %s -> %s\n"
	MsgRuleRemoved  = "Rule removed: %s\n"
	MsgJournalOff   = "The journal is disabled (journal.enabled = false)."
	MsgWatching     = "Watching %s, press Ctrl-C to stop\n"
	MsgVersionLine  = "fsorg version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagSource      = "Directory to organize (default: current directory)"
	MsgFlagDestination = "Root directory rule destinations are created under (default: current directory)"
	MsgFlagRules       = "Rules file (toml, yaml or json)"
	MsgFlagSettings    = "Settings file (default: $XDG_CONFIG_HOME/fsorg/config.toml)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagVerify      = "Compare checksums before removing the source of a cross-device move"
	MsgFlagLimit       = "Number of runs to list, -1 for all"
	MsgFlagDebounce    = "How long the directory must be quiet before a pass"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/organize-long.txt
	msgOrganizeLongRaw string
	MsgOrganizeLong    = strings.TrimSpace(msgOrganizeLongRaw)

	//go:embed msgs/organize-example.txt
	msgOrganizeExampleRaw string
	MsgOrganizeExample    = strings.TrimRight(msgOrganizeExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/plan-example.txt
	msgPlanExampleRaw string
	MsgPlanExample    = strings.TrimRight(msgPlanExampleRaw, "\n")

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/rules-long.txt
	msgRulesLongRaw string
	MsgRulesLong    = strings.TrimSpace(msgRulesLongRaw)

	//go:embed msgs/rules-example.txt
	msgRulesExampleRaw string
	MsgRulesExample    = strings.TrimRight(msgRulesExampleRaw, "\n")

	//go:embed msgs/history-long.txt
	msgHistoryLongRaw string
	MsgHistoryLong    = strings.TrimSpace(msgHistoryLongRaw)

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
