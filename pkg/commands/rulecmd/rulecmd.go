// Package rulecmd lists and edits the rules file.
package rulecmd

import (
	"github.com/arthur-debert/fsorg/pkg/filesystem"
	"github.com/arthur-debert/fsorg/pkg/logging"
	"github.com/arthur-debert/fsorg/pkg/rules"
	"github.com/arthur-debert/fsorg/pkg/types"
)

// Options defines the options shared by the rule commands.
type Options struct {
	RulesFile string
	FS        types.FS
}

func (o Options) fs() types.FS {
	if o.FS == nil {
		return filesystem.NewOS()
	}
	return o.FS
}

// List returns the rules in precedence order
func List(opts Options) ([]types.Rule, error) {
	f, err := rules.Load(opts.fs(), opts.RulesFile)
	if err != nil {
		return nil, err
	}
	return f.Rules.List(), nil
}

// Add adds a rule, or changes the destination of an existing pattern, and
// saves the rules file.
func Add(opts Options, pattern, destination string) ([]types.Rule, error) {
	log := logging.GetLogger("core.commands")
	fsys := opts.fs()

	f, err := rules.Load(fsys, opts.RulesFile)
	if err != nil {
		return nil, err
	}
	if err := f.Rules.Add(pattern, destination); err != nil {
		return nil, err
	}
	if err := rules.Save(fsys, opts.RulesFile, f); err != nil {
		return nil, err
	}

	log.Info().
		Str("command", "RuleAdd").
		Str("pattern", pattern).
		Str("destination", destination).
		Msg("Command finished")
	return f.Rules.List(), nil
}

// Remove deletes the rule with the given pattern and saves the rules file.
func Remove(opts Options, pattern string) ([]types.Rule, error) {
	log := logging.GetLogger("core.commands")
	fsys := opts.fs()

	f, err := rules.Load(fsys, opts.RulesFile)
	if err != nil {
		return nil, err
	}
	if err := f.Rules.Remove(pattern); err != nil {
		return nil, err
	}
	if err := rules.Save(fsys, opts.RulesFile, f); err != nil {
		return nil, err
	}

	log.Info().Str("command", "RuleRemove").Str("pattern", pattern).Msg("Command finished")
	return f.Rules.List(), nil
}
