package rules

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/logging"
	"github.com/arthur-debert/fsorg/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is written to rules files created by this release
const CurrentVersion = "1"

// Format is an on-disk rules file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// File is the contents of a rules file
type File struct {
	Version string  `toml:"version" yaml:"version" json:"version"`
	Rules   RuleSet `toml:"rules" yaml:"rules" json:"rules"`
}

// FormatFor picks the encoding from the file extension, defaulting to TOML
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Load reads the rules file at path. A missing file is seeded with
// DefaultRules and written back; a file that cannot be parsed is an error.
func Load(fsys types.FS, path string) (*File, error) {
	logger := logging.GetLogger("rules.store")

	data, err := fsys.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read rules file %s", path).
				WithDetail("path", path)
		}

		logger.Info().Str("path", path).Msg("Rules file not found, seeding defaults")
		seeded := &File{Version: CurrentVersion, Rules: DefaultRules()}
		if err := Save(fsys, path, seeded); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Could not write seeded rules file")
		}
		return seeded, nil
	}

	f, err := Parse(data, FormatFor(path))
	if err != nil {
		if fe, ok := err.(*errors.FsorgError); ok {
			fe.WithDetail("path", path)
		}
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Str("version", f.Version).
		Int("rules", len(f.Rules)).
		Msg("Loaded rules file")
	return f, nil
}

// Parse decodes rules file contents in the given format
func Parse(data []byte, format Format) (*File, error) {
	var (
		f   *File
		err error
	)
	switch format {
	case FormatYAML, FormatJSON:
		f, err = parseYAML(data)
	default:
		f = &File{}
		if uerr := toml.Unmarshal(data, f); uerr != nil {
			err = errors.Wrap(uerr, errors.ErrConfigParse, "failed to parse TOML rules file")
		}
	}
	if err != nil {
		return nil, err
	}

	if f.Version == "" {
		f.Version = CurrentVersion
	}
	return f, nil
}

// parseYAML reads both the list form and the legacy mapping form. JSON is
// read as YAML. The mapping form keeps document order.
func parseYAML(data []byte) (*File, error) {
	f := &File{}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse rules file")
	}
	if len(doc.Content) == 0 {
		return f, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrConfigParse, "rules file must contain a mapping at the top level")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		switch key {
		case "version":
			f.Version = value.Value
		case "rules":
			rules, err := decodeRules(value)
			if err != nil {
				return nil, err
			}
			f.Rules = rules
		}
	}
	return f, nil
}

func decodeRules(node *yaml.Node) (RuleSet, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var rules RuleSet
		if err := node.Decode(&rules); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid rules list")
		}
		return rules, nil
	case yaml.MappingNode:
		rules := make(RuleSet, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return nil, errors.Newf(errors.ErrConfigParse,
					"destination for pattern %q must be a string (line %d)", k.Value, v.Line)
			}
			rules = append(rules, types.Rule{Pattern: k.Value, Destination: v.Value})
		}
		return rules, nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "rules must be a list or a mapping (line %d)", node.Line)
	}
}

// Save writes f to path in the format implied by its extension
func Save(fsys types.FS, path string, f *File) error {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	var (
		data []byte
		err  error
	)
	switch FormatFor(path) {
	case FormatYAML:
		data, err = yaml.Marshal(f)
	case FormatJSON:
		data, err = json.MarshalIndent(f, "", "  ")
		data = append(data, '\n')
	default:
		data, err = toml.Marshal(f)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to encode rules file").
			WithDetail("path", path)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to create directory for %s", path).
			WithDetail("path", path)
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write rules file %s", path).
			WithDetail("path", path)
	}
	return nil
}
