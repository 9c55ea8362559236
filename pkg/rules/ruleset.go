package rules

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/types"
)

// RuleSet is an ordered list of rules keyed by pattern
type RuleSet []types.Rule

// DefaultRules returns the rules a fresh rules file is seeded with
func DefaultRules() RuleSet {
	return RuleSet{
		{Pattern: `(?i)^.*\.(jpg|jpeg|png|gif|bmp|webp|tiff?)$`, Destination: "Images"},
		{Pattern: `(?i)^.*\.(pdf|docx?|xlsx?|pptx?|odt|ods|txt|rtf|csv|md)$`, Destination: "Documents"},
	}
}

// Validate checks that a rule has a compilable pattern and a destination
func Validate(rule types.Rule) error {
	if rule.Pattern == "" {
		return errors.New(errors.ErrRuleInvalid, "rule pattern is empty")
	}
	if strings.TrimSpace(rule.Destination) == "" {
		return errors.Newf(errors.ErrRuleInvalid, "rule %q has an empty destination", rule.Pattern).
			WithDetail("pattern", rule.Pattern)
	}
	if _, err := regexp.Compile(rule.Pattern); err != nil {
		return errors.Wrapf(err, errors.ErrRuleInvalid, "rule pattern %q does not compile", rule.Pattern).
			WithDetail("pattern", rule.Pattern)
	}
	return nil
}

// Add appends a rule, or replaces the destination of an existing rule with
// the same pattern without moving it.
func (s *RuleSet) Add(pattern, destination string) error {
	rule := types.Rule{Pattern: pattern, Destination: destination}
	if err := Validate(rule); err != nil {
		return err
	}

	if i := s.index(pattern); i >= 0 {
		(*s)[i].Destination = destination
		return nil
	}
	*s = append(*s, rule)
	return nil
}

// Remove deletes the rule with the given pattern
func (s *RuleSet) Remove(pattern string) error {
	i := s.index(pattern)
	if i < 0 {
		return errors.Newf(errors.ErrRuleNotFound, "no rule with pattern %q", pattern).
			WithDetail("pattern", pattern)
	}
	*s = append((*s)[:i], (*s)[i+1:]...)
	return nil
}

// List returns a copy of the rules in order
func (s RuleSet) List() []types.Rule {
	out := make([]types.Rule, len(s))
	copy(out, s)
	return out
}

func (s RuleSet) index(pattern string) int {
	for i, r := range s {
		if r.Pattern == pattern {
			return i
		}
	}
	return -1
}
