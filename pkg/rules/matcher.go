package rules

import (
	"regexp"

	"github.com/arthur-debert/fsorg/pkg/logging"
)

// CompiledRule is a rule whose pattern has been compiled
type CompiledRule struct {
	Matcher     *regexp.Regexp
	Destination string
}

// Matcher resolves file names to destinations. It is immutable once
// compiled and safe for concurrent use.
type Matcher struct {
	rules []CompiledRule
}

// Compile builds a matcher from the rule set, preserving rule order.
// Rules whose pattern does not compile are logged and dropped.
func Compile(set RuleSet) *Matcher {
	logger := logging.GetLogger("rules.matcher")

	m := &Matcher{rules: make([]CompiledRule, 0, len(set))}
	dropped := 0
	for _, rule := range set {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("pattern", rule.Pattern).
				Str("destination", rule.Destination).
				Msg("Dropping rule with invalid pattern")
			dropped++
			continue
		}
		m.rules = append(m.rules, CompiledRule{Matcher: re, Destination: rule.Destination})
	}

	logger.Debug().
		Int("compiled", len(m.rules)).
		Int("dropped", dropped).
		Msg("Compiled rules")
	return m
}

// Resolve returns the destination of the first rule matching name
func (m *Matcher) Resolve(name string) (string, bool) {
	for _, r := range m.rules {
		if r.Matcher.MatchString(name) {
			return r.Destination, true
		}
	}
	return "", false
}

// Len returns the number of usable rules
func (m *Matcher) Len() int {
	return len(m.rules)
}
