package rules

import (
	"embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/temirov/codescan/internal/finding"
)

const (
	defaultRulesFileNameConstant       = "default_rules.yaml"
	anchoredPatternTemplateConstant    = "^(?:%s)$"
	ruleParseErrorTemplateConstant     = "invalid rule table: %w"
	ruleReadErrorTemplateConstant      = "unable to read rule table %s: %w"
	rulePatternErrorTemplateConstant   = "invalid rule pattern %q: %w"
	ruleSelectorErrorTemplateConstant  = "rule %d must set exactly one of name or match"
	ruleSuggestionErrorTemplateConstant = "rule %d has no suggestion"
)

//go:embed default_rules.yaml
var defaultRulesContent embed.FS

// MatchKind distinguishes literal-name rules from pattern rules.
type MatchKind string

// Supported match kinds.
const (
	MatchKindExact   MatchKind = "exact"
	MatchKindPattern MatchKind = "pattern"
)

// ruleRecord mirrors one entry of the YAML rule source.
type ruleRecord struct {
	Name       string `yaml:"name,omitempty"`
	Match      string `yaml:"match,omitempty"`
	Suggestion string `yaml:"suggestion"`
}

// ExactRule binds a literal notice text to a suggestion.
type ExactRule struct {
	Name       string
	Suggestion string
}

// PatternRule binds an anchored regular expression to a suggestion.
type PatternRule struct {
	Expression *regexp.Regexp
	Suggestion string
}

// Table is the immutable two-tier rule table queried by the issue resolver.
type Table struct {
	exactRules   []ExactRule
	patternRules []PatternRule
}

// ParseTable compiles a rule table from YAML content. Loading is fail-fast:
// a record with both or neither of name and match, a missing suggestion, or
// an uncompilable pattern aborts with an error. Records are split into the
// exact and pattern tiers preserving their relative order within each tier.
func ParseTable(content []byte) (*Table, error) {
	var records []ruleRecord
	if unmarshalError := yaml.Unmarshal(content, &records); unmarshalError != nil {
		return nil, fmt.Errorf(ruleParseErrorTemplateConstant, unmarshalError)
	}

	table := &Table{}

	for recordIndex, record := range records {
		hasName := len(record.Name) > 0
		hasMatch := len(record.Match) > 0

		if hasName == hasMatch {
			return nil, fmt.Errorf(ruleSelectorErrorTemplateConstant, recordIndex)
		}
		if len(record.Suggestion) == 0 {
			return nil, fmt.Errorf(ruleSuggestionErrorTemplateConstant, recordIndex)
		}

		if hasName {
			table.exactRules = append(table.exactRules, ExactRule{
				Name:       record.Name,
				Suggestion: record.Suggestion,
			})
			continue
		}

		expression, compileError := regexp.Compile(fmt.Sprintf(anchoredPatternTemplateConstant, record.Match))
		if compileError != nil {
			return nil, fmt.Errorf(rulePatternErrorTemplateConstant, record.Match, compileError)
		}
		table.patternRules = append(table.patternRules, PatternRule{
			Expression: expression,
			Suggestion: record.Suggestion,
		})
	}

	return table, nil
}

// LoadTable reads and compiles a rule table from the given path.
func LoadTable(path string) (*Table, error) {
	content, readError := os.ReadFile(path)
	if readError != nil {
		return nil, fmt.Errorf(ruleReadErrorTemplateConstant, path, readError)
	}
	return ParseTable(content)
}

// DefaultTable compiles the rule table embedded in the binary.
func DefaultTable() (*Table, error) {
	content, readError := defaultRulesContent.ReadFile(defaultRulesFileNameConstant)
	if readError != nil {
		return nil, readError
	}
	return ParseTable(content)
}

// RuleCount returns the number of loaded rules across both tiers.
func (table *Table) RuleCount() int {
	return len(table.exactRules) + len(table.patternRules)
}

// Resolve binds a notice to the first matching rule: exact rules are tried
// in table order, then pattern rules in table order. Unmatched notices are
// returned unresolved with no suggestion.
func (table *Table) Resolve(notice finding.Notice) finding.Issue {
	renderedMessage := notice.RenderedMessage()

	for _, exactRule := range table.exactRules {
		if exactRule.Name == renderedMessage {
			return finding.Issue{Notice: notice, Suggestion: exactRule.Suggestion, Resolved: true}
		}
	}

	for _, patternRule := range table.patternRules {
		if patternRule.Expression.MatchString(renderedMessage) {
			return finding.Issue{Notice: notice, Suggestion: patternRule.Suggestion, Resolved: true}
		}
	}

	return finding.Issue{Notice: notice}
}
