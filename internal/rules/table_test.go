package rules_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/codescan/internal/finding"
	"github.com/temirov/codescan/internal/rules"
)

const testRuleTableContent = `- name: "No license file."
  suggestion: "Add a LICENSE file."

- match: "No .* file\\."
  suggestion: "Add the missing file."

- match: ".* dependency version is not pinned\\."
  suggestion: "Pin the dependency."
`

func TestParseTableRejectsMalformedRecords(testInstance *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{
			name:    "not_a_sequence",
			content: "suggestion: lonely",
		},
		{
			name:    "both_name_and_match",
			content: "- name: \"No tests.\"\n  match: \"No .*\\\\.\"\n  suggestion: \"Add tests.\"\n",
		},
		{
			name:    "neither_name_nor_match",
			content: "- suggestion: \"Orphan suggestion.\"\n",
		},
		{
			name:    "missing_suggestion",
			content: "- name: \"No tests.\"\n",
		},
		{
			name:    "invalid_pattern",
			content: "- match: \"([unclosed\"\n  suggestion: \"Broken.\"\n",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			_, parseError := rules.ParseTable([]byte(testCase.content))
			require.Error(testInstance, parseError)
		})
	}
}

func TestResolvePrefersExactRulesOverPatterns(testInstance *testing.T) {
	table, parseError := rules.ParseTable([]byte(testRuleTableContent))
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, 3, table.RuleCount())

	testCases := []struct {
		name               string
		notice             finding.Notice
		expectedResolved   bool
		expectedSuggestion string
	}{
		{
			name:               "exact_rule_shadows_pattern",
			notice:             finding.Notice{Kind: finding.NoticeKindIssue, MessageTemplate: "No license file."},
			expectedResolved:   true,
			expectedSuggestion: "Add a LICENSE file.",
		},
		{
			name:               "pattern_rule_catches_other_absences",
			notice:             finding.Notice{Kind: finding.NoticeKindIssue, MessageTemplate: "No readme file."},
			expectedResolved:   true,
			expectedSuggestion: "Add the missing file.",
		},
		{
			name: "pattern_rule_on_rendered_text",
			notice: finding.Notice{
				Kind:            finding.NoticeKindIssue,
				MessageTemplate: "%s dependency version is not pinned.",
				Parameters:      []any{"flask"},
			},
			expectedResolved:   true,
			expectedSuggestion: "Pin the dependency.",
		},
		{
			name:             "pattern_is_anchored_to_the_whole_text",
			notice:           finding.Notice{Kind: finding.NoticeKindIssue, MessageTemplate: "Prefix: No readme file."},
			expectedResolved: false,
		},
		{
			name:             "unmatched_notice_stays_unresolved",
			notice:           finding.Notice{Kind: finding.NoticeKindIssue, MessageTemplate: "Unknown license."},
			expectedResolved: false,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			issue := table.Resolve(testCase.notice)
			require.Equal(testInstance, testCase.expectedResolved, issue.Resolved)
			require.Equal(testInstance, testCase.expectedSuggestion, issue.Suggestion)
			require.Equal(testInstance, testCase.notice.MessageTemplate, issue.Notice.MessageTemplate)
		})
	}
}

func TestLoadTableFromFile(testInstance *testing.T) {
	tablePath := filepath.Join(testInstance.TempDir(), "rules.yaml")
	require.NoError(testInstance, os.WriteFile(tablePath, []byte(testRuleTableContent), 0o644))

	table, loadError := rules.LoadTable(tablePath)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, 3, table.RuleCount())

	_, missingError := rules.LoadTable(filepath.Join(testInstance.TempDir(), "absent.yaml"))
	require.Error(testInstance, missingError)
}

func TestDefaultTableResolvesBuiltinNotices(testInstance *testing.T) {
	table, tableError := rules.DefaultTable()
	require.NoError(testInstance, tableError)
	require.Positive(testInstance, table.RuleCount())

	testCases := []struct {
		name   string
		notice finding.Notice
	}{
		{name: "absence", notice: finding.Notice{MessageTemplate: "No license file."}},
		{name: "conflict", notice: finding.Notice{MessageTemplate: "Multiple values exists for %s.", Parameters: []any{"license.identifier"}}},
		{name: "citation_attribute", notice: finding.Notice{MessageTemplate: "Invalid citation attribute %s.", Parameters: []any{"middle-name"}}},
		{name: "reference_mismatch", notice: finding.Notice{MessageTemplate: "Metadata attribute %s does not match the reference value.", Parameters: []any{"metadata.version"}}},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			issue := table.Resolve(testCase.notice)
			require.True(testInstance, issue.Resolved)
			require.NotEmpty(testInstance, issue.Suggestion)
		})
	}
}
