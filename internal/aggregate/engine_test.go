package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/codescan/internal/aggregate"
	"github.com/temirov/codescan/internal/finding"
)

func noticeMessages(notices []finding.Notice) []string {
	var messages []string
	for _, notice := range notices {
		messages = append(messages, notice.RenderedMessage())
	}
	return messages
}

func TestAggregateConsolidatesAgreeingFragments(testInstance *testing.T) {
	fragments := []finding.Fragment{
		{Key: "license.identifier", Value: "MIT", Source: "license", Order: 0},
		{Key: "license.identifier", Value: "MIT", Source: "citation", Order: 1},
		{Key: "license.file", Value: "LICENSE", Source: "license", Order: 2},
	}

	entries, notices := aggregate.NewEngine().Aggregate(fragments, nil)

	require.Equal(testInstance, "MIT", entries["license.identifier"].Value)
	require.Len(testInstance, entries["license.identifier"].Fragments, 2)
	require.Equal(testInstance, "LICENSE", entries["license.file"].Value)
	require.NotContains(testInstance, noticeMessages(notices), "Multiple values exists for license.identifier.")
}

func TestAggregateReportsConflictsWithSentinel(testInstance *testing.T) {
	fragments := []finding.Fragment{
		{Key: "license.identifier", Value: "MIT", Source: "license", Order: 0},
		{Key: "license.identifier", Value: "Apache-2.0", Source: "packaging_python", Order: 1},
		{Key: "license.file", Value: "LICENSE", Source: "license", Order: 2},
	}

	entries, notices := aggregate.NewEngine().Aggregate(fragments, nil)

	require.Equal(testInstance, finding.MultipleValuesSentinel, entries["license.identifier"].Value)

	conflictCount := 0
	for _, notice := range notices {
		if notice.RenderedMessage() == "Multiple values exists for license.identifier." {
			conflictCount++
			require.Equal(testInstance, finding.NoticeKindIssue, notice.Kind)
			require.Equal(testInstance, finding.NoticeLevel(2), notice.Level)
		}
	}
	require.Equal(testInstance, 1, conflictCount)
}

func TestAggregateRaisesAbsenceIssues(testInstance *testing.T) {
	entries, notices := aggregate.NewEngine().Aggregate(nil, nil)

	require.Empty(testInstance, entries)

	messages := noticeMessages(notices)
	require.Contains(testInstance, messages, "No license file.")
	require.Contains(testInstance, messages, "No citation file.")
	require.Contains(testInstance, messages, "No readme file.")
	require.Contains(testInstance, messages, "No tests.")
	require.Contains(testInstance, messages, "No version control.")

	for _, notice := range notices {
		require.Equal(testInstance, finding.NoticeKindIssue, notice.Kind)
		require.Equal(testInstance, finding.NoticeLevel(1), notice.Level)
	}
}

func TestAggregateSkipsCategoriesByIdentifierAndType(testInstance *testing.T) {
	fragments := []finding.Fragment{
		{Key: "license.identifier", Value: "MIT", Source: "license", Order: 0},
		{Key: "license.identifier", Value: "Apache-2.0", Source: "citation", Order: 1},
	}

	skipSet := map[string]struct{}{"license": {}, "citation": {}}
	entries, notices := aggregate.NewEngine().Aggregate(fragments, skipSet)

	_, present := entries["license.identifier"]
	require.False(testInstance, present)

	messages := noticeMessages(notices)
	require.NotContains(testInstance, messages, "Multiple values exists for license.identifier.")
	require.NotContains(testInstance, messages, "No license file.")
	require.NotContains(testInstance, messages, "No citation file.")
	require.Contains(testInstance, messages, "No readme file.")
}

func TestAggregateRoutesUnownedKeysToCatchAllCategory(testInstance *testing.T) {
	fragments := []finding.Fragment{
		{Key: "dependency.count", Value: 4, Source: "dependency_python", Order: 0},
		{Key: "metadata.name", Value: "codescan", Source: "packaging_python", Order: 1},
	}

	entries, _ := aggregate.NewEngine().Aggregate(fragments, nil)

	require.Equal(testInstance, 4, entries["dependency.count"].Value)
	require.Equal(testInstance, "codescan", entries["metadata.name"].Value)
}

func TestAggregateComparesValuesStructurally(testInstance *testing.T) {
	fragments := []finding.Fragment{
		{Key: "code.languages", Value: []string{"python"}, Source: "code_python", Order: 0},
		{Key: "code.languages", Value: []string{"python"}, Source: "notebook", Order: 1},
	}

	entries, notices := aggregate.NewEngine().Aggregate(fragments, nil)

	require.Equal(testInstance, []string{"python"}, entries["code.languages"].Value)
	require.NotContains(testInstance, noticeMessages(notices), "Multiple values exists for code.languages.")
}
