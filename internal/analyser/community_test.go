package analyser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/codescan/internal/analyser"
)

func TestCommunityAnalyserRecordsGovernanceFiles(testInstance *testing.T) {
	codebaseContext := newCodebaseContext(testInstance, map[string]string{
		"CONTRIBUTING.md":            "How to contribute.",
		".github/CODE_OF_CONDUCT.md": "Be kind.",
	})

	result, scanError := (&analyser.CommunityAnalyser{}).Scan(context.Background(), codebaseContext, analyser.Configuration{})
	require.NoError(testInstance, scanError)

	contributingFile, present := fragmentValue(result, "community.contributing_file")
	require.True(testInstance, present)
	require.Equal(testInstance, "CONTRIBUTING.md", contributingFile)

	conductFile, present := fragmentValue(result, "community.conduct_file")
	require.True(testInstance, present)
	require.Equal(testInstance, ".github/CODE_OF_CONDUCT.md", conductFile)

	messages := renderedMessages(result)
	require.Contains(testInstance, messages, "Contributing guidelines exists.")
	require.Contains(testInstance, messages, "Code of conduct exists.")
}

func TestCommunityAnalyserWithoutGovernanceFiles(testInstance *testing.T) {
	codebaseContext := newCodebaseContext(testInstance, map[string]string{
		"README.md": "A fixture project.",
	})

	result, scanError := (&analyser.CommunityAnalyser{}).Scan(context.Background(), codebaseContext, analyser.Configuration{})
	require.NoError(testInstance, scanError)
	require.Empty(testInstance, result.Fragments)
	require.Empty(testInstance, result.Notices)
}
