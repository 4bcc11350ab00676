package analyser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/codescan/internal/analyser"
	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
)

func newCodebaseContext(testInstance *testing.T, files map[string]string) *codebase.Context {
	testInstance.Helper()

	rootPath := testInstance.TempDir()
	for relativePath, content := range files {
		absolutePath := filepath.Join(rootPath, filepath.FromSlash(relativePath))
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(content), 0o644))
	}

	codebaseContext, contextError := codebase.NewContext(rootPath, codebase.Options{
		ExcludePatterns: analyser.ExcludePatterns(),
	})
	require.NoError(testInstance, contextError)
	return codebaseContext
}

func fragmentValue(result *finding.Result, key string) (any, bool) {
	for _, fragment := range result.Fragments {
		if fragment.Key == key {
			return fragment.Value, true
		}
	}
	return nil, false
}

func renderedMessages(result *finding.Result) []string {
	var messages []string
	for _, notice := range result.Notices {
		messages = append(messages, notice.RenderedMessage())
	}
	return messages
}
