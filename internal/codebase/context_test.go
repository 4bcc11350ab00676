package codebase_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/codescan/internal/codebase"
)

func writeProjectTree(testInstance *testing.T, files map[string]string) string {
	testInstance.Helper()

	rootPath := testInstance.TempDir()
	for relativePath, content := range files {
		absolutePath := filepath.Join(rootPath, filepath.FromSlash(relativePath))
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(content), 0o644))
	}
	return rootPath
}

func TestNewContextWalksTree(testInstance *testing.T) {
	rootPath := writeProjectTree(testInstance, map[string]string{
		"README.md":             "A project.",
		"LICENSE":               "MIT License",
		"src/package/module.py": `"""A module."""`,
		"notebooks/demo.ipynb":  "{}",
		"__pycache__/cached.py": "cached",
		".git/config":           "[core]",
	})

	codebaseContext, contextError := codebase.NewContext(rootPath, codebase.Options{
		ExcludePatterns: []string{".git/", "__pycache__/"},
	})
	require.NoError(testInstance, contextError)

	statistics := codebaseContext.Statistics()
	require.Equal(testInstance, 4, statistics.FileCount)
	require.Equal(testInstance, 2, statistics.ExcludedDirectoryCount)
	// root, src, src/package, notebooks
	require.Equal(testInstance, 4, statistics.DirectoryCount)

	require.True(testInstance, codebaseContext.ContainsDirectory("notebooks"))
	require.True(testInstance, codebaseContext.ContainsDirectory(".git"))
	require.False(testInstance, codebaseContext.ContainsDirectory("missing"))
}

func TestNewContextRejectsInvalidRoot(testInstance *testing.T) {
	filePath := filepath.Join(testInstance.TempDir(), "plain.txt")
	require.NoError(testInstance, os.WriteFile(filePath, []byte("content"), 0o644))

	testCases := []struct {
		name     string
		rootPath string
	}{
		{name: "missing_root", rootPath: filepath.Join(testInstance.TempDir(), "absent")},
		{name: "root_is_a_file", rootPath: filePath},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			_, contextError := codebase.NewContext(testCase.rootPath, codebase.Options{})
			require.Error(testInstance, contextError)

			var pathError *codebase.PathError
			require.ErrorAs(testInstance, contextError, &pathError)
		})
	}
}

func TestFilesMatchingPatternNotation(testInstance *testing.T) {
	rootPath := writeProjectTree(testInstance, map[string]string{
		"README.md":            "short",
		"docs/README.md":       "nested",
		"LICENSE.txt":          "text",
		"tests/test_module.py": "import module",
		"requirements.txt":     "requests==2.31.0",
		"requirements-dev.txt": "pytest",
	})

	codebaseContext, contextError := codebase.NewContext(rootPath, codebase.Options{})
	require.NoError(testInstance, contextError)

	testCases := []struct {
		name          string
		patterns      []string
		expectedPaths []string
	}{
		{
			name:          "rooted_pattern_matches_root_only",
			patterns:      []string{"/readme.*"},
			expectedPaths: []string{"README.md"},
		},
		{
			name:          "bare_name_pattern_matches_anywhere",
			patterns:      []string{"readme.*"},
			expectedPaths: []string{"README.md", "docs/README.md"},
		},
		{
			name:          "wildcard_prefix",
			patterns:      []string{"/requirements*.txt"},
			expectedPaths: []string{"requirements-dev.txt", "requirements.txt"},
		},
		{
			name:          "test_file_pattern",
			patterns:      []string{"test_*.py"},
			expectedPaths: []string{"tests/test_module.py"},
		},
		{
			name:          "no_match",
			patterns:      []string{"/citation.cff"},
			expectedPaths: nil,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			var matchedPaths []string
			for _, matchedFile := range codebaseContext.FilesMatching(testCase.patterns...) {
				matchedPaths = append(matchedPaths, matchedFile.RelativePath)
			}
			require.ElementsMatch(testInstance, testCase.expectedPaths, matchedPaths)
		})
	}
}

func TestFilesByCategory(testInstance *testing.T) {
	rootPath := writeProjectTree(testInstance, map[string]string{
		"module.py":      `"""doc"""`,
		"README.md":      "readme",
		"pyproject.toml": "[project]",
		"analysis.ipynb": "{}",
		"binaryblob":     "data",
	})

	codebaseContext, contextError := codebase.NewContext(rootPath, codebase.Options{})
	require.NoError(testInstance, contextError)

	require.Len(testInstance, codebaseContext.FilesByCategory(codebase.FileCategorySource), 1)
	require.Len(testInstance, codebaseContext.FilesByCategory(codebase.FileCategoryDocumentation), 1)
	require.Len(testInstance, codebaseContext.FilesByCategory(codebase.FileCategoryMetadata), 1)
	require.Len(testInstance, codebaseContext.FilesByCategory(codebase.FileCategoryNotebook), 1)
	require.Len(testInstance, codebaseContext.FilesByCategory(codebase.FileCategoryOther), 1)
}
