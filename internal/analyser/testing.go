package analyser

import (
	"context"
	"strings"

	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
)

const (
	testingAnalyserIDConstant    = "testing_python"
	testingDirectoryKeyConstant  = "testing.directory"
	testingFileCountKeyConstant  = "testing.file_count"
	testsDirectoryNameConstant   = "tests"
	testDirectoryNameConstant    = "test"
	testsDirectoryPrefixConstant = "tests/"
)

var testFilePatterns = []string{
	"test_*.py",
	"*_test.py",
}

// TestingPythonAnalyser inspects test suites.
type TestingPythonAnalyser struct{}

// ID returns the analyser identifier.
func (testingAnalyser *TestingPythonAnalyser) ID() string {
	return testingAnalyserIDConstant
}

// Type returns the processor type.
func (testingAnalyser *TestingPythonAnalyser) Type() Type {
	return TypeTesting
}

// Scan counts test files and records the test directory when present.
func (testingAnalyser *TestingPythonAnalyser) Scan(executionContext context.Context, codebaseContext *codebase.Context, configuration Configuration) (*finding.Result, error) {
	result := finding.NewResult(testingAnalyserIDConstant)

	testFiles := map[string]struct{}{}
	for _, testFile := range codebaseContext.FilesMatching(testFilePatterns...) {
		testFiles[testFile.RelativePath] = struct{}{}
	}
	for _, sourceFile := range codebaseContext.FilesByCategory(codebase.FileCategorySource) {
		if strings.HasPrefix(sourceFile.RelativePath, testsDirectoryPrefixConstant) {
			testFiles[sourceFile.RelativePath] = struct{}{}
		}
	}

	if codebaseContext.ContainsDirectory(testsDirectoryNameConstant) {
		result.AddFragment(testingDirectoryKeyConstant, testsDirectoryNameConstant, "")
	} else if codebaseContext.ContainsDirectory(testDirectoryNameConstant) {
		result.AddFragment(testingDirectoryKeyConstant, testDirectoryNameConstant, "")
	}

	if len(testFiles) > 0 {
		result.AddFragment(testingFileCountKeyConstant, len(testFiles), "")
	}

	return result, nil
}
