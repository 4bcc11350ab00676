package analyser

import (
	"context"
	"os"
	"strings"

	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
)

const (
	codePythonAnalyserIDConstant     = "code_python"
	codeLanguagesKeyConstant         = "code.languages"
	codeFileCountKeyConstant         = "code.file_count"
	pythonFilePatternConstant        = "*.py"
	pythonLanguageNameConstant       = "python"
	missingDocstringTemplateConstant = "Source file %s has no documentation."
	commentPrefixConstant            = "#"
)

var docstringPrefixes = []string{
	`"""`,
	"'''",
	`r"""`,
	"r'''",
}

// CodePythonAnalyser inspects Python source files.
type CodePythonAnalyser struct{}

// ID returns the analyser identifier.
func (codeAnalyser *CodePythonAnalyser) ID() string {
	return codePythonAnalyserIDConstant
}

// Type returns the processor type.
func (codeAnalyser *CodePythonAnalyser) Type() Type {
	return TypeCode
}

// Scan counts Python sources and flags modules lacking a docstring.
func (codeAnalyser *CodePythonAnalyser) Scan(executionContext context.Context, codebaseContext *codebase.Context, configuration Configuration) (*finding.Result, error) {
	result := finding.NewResult(codePythonAnalyserIDConstant)

	pythonFiles := codebaseContext.FilesMatching(pythonFilePatternConstant)
	if len(pythonFiles) == 0 {
		return result, nil
	}

	for _, pythonFile := range pythonFiles {
		if pythonFile.Size == 0 {
			continue
		}

		content, readError := os.ReadFile(codebaseContext.AbsolutePath(pythonFile.RelativePath))
		if readError != nil {
			continue
		}

		if !hasModuleDocstring(string(content)) {
			result.AddIssue(4, pythonFile.RelativePath, missingDocstringTemplateConstant, pythonFile.RelativePath)
		}
	}

	result.AddFragment(codeLanguagesKeyConstant, []string{pythonLanguageNameConstant}, "")
	result.AddFragment(codeFileCountKeyConstant, len(pythonFiles), "")

	return result, nil
}

// hasModuleDocstring reports whether the first statement of a Python module
// is a string literal. Shebangs, encoding comments, and blank lines are
// skipped; any other leading statement means the docstring is absent.
func hasModuleDocstring(content string) bool {
	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(rawLine)
		if len(line) == 0 || strings.HasPrefix(line, commentPrefixConstant) {
			continue
		}
		for _, prefix := range docstringPrefixes {
			if strings.HasPrefix(line, prefix) {
				return true
			}
		}
		return false
	}
	return false
}
