package analyser

import (
	"context"
	"os"
	"strings"

	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
)

const (
	dependencyAnalyserIDConstant       = "dependency_python"
	dependencyFileKeyConstant          = "dependency.file"
	dependencyCountKeyConstant         = "dependency.count"
	requirementsFilePatternConstant    = "/requirements*.txt"
	missingSpecifierTemplateConstant   = "%s dependency has no version specifier."
	unpinnedVersionTemplateConstant    = "%s dependency version is not pinned."
	requirementCommentPrefixConstant   = "#"
	requirementOptionPrefixConstant    = "-"
	requirementMarkerSeparatorConstant = ";"
	requirementPinnedSpecifierConstant = "=="
	requirementSpecifierCharsConstant  = "=<>!~"
	requirementNameTerminatorsConstant = "=<>!~[ ("
)

// DependencyPythonAnalyser inspects pip requirements files.
type DependencyPythonAnalyser struct{}

// ID returns the analyser identifier.
func (dependencyAnalyser *DependencyPythonAnalyser) ID() string {
	return dependencyAnalyserIDConstant
}

// Type returns the processor type.
func (dependencyAnalyser *DependencyPythonAnalyser) Type() Type {
	return TypeDependency
}

// Scan checks every requirement line for a version specifier and pinning.
func (dependencyAnalyser *DependencyPythonAnalyser) Scan(executionContext context.Context, codebaseContext *codebase.Context, configuration Configuration) (*finding.Result, error) {
	result := finding.NewResult(dependencyAnalyserIDConstant)

	requirementFiles := codebaseContext.FilesMatching(requirementsFilePatternConstant)
	if len(requirementFiles) == 0 {
		return result, nil
	}

	var filePaths []string
	requirementCount := 0

	for _, requirementFile := range requirementFiles {
		filePaths = append(filePaths, requirementFile.RelativePath)

		content, readError := os.ReadFile(codebaseContext.AbsolutePath(requirementFile.RelativePath))
		if readError != nil {
			continue
		}

		for _, rawLine := range strings.Split(string(content), "\n") {
			requirementName, specifier, parsed := parseRequirementLine(rawLine)
			if !parsed {
				continue
			}
			requirementCount++

			if !strings.ContainsAny(specifier, requirementSpecifierCharsConstant) {
				result.AddIssue(3, requirementFile.RelativePath, missingSpecifierTemplateConstant, requirementName)
				continue
			}
			if !strings.Contains(specifier, requirementPinnedSpecifierConstant) {
				result.AddIssue(3, requirementFile.RelativePath, unpinnedVersionTemplateConstant, requirementName)
			}
		}
	}

	result.AddFragment(dependencyFileKeyConstant, filePaths, "")
	result.AddFragment(dependencyCountKeyConstant, requirementCount, "")

	return result, nil
}

// parseRequirementLine splits a requirements line into the distribution name
// and the remainder carrying version specifiers. Comments, pip options, and
// blank lines are skipped.
func parseRequirementLine(rawLine string) (string, string, bool) {
	line := strings.TrimSpace(rawLine)
	if len(line) == 0 {
		return "", "", false
	}
	if strings.HasPrefix(line, requirementCommentPrefixConstant) || strings.HasPrefix(line, requirementOptionPrefixConstant) {
		return "", "", false
	}

	if commentIndex := strings.Index(line, requirementCommentPrefixConstant); commentIndex >= 0 {
		line = strings.TrimSpace(line[:commentIndex])
	}
	if markerIndex := strings.Index(line, requirementMarkerSeparatorConstant); markerIndex >= 0 {
		line = strings.TrimSpace(line[:markerIndex])
	}
	if len(line) == 0 {
		return "", "", false
	}

	nameEnd := strings.IndexAny(line, requirementNameTerminatorsConstant)
	if nameEnd < 0 {
		return line, "", true
	}
	return line[:nameEnd], line[nameEnd:], true
}
