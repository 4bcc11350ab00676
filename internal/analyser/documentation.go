package analyser

import (
	"context"

	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
)

const (
	documentationAnalyserIDConstant    = "documentation"
	readmeFileKeyConstant              = "documentation.readme_file"
	changelogFileKeyConstant           = "documentation.changelog_file"
	documentationDirectoryKeyConstant  = "documentation.directory"
	readmeExistsMessageConstant        = "Readme file exists."
	changelogExistsMessageConstant     = "Changelog file exists."
	readmeTooShortMessageConstant      = "README file is too short."
	documentationDirectoryNameConstant = "docs"
	documentationDirectoryAltConstant  = "doc"
)

var readmeFilePatterns = []string{
	"/readme",
	"/readme.*",
}

var changelogFilePatterns = []string{
	"/changelog",
	"/changelog.*",
	"/changes",
	"/changes.*",
	"/history.*",
	"/news",
	"/news.*",
}

// DocumentationAnalyser inspects project documentation artifacts.
type DocumentationAnalyser struct{}

// ID returns the analyser identifier.
func (documentationAnalyser *DocumentationAnalyser) ID() string {
	return documentationAnalyserIDConstant
}

// Type returns the processor type.
func (documentationAnalyser *DocumentationAnalyser) Type() Type {
	return TypeDocumentation
}

// Scan records readme, changelog, and documentation directory findings.
func (documentationAnalyser *DocumentationAnalyser) Scan(executionContext context.Context, codebaseContext *codebase.Context, configuration Configuration) (*finding.Result, error) {
	result := finding.NewResult(documentationAnalyserIDConstant)

	if readmeFiles := codebaseContext.FilesMatching(readmeFilePatterns...); len(readmeFiles) > 0 {
		readmeFile := readmeFiles[0]
		result.AddNotice(3, readmeFile.RelativePath, readmeExistsMessageConstant)
		result.AddFragment(readmeFileKeyConstant, readmeFile.RelativePath, readmeFile.RelativePath)

		if readmeFile.Size < int64(configuration.readmeMinimumLength()) {
			result.AddIssue(3, readmeFile.RelativePath, readmeTooShortMessageConstant)
		}
	}

	if changelogFiles := codebaseContext.FilesMatching(changelogFilePatterns...); len(changelogFiles) > 0 {
		changelogFile := changelogFiles[0]
		result.AddNotice(3, changelogFile.RelativePath, changelogExistsMessageConstant)
		result.AddFragment(changelogFileKeyConstant, changelogFile.RelativePath, changelogFile.RelativePath)
	}

	if codebaseContext.ContainsDirectory(documentationDirectoryNameConstant) {
		result.AddFragment(documentationDirectoryKeyConstant, documentationDirectoryNameConstant, "")
	} else if codebaseContext.ContainsDirectory(documentationDirectoryAltConstant) {
		result.AddFragment(documentationDirectoryKeyConstant, documentationDirectoryAltConstant, "")
	}

	return result, nil
}
