package analyser

import (
	"context"

	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
)

const (
	communityAnalyserIDConstant        = "community"
	contributingFileKeyConstant        = "community.contributing_file"
	conductFileKeyConstant             = "community.conduct_file"
	contributingExistsMessageConstant  = "Contributing guidelines exists."
	codeOfConductExistsMessageConstant = "Code of conduct exists."
)

var contributingFilePatterns = []string{
	"/contributing",
	"/contributing.*",
	"/.github/contributing.*",
	"/docs/contributing.*",
}

var conductFilePatterns = []string{
	"/conduct.*",
	"/code_of_conduct",
	"/code_of_conduct.*",
	"/.github/code_of_conduct.*",
	"/docs/code_of_conduct.*",
}

// CommunityAnalyser inspects community governance files.
type CommunityAnalyser struct{}

// ID returns the analyser identifier.
func (communityAnalyser *CommunityAnalyser) ID() string {
	return communityAnalyserIDConstant
}

// Type returns the processor type.
func (communityAnalyser *CommunityAnalyser) Type() Type {
	return TypeCommunity
}

// Scan records contributing guidelines and code of conduct files.
func (communityAnalyser *CommunityAnalyser) Scan(executionContext context.Context, codebaseContext *codebase.Context, configuration Configuration) (*finding.Result, error) {
	result := finding.NewResult(communityAnalyserIDConstant)

	if contributingFiles := codebaseContext.FilesMatching(contributingFilePatterns...); len(contributingFiles) > 0 {
		contributingFile := contributingFiles[0]
		result.AddNotice(3, contributingFile.RelativePath, contributingExistsMessageConstant)
		result.AddFragment(contributingFileKeyConstant, contributingFile.RelativePath, contributingFile.RelativePath)
	}

	if conductFiles := codebaseContext.FilesMatching(conductFilePatterns...); len(conductFiles) > 0 {
		conductFile := conductFiles[0]
		result.AddNotice(3, conductFile.RelativePath, codeOfConductExistsMessageConstant)
		result.AddFragment(conductFileKeyConstant, conductFile.RelativePath, conductFile.RelativePath)
	}

	return result, nil
}
