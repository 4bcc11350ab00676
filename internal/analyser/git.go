package analyser

import (
	"context"

	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
)

const (
	gitAnalyserIDConstant               = "git"
	versionControlSystemKeyConstant     = "version_control.system"
	versionControlIgnoreKeyConstant     = "version_control.ignore_file"
	gitDirectoryNameConstant            = ".git"
	gitSystemNameConstant               = "git"
	gitIgnorePatternConstant            = "/.gitignore"
	versionControlExistsMessageConstant = "Version control exists."
)

// GitAnalyser detects git version control artifacts.
type GitAnalyser struct{}

// ID returns the analyser identifier.
func (gitAnalyser *GitAnalyser) ID() string {
	return gitAnalyserIDConstant
}

// Type returns the processor type.
func (gitAnalyser *GitAnalyser) Type() Type {
	return TypeVersionControl
}

// Scan records the presence of a git repository and its ignore file. The
// .git directory itself is pruned from the walk, so detection relies on the
// excluded-directory record.
func (gitAnalyser *GitAnalyser) Scan(executionContext context.Context, codebaseContext *codebase.Context, configuration Configuration) (*finding.Result, error) {
	result := finding.NewResult(gitAnalyserIDConstant)

	if codebaseContext.ContainsDirectory(gitDirectoryNameConstant) {
		result.AddNotice(4, "", versionControlExistsMessageConstant)
		result.AddFragment(versionControlSystemKeyConstant, gitSystemNameConstant, "")
	}

	if ignoreFiles := codebaseContext.FilesMatching(gitIgnorePatternConstant); len(ignoreFiles) > 0 {
		result.AddFragment(versionControlIgnoreKeyConstant, ignoreFiles[0].RelativePath, ignoreFiles[0].RelativePath)
	}

	return result, nil
}
