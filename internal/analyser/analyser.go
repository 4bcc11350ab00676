package analyser

import (
	"context"

	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
)

// Type identifies the project aspect an analyser or aggregator targets.
type Type string

// Supported processor types.
const (
	TypeCitation       Type = "citation"
	TypeCode           Type = "code"
	TypeCommunity      Type = "community"
	TypeDependency     Type = "dependency"
	TypeDocumentation  Type = "documentation"
	TypeLicense        Type = "license"
	TypeMetadata       Type = "metadata"
	TypeNotebook       Type = "notebook"
	TypePackaging      Type = "packaging"
	TypeRepository     Type = "repository"
	TypeTesting        Type = "testing"
	TypeVersionControl Type = "version_control"
)

// DefaultReadmeMinimumLength is the readme size, in bytes, below which the
// documentation analyser flags the file as too short.
const DefaultReadmeMinimumLength = 200

// Configuration carries the pipeline settings analysers may consult.
type Configuration struct {
	ReadmeMinimumLength int
}

func (configuration Configuration) readmeMinimumLength() int {
	if configuration.ReadmeMinimumLength > 0 {
		return configuration.ReadmeMinimumLength
	}
	return DefaultReadmeMinimumLength
}

// Analyser inspects one project aspect against the shared codebase context.
// Implementations must complete even when they find nothing to report and
// must not mutate the context.
type Analyser interface {
	ID() string
	Type() Type
	Scan(executionContext context.Context, codebaseContext *codebase.Context, configuration Configuration) (*finding.Result, error)
}

// Builtin returns the built-in analysers in stable registration order. The
// order fixes the merge order of emitted fragments; execution order across
// analysers carries no meaning.
func Builtin() []Analyser {
	return []Analyser{
		&CitationAnalyser{},
		&CodePythonAnalyser{},
		&CommunityAnalyser{},
		&DependencyPythonAnalyser{},
		&DocumentationAnalyser{},
		&GitAnalyser{},
		&LicenseAnalyser{},
		&NotebookAnalyser{},
		&PackagingPythonAnalyser{},
		&TestingPythonAnalyser{},
	}
}

// ExcludePatterns returns the directory exclusion rules contributed by the
// built-in analysers, applied once by the codebase walk.
func ExcludePatterns() []string {
	return []string{
		".git/",
		".hg/",
		".idea/",
		".ipynb_checkpoints/",
		".tox/",
		".venv/",
		"__pycache__/",
		"build/",
		"dist/",
		"node_modules/",
		"venv/",
	}
}
