package codebase

import (
	"fmt"
	"time"
)

const pathErrorTemplateConstant = "invalid code base path %s: %v"

// PathError reports an inaccessible or invalid code base root. It is fatal
// for the whole run.
type PathError struct {
	Path  string
	Cause error
}

// Error renders the path error message.
func (pathError *PathError) Error() string {
	return fmt.Sprintf(pathErrorTemplateConstant, pathError.Path, pathError.Cause)
}

// Unwrap exposes the underlying cause.
func (pathError *PathError) Unwrap() error {
	return pathError.Cause
}

// FileCategory classifies files by their role in the project.
type FileCategory string

// Supported file categories.
const (
	FileCategorySource        FileCategory = "source"
	FileCategoryDocumentation FileCategory = "documentation"
	FileCategoryMetadata      FileCategory = "metadata"
	FileCategoryNotebook      FileCategory = "notebook"
	FileCategoryOther         FileCategory = "other"
)

// File describes a single retained file of the walked tree.
type File struct {
	RelativePath string
	Name         string
	Category     FileCategory
	Size         int64
}

// Statistics captures the counters collected during the walk.
type Statistics struct {
	DirectoryCount         int
	ExcludedDirectoryCount int
	FileCount              int
	Duration               time.Duration
}

// Options configures the walk performed by NewContext.
type Options struct {
	// ExcludePatterns lists directory patterns pruned from the walk, in the
	// rule notation shared with analyser include patterns (trailing slash
	// marks a directory rule, leading slash anchors at the root).
	ExcludePatterns []string
}
