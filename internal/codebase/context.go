package codebase

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	rootRelativePathConstant     = "."
	directoryPatternSuffix       = "/"
	rootedPatternPrefix          = "/"
	patternSeparatorConstant     = "/"
	notADirectoryMessageConstant = "not a directory"
)

var fileCategoryByExtension = map[string]FileCategory{
	".c":        FileCategorySource,
	".cpp":      FileCategorySource,
	".go":       FileCategorySource,
	".h":        FileCategorySource,
	".java":     FileCategorySource,
	".js":       FileCategorySource,
	".py":       FileCategorySource,
	".r":        FileCategorySource,
	".rb":       FileCategorySource,
	".rs":       FileCategorySource,
	".sh":       FileCategorySource,
	".ts":       FileCategorySource,
	".markdown": FileCategoryDocumentation,
	".md":       FileCategoryDocumentation,
	".rst":      FileCategoryDocumentation,
	".txt":      FileCategoryDocumentation,
	".cfg":      FileCategoryMetadata,
	".ini":      FileCategoryMetadata,
	".json":     FileCategoryMetadata,
	".toml":     FileCategoryMetadata,
	".xml":      FileCategoryMetadata,
	".yaml":     FileCategoryMetadata,
	".yml":      FileCategoryMetadata,
	".ipynb":    FileCategoryNotebook,
}

// Context is the immutable view of a walked code base shared by analysers.
type Context struct {
	rootPath            string
	files               []File
	directories         []string
	excludedDirectories []string
	statistics          Statistics
}

// NewContext walks the root path once, applying the configured exclusion
// rules, and returns the resulting read-only context. It returns a *PathError
// when the root does not exist, is not a directory, or cannot be read.
func NewContext(rootPath string, options Options) (*Context, error) {
	startTime := time.Now()

	absoluteRoot, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return nil, &PathError{Path: rootPath, Cause: absoluteError}
	}

	rootInformation, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return nil, &PathError{Path: rootPath, Cause: statError}
	}
	if !rootInformation.IsDir() {
		return nil, &PathError{Path: rootPath, Cause: errors.New(notADirectoryMessageConstant)}
	}

	walkContext := &Context{rootPath: absoluteRoot}

	walkError := filepath.WalkDir(absoluteRoot, func(currentPath string, entry fs.DirEntry, entryError error) error {
		if entryError != nil {
			if currentPath == absoluteRoot {
				return &PathError{Path: rootPath, Cause: entryError}
			}
			return nil
		}

		relativePath, relativeError := filepath.Rel(absoluteRoot, currentPath)
		if relativeError != nil {
			return nil
		}
		relativePath = filepath.ToSlash(relativePath)

		if entry.IsDir() {
			if relativePath == rootRelativePathConstant {
				walkContext.statistics.DirectoryCount++
				return nil
			}
			if matchAnyPattern(options.ExcludePatterns, relativePath, entry.Name()) {
				walkContext.statistics.ExcludedDirectoryCount++
				walkContext.excludedDirectories = append(walkContext.excludedDirectories, relativePath)
				return fs.SkipDir
			}
			walkContext.statistics.DirectoryCount++
			walkContext.directories = append(walkContext.directories, relativePath)
			return nil
		}

		var fileSize int64
		if information, informationError := entry.Info(); informationError == nil {
			fileSize = information.Size()
		}

		walkContext.files = append(walkContext.files, File{
			RelativePath: relativePath,
			Name:         entry.Name(),
			Category:     classifyFile(entry.Name()),
			Size:         fileSize,
		})
		walkContext.statistics.FileCount++
		return nil
	})
	if walkError != nil {
		var pathError *PathError
		if errors.As(walkError, &pathError) {
			return nil, pathError
		}
		return nil, &PathError{Path: rootPath, Cause: walkError}
	}

	walkContext.statistics.Duration = time.Since(startTime)
	return walkContext, nil
}

// Root returns the absolute root path of the walked code base.
func (context *Context) Root() string {
	return context.rootPath
}

// Files returns the retained files in walk order. Callers must not modify
// the returned slice.
func (context *Context) Files() []File {
	return context.files
}

// Statistics returns the counters collected during the walk.
func (context *Context) Statistics() Statistics {
	return context.statistics
}

// ExcludedDirectories returns the relative paths pruned by exclusion rules.
func (context *Context) ExcludedDirectories() []string {
	return context.excludedDirectories
}

// FilesMatching returns the files whose name or relative path matches any of
// the given patterns, in walk order.
func (context *Context) FilesMatching(patterns ...string) []File {
	var matched []File
	for _, file := range context.files {
		if matchAnyPattern(patterns, file.RelativePath, file.Name) {
			matched = append(matched, file)
		}
	}
	return matched
}

// FilesByCategory returns the retained files of the given category.
func (context *Context) FilesByCategory(category FileCategory) []File {
	var matched []File
	for _, file := range context.files {
		if file.Category == category {
			matched = append(matched, file)
		}
	}
	return matched
}

// ContainsDirectory reports whether a directory with the given name exists
// anywhere in the tree, including directories pruned by exclusion rules.
func (context *Context) ContainsDirectory(directoryName string) bool {
	for _, relativePath := range context.directories {
		if strings.EqualFold(baseName(relativePath), directoryName) {
			return true
		}
	}
	for _, relativePath := range context.excludedDirectories {
		if strings.EqualFold(baseName(relativePath), directoryName) {
			return true
		}
	}
	return false
}

// AbsolutePath resolves a relative path from the context against the root.
func (context *Context) AbsolutePath(relativePath string) string {
	return filepath.Join(context.rootPath, filepath.FromSlash(relativePath))
}

func baseName(relativePath string) string {
	segments := strings.Split(relativePath, patternSeparatorConstant)
	return segments[len(segments)-1]
}

func classifyFile(fileName string) FileCategory {
	extension := strings.ToLower(filepath.Ext(fileName))
	if category, known := fileCategoryByExtension[extension]; known {
		return category
	}
	return FileCategoryOther
}

func matchAnyPattern(patterns []string, relativePath string, name string) bool {
	for _, pattern := range patterns {
		if matchPattern(pattern, relativePath, name) {
			return true
		}
	}
	return false
}

// matchPattern applies the shared rule notation: a trailing slash marks a
// directory rule, a leading slash anchors the pattern at the root, and a
// pattern containing a separator matches the relative path instead of the
// bare name. Matching is case-insensitive.
func matchPattern(pattern string, relativePath string, name string) bool {
	trimmed := strings.TrimSuffix(pattern, directoryPatternSuffix)

	target := name
	if strings.HasPrefix(trimmed, rootedPatternPrefix) {
		trimmed = strings.TrimPrefix(trimmed, rootedPatternPrefix)
		target = relativePath
	} else if strings.Contains(trimmed, patternSeparatorConstant) {
		target = relativePath
	}

	matched, matchError := doublestar.Match(strings.ToLower(trimmed), strings.ToLower(target))
	if matchError != nil {
		return false
	}
	return matched
}
