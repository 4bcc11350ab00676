package analyser

import (
	"context"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
)

const (
	packagingAnalyserIDConstant         = "packaging_python"
	packagingFileKeyConstant            = "packaging.file"
	packagingBuildBackendKeyConstant    = "packaging.build_backend"
	metadataNameKeyConstant             = "metadata.name"
	metadataVersionKeyConstant          = "metadata.version"
	metadataDescriptionKeyConstant      = "metadata.description"
	pyprojectFilePatternConstant        = "/pyproject.toml"
	invalidPyprojectMessageConstant     = "Invalid pyproject.toml file."
	packagingFileExistsMessageConstant  = "Packaging file exists."
	legacyPackagingFileTemplateConstant = "Legacy packaging file %s exists."
	pyprojectLicenseTextFieldConstant   = "text"
)

var legacyPackagingFilePatterns = []string{
	"/setup.py",
	"/setup.cfg",
}

type pyprojectProject struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
	License     any    `toml:"license"`
}

type pyprojectBuildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
}

type pyprojectDocument struct {
	Project     pyprojectProject      `toml:"project"`
	BuildSystem *pyprojectBuildSystem `toml:"build-system"`
}

// PackagingPythonAnalyser inspects Python packaging descriptors.
type PackagingPythonAnalyser struct{}

// ID returns the analyser identifier.
func (packagingAnalyser *PackagingPythonAnalyser) ID() string {
	return packagingAnalyserIDConstant
}

// Type returns the processor type.
func (packagingAnalyser *PackagingPythonAnalyser) Type() Type {
	return TypePackaging
}

// Scan parses pyproject.toml and records legacy packaging descriptors.
func (packagingAnalyser *PackagingPythonAnalyser) Scan(executionContext context.Context, codebaseContext *codebase.Context, configuration Configuration) (*finding.Result, error) {
	result := finding.NewResult(packagingAnalyserIDConstant)

	pyprojectFiles := codebaseContext.FilesMatching(pyprojectFilePatternConstant)
	for _, pyprojectFile := range pyprojectFiles {
		packagingAnalyser.scanPyproject(result, codebaseContext, pyprojectFile)
	}

	for _, legacyFile := range codebaseContext.FilesMatching(legacyPackagingFilePatterns...) {
		result.AddNotice(4, legacyFile.RelativePath, legacyPackagingFileTemplateConstant, legacyFile.RelativePath)
		if len(pyprojectFiles) == 0 {
			result.AddFragment(packagingFileKeyConstant, legacyFile.RelativePath, legacyFile.RelativePath)
			break
		}
	}

	return result, nil
}

func (packagingAnalyser *PackagingPythonAnalyser) scanPyproject(result *finding.Result, codebaseContext *codebase.Context, pyprojectFile codebase.File) {
	content, readError := os.ReadFile(codebaseContext.AbsolutePath(pyprojectFile.RelativePath))
	if readError != nil {
		result.AddIssue(2, pyprojectFile.RelativePath, invalidPyprojectMessageConstant)
		return
	}

	var document pyprojectDocument
	if unmarshalError := toml.Unmarshal(content, &document); unmarshalError != nil {
		result.AddIssue(2, pyprojectFile.RelativePath, invalidPyprojectMessageConstant)
		return
	}

	result.AddNotice(3, pyprojectFile.RelativePath, packagingFileExistsMessageConstant)
	result.AddFragment(packagingFileKeyConstant, pyprojectFile.RelativePath, pyprojectFile.RelativePath)

	result.AddFragment(metadataNameKeyConstant, document.Project.Name, pyprojectFile.RelativePath)
	result.AddFragment(metadataVersionKeyConstant, document.Project.Version, pyprojectFile.RelativePath)
	result.AddFragment(metadataDescriptionKeyConstant, document.Project.Description, pyprojectFile.RelativePath)

	if identifier := pyprojectLicenseIdentifier(document.Project.License); len(identifier) > 0 {
		result.AddFragment(licenseIdentifierKeyConstant, identifier, pyprojectFile.RelativePath)
	}

	if document.BuildSystem != nil {
		result.AddFragment(packagingBuildBackendKeyConstant, document.BuildSystem.BuildBackend, pyprojectFile.RelativePath)
	}
}

// pyprojectLicenseIdentifier handles both license notations of PEP 621: a
// bare SPDX expression string and the legacy table with a text field.
func pyprojectLicenseIdentifier(value any) string {
	switch typedValue := value.(type) {
	case string:
		return typedValue
	case map[string]any:
		if text, isText := typedValue[pyprojectLicenseTextFieldConstant].(string); isText {
			return text
		}
	}
	return ""
}
