package analyser

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
)

const (
	citationAnalyserIDConstant               = "citation"
	citationFilePatternConstant              = "citation.cff"
	citationFileKeyConstant                  = "citation.file"
	citationTitleKeyConstant                 = "citation.title"
	citationDOIKeyConstant                   = "citation.doi"
	citationVersionKeyConstant               = "citation.version"
	citationLicenseKeyConstant               = "citation.license"
	citationFileExistsMessageConstant        = "Citation file exists."
	multipleCitationFilesMessageConstant     = "Multiple citation files found."
	invalidCitationFileMessageConstant       = "Invalid CITATION.cff file."
	invalidCitationAttributeTemplateConstant = "Invalid citation attribute %s."
)

// validCitationAttributes lists the attribute names of the CFF 1.2 schema.
var validCitationAttributes = map[string]struct{}{
	"abstract":            {},
	"authors":             {},
	"cff-version":         {},
	"commit":              {},
	"contact":             {},
	"date-released":       {},
	"doi":                 {},
	"identifiers":         {},
	"keywords":            {},
	"license":             {},
	"license-url":         {},
	"message":             {},
	"preferred-citation":  {},
	"references":          {},
	"repository":          {},
	"repository-artifact": {},
	"repository-code":     {},
	"title":               {},
	"type":                {},
	"url":                 {},
	"version":             {},
}

// CitationAnalyser inspects CITATION.cff files.
type CitationAnalyser struct{}

// ID returns the analyser identifier.
func (citationAnalyser *CitationAnalyser) ID() string {
	return citationAnalyserIDConstant
}

// Type returns the processor type.
func (citationAnalyser *CitationAnalyser) Type() Type {
	return TypeCitation
}

// Scan validates citation files and extracts citation metadata.
func (citationAnalyser *CitationAnalyser) Scan(executionContext context.Context, codebaseContext *codebase.Context, configuration Configuration) (*finding.Result, error) {
	result := finding.NewResult(citationAnalyserIDConstant)

	citationFiles := codebaseContext.FilesMatching(citationFilePatternConstant)
	if len(citationFiles) > 1 {
		result.AddIssue(2, "", multipleCitationFilesMessageConstant)
	}

	for _, citationFile := range citationFiles {
		content, readError := os.ReadFile(codebaseContext.AbsolutePath(citationFile.RelativePath))
		if readError != nil {
			result.AddIssue(2, citationFile.RelativePath, invalidCitationFileMessageConstant)
			continue
		}

		document := map[string]any{}
		if unmarshalError := yaml.Unmarshal(content, &document); unmarshalError != nil {
			result.AddIssue(2, citationFile.RelativePath, invalidCitationFileMessageConstant)
			continue
		}

		result.AddNotice(3, citationFile.RelativePath, citationFileExistsMessageConstant)
		result.AddFragment(citationFileKeyConstant, citationFile.RelativePath, citationFile.RelativePath)

		attributeNames := make([]string, 0, len(document))
		for attributeName := range document {
			attributeNames = append(attributeNames, attributeName)
		}
		sort.Strings(attributeNames)

		for _, attributeName := range attributeNames {
			if _, valid := validCitationAttributes[attributeName]; !valid {
				result.AddIssue(3, citationFile.RelativePath, invalidCitationAttributeTemplateConstant, attributeName)
			}
		}

		citationAnalyser.extractAttribute(result, document, "title", citationTitleKeyConstant, citationFile.RelativePath)
		citationAnalyser.extractAttribute(result, document, "doi", citationDOIKeyConstant, citationFile.RelativePath)
		citationAnalyser.extractAttribute(result, document, "version", citationVersionKeyConstant, citationFile.RelativePath)
		citationAnalyser.extractAttribute(result, document, "license", citationLicenseKeyConstant, citationFile.RelativePath)

		// A CFF license attribute is an SPDX identifier; surface it under the
		// shared license key so disagreements with the license file are caught
		// during aggregation.
		citationAnalyser.extractAttribute(result, document, "license", licenseIdentifierKeyConstant, citationFile.RelativePath)
	}

	return result, nil
}

func (citationAnalyser *CitationAnalyser) extractAttribute(result *finding.Result, document map[string]any, attributeName string, fragmentKey string, filePath string) {
	value, present := document[attributeName]
	if !present {
		return
	}
	switch typedValue := value.(type) {
	case string:
		result.AddFragment(fragmentKey, typedValue, filePath)
	case int, float64, bool:
		result.AddFragment(fragmentKey, fmt.Sprintf("%v", typedValue), filePath)
	}
}
