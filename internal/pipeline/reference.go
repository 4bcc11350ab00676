package pipeline

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/temirov/codescan/internal/finding"
)

const (
	referenceSourceConstant = "reference"

	missingAttributeTemplateConstant    = "Missing metadata attribute %s."
	mismatchedAttributeTemplateConstant = "Metadata attribute %s does not match the reference value."

	referenceReadErrorTemplateConstant  = "unable to read reference metadata %s: %w"
	referenceParseErrorTemplateConstant = "invalid reference metadata %s: %w"
)

// compareReferenceMetadata diffs the consolidated metadata against a YAML
// reference record. Every reference attribute that is absent from the run
// raises a missing-attribute issue; every present attribute whose value
// differs raises a mismatch issue. Keys consolidated to the conflict sentinel
// are skipped since the conflict was already reported. Attributes are
// compared in sorted key order so runs stay deterministic.
func compareReferenceMetadata(referencePath string, metadataEntries map[string]finding.ConsolidatedEntry) ([]finding.Notice, error) {
	referenceContent, readError := os.ReadFile(referencePath)
	if readError != nil {
		return nil, fmt.Errorf(referenceReadErrorTemplateConstant, referencePath, readError)
	}

	referenceAttributes := map[string]any{}
	if unmarshalError := yaml.Unmarshal(referenceContent, &referenceAttributes); unmarshalError != nil {
		return nil, fmt.Errorf(referenceParseErrorTemplateConstant, referencePath, unmarshalError)
	}

	referenceKeys := make([]string, 0, len(referenceAttributes))
	for referenceKey := range referenceAttributes {
		referenceKeys = append(referenceKeys, referenceKey)
	}
	sort.Strings(referenceKeys)

	var notices []finding.Notice
	for _, referenceKey := range referenceKeys {
		entry, present := metadataEntries[referenceKey]
		if !present {
			notices = append(notices, finding.Notice{
				Kind:            finding.NoticeKindIssue,
				MessageTemplate: missingAttributeTemplateConstant,
				Parameters:      []any{referenceKey},
				Level:           2,
				Source:          referenceSourceConstant,
			})
			continue
		}

		if sentinel, isText := entry.Value.(string); isText && sentinel == finding.MultipleValuesSentinel {
			continue
		}

		if !valuesEquivalent(entry.Value, referenceAttributes[referenceKey]) {
			notices = append(notices, finding.Notice{
				Kind:            finding.NoticeKindIssue,
				MessageTemplate: mismatchedAttributeTemplateConstant,
				Parameters:      []any{referenceKey},
				Level:           2,
				Source:          referenceSourceConstant,
			})
		}
	}

	return notices, nil
}

// valuesEquivalent compares a consolidated value with a decoded YAML value by
// their textual rendering, so numeric and typed representations of the same
// value do not report spurious mismatches.
func valuesEquivalent(consolidatedValue any, referenceValue any) bool {
	return fmt.Sprint(consolidatedValue) == fmt.Sprint(referenceValue)
}
