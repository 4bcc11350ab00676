package aggregate

import "github.com/temirov/codescan/internal/analyser"

// ExpectedKey declares a metadata key an aggregator category expects to see,
// together with the notice raised when no analyser contributed it.
type ExpectedKey struct {
	Key             string
	AbsenceTemplate string
}

// Category groups metadata keys sharing a namespace under one independently
// skippable aggregator.
type Category struct {
	ID           string
	Type         analyser.Type
	ExpectedKeys []ExpectedKey
}

// Categories returns the built-in aggregator categories in stable order. The
// trailing metadata category is the catch-all that absorbs keys outside the
// named namespaces.
func Categories() []Category {
	return []Category{
		{
			ID:   "citation",
			Type: analyser.TypeCitation,
			ExpectedKeys: []ExpectedKey{
				{Key: "citation.file", AbsenceTemplate: "No citation file."},
			},
		},
		{
			ID:   "code",
			Type: analyser.TypeCode,
		},
		{
			ID:   "community",
			Type: analyser.TypeCommunity,
			ExpectedKeys: []ExpectedKey{
				{Key: "community.contributing_file", AbsenceTemplate: "No contributing file."},
				{Key: "community.conduct_file", AbsenceTemplate: "No code of conduct file."},
			},
		},
		{
			ID:   "documentation",
			Type: analyser.TypeDocumentation,
			ExpectedKeys: []ExpectedKey{
				{Key: "documentation.readme_file", AbsenceTemplate: "No readme file."},
				{Key: "documentation.changelog_file", AbsenceTemplate: "No changelog file."},
			},
		},
		{
			ID:   "license",
			Type: analyser.TypeLicense,
			ExpectedKeys: []ExpectedKey{
				{Key: "license.file", AbsenceTemplate: "No license file."},
			},
		},
		{
			ID:   "packaging",
			Type: analyser.TypePackaging,
			ExpectedKeys: []ExpectedKey{
				{Key: "packaging.file", AbsenceTemplate: "No packaging file."},
			},
		},
		{
			ID:   "repository",
			Type: analyser.TypeRepository,
		},
		{
			ID:   "testing",
			Type: analyser.TypeTesting,
			ExpectedKeys: []ExpectedKey{
				{Key: "testing.file_count", AbsenceTemplate: "No tests."},
			},
		},
		{
			ID:   "version_control",
			Type: analyser.TypeVersionControl,
			ExpectedKeys: []ExpectedKey{
				{Key: "version_control.system", AbsenceTemplate: "No version control."},
			},
		},
		{
			ID:   "metadata",
			Type: analyser.TypeMetadata,
		},
	}
}
