package aggregate

import (
	"reflect"
	"strings"

	"github.com/temirov/codescan/internal/finding"
)

const (
	multipleValuesTemplateConstant = "Multiple values exists for %s."
	keySeparatorConstant           = "."
	catchAllCategoryIDConstant     = "metadata"
)

// Engine reduces grouped metadata fragments to consolidated entries.
type Engine struct {
	categories []Category
}

// NewEngine builds an engine over the built-in aggregator categories.
func NewEngine() *Engine {
	return NewEngineWithCategories(Categories())
}

// NewEngineWithCategories builds an engine over the given categories.
func NewEngineWithCategories(categories []Category) *Engine {
	return &Engine{categories: categories}
}

// CategoryIdentifiers returns the aggregator ids in registration order.
func (engine *Engine) CategoryIdentifiers() []string {
	identifiers := make([]string, 0, len(engine.categories))
	for _, category := range engine.categories {
		identifiers = append(identifiers, category.ID)
	}
	return identifiers
}

// CategoryTypes returns the set of processor types covered by the categories.
func (engine *Engine) CategoryTypes() map[string]struct{} {
	types := map[string]struct{}{}
	for _, category := range engine.categories {
		types[string(category.Type)] = struct{}{}
	}
	return types
}

// Aggregate groups the fragments by key and resolves every key of every
// non-skipped category: unanimous values consolidate, disagreements resolve
// to the sentinel with a conflict issue, and expected keys with no fragments
// raise absence issues. Fragment order within a key follows emission order.
func (engine *Engine) Aggregate(fragments []finding.Fragment, skipCategories map[string]struct{}) (map[string]finding.ConsolidatedEntry, []finding.Notice) {
	groupedFragments := map[string][]finding.Fragment{}
	var keyOrder []string

	for _, fragment := range fragments {
		if _, seen := groupedFragments[fragment.Key]; !seen {
			keyOrder = append(keyOrder, fragment.Key)
		}
		groupedFragments[fragment.Key] = append(groupedFragments[fragment.Key], fragment)
	}

	entries := map[string]finding.ConsolidatedEntry{}
	var notices []finding.Notice

	for _, category := range engine.categories {
		if engine.categorySkipped(category, skipCategories) {
			continue
		}

		for _, key := range keyOrder {
			if engine.categoryForKey(key) != category.ID {
				continue
			}

			entry, conflict := resolveKey(key, groupedFragments[key])
			entries[key] = entry
			if conflict {
				notices = append(notices, finding.Notice{
					Kind:            finding.NoticeKindIssue,
					MessageTemplate: multipleValuesTemplateConstant,
					Parameters:      []any{key},
					Level:           2,
					Source:          category.ID,
				})
			}
		}

		for _, expectedKey := range category.ExpectedKeys {
			if _, present := groupedFragments[expectedKey.Key]; present {
				continue
			}
			notices = append(notices, finding.Notice{
				Kind:            finding.NoticeKindIssue,
				MessageTemplate: expectedKey.AbsenceTemplate,
				Level:           1,
				Source:          category.ID,
			})
		}
	}

	return entries, notices
}

func (engine *Engine) categorySkipped(category Category, skipCategories map[string]struct{}) bool {
	if skipCategories == nil {
		return false
	}
	if _, skipped := skipCategories[category.ID]; skipped {
		return true
	}
	_, skipped := skipCategories[string(category.Type)]
	return skipped
}

// categoryForKey maps a dotted key to the category owning its namespace,
// falling back to the catch-all metadata category.
func (engine *Engine) categoryForKey(key string) string {
	namespace := key
	if separatorIndex := strings.Index(key, keySeparatorConstant); separatorIndex >= 0 {
		namespace = key[:separatorIndex]
	}

	for _, category := range engine.categories {
		if category.ID == namespace {
			return category.ID
		}
	}
	return catchAllCategoryIDConstant
}

// resolveKey consolidates the fragments of one key. It reports a conflict
// when two or more distinct values were emitted; no key is ever resolved by
// precedence when values genuinely differ.
func resolveKey(key string, keyFragments []finding.Fragment) (finding.ConsolidatedEntry, bool) {
	entry := finding.ConsolidatedEntry{
		Key:       key,
		Fragments: keyFragments,
	}

	var distinctValues []any
	for _, fragment := range keyFragments {
		duplicate := false
		for _, knownValue := range distinctValues {
			if reflect.DeepEqual(knownValue, fragment.Value) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			distinctValues = append(distinctValues, fragment.Value)
		}
	}

	if len(distinctValues) == 1 {
		entry.Value = distinctValues[0]
		return entry, false
	}

	entry.Value = finding.MultipleValuesSentinel
	return entry, true
}
