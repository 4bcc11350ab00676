package finding

// Result collects the notices and fragments emitted by a single analyser.
// Each analyser owns its result exclusively while scanning; the orchestrator
// merges completed results after all analysers finish, so no locking is
// required.
type Result struct {
	Source    string
	Notices   []Notice
	Fragments []Fragment
}

// NewResult creates an empty result attributed to the given analyser id.
func NewResult(source string) *Result {
	return &Result{Source: source}
}

// AddNotice appends a plain notice rendered from the template and parameters.
func (result *Result) AddNotice(level NoticeLevel, location string, messageTemplate string, parameters ...any) {
	result.appendNotice(NoticeKindNotice, level, location, messageTemplate, parameters...)
}

// AddIssue appends an issue-kind notice eligible for rule resolution.
func (result *Result) AddIssue(level NoticeLevel, location string, messageTemplate string, parameters ...any) {
	result.appendNotice(NoticeKindIssue, level, location, messageTemplate, parameters...)
}

// AddError appends an error-kind notice reported verbatim in the run.
func (result *Result) AddError(level NoticeLevel, location string, messageTemplate string, parameters ...any) {
	result.appendNotice(NoticeKindError, level, location, messageTemplate, parameters...)
}

func (result *Result) appendNotice(kind NoticeKind, level NoticeLevel, location string, messageTemplate string, parameters ...any) {
	result.Notices = append(result.Notices, Notice{
		Kind:            kind,
		MessageTemplate: messageTemplate,
		Parameters:      parameters,
		Level:           level,
		Source:          result.Source,
		Location:        location,
	})
}

// AddFragment appends a metadata fragment for the given dotted key. Empty
// values are dropped so absence stays detectable by the aggregation engine.
func (result *Result) AddFragment(key string, value any, file string) {
	if value == nil {
		return
	}
	if text, isText := value.(string); isText && len(text) == 0 {
		return
	}
	result.Fragments = append(result.Fragments, Fragment{
		Key:    key,
		Value:  value,
		Source: result.Source,
		File:   file,
		Order:  len(result.Fragments),
	})
}

// Merge appends another result's notices and fragments, renumbering fragment
// order so first-emitted ordering stays global across analysers.
func (result *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	result.Notices = append(result.Notices, other.Notices...)
	for _, fragment := range other.Fragments {
		fragment.Order = len(result.Fragments)
		result.Fragments = append(result.Fragments, fragment)
	}
}
