package finding

import "fmt"

// NoticeKind enumerates the classes of findings an analyser may emit.
type NoticeKind string

// Supported notice kinds.
const (
	NoticeKindNotice NoticeKind = "notice"
	NoticeKindIssue  NoticeKind = "issue"
	NoticeKindError  NoticeKind = "error"
)

// NoticeLevel grades notices from always-surfaced to diagnostic.
type NoticeLevel int

// Notice level bounds. Level one is always surfaced; level five is the most
// verbose diagnostic grade.
const (
	NoticeLevelMinimum NoticeLevel = 1
	NoticeLevelMaximum NoticeLevel = 5
)

// Valid reports whether the level falls inside the supported range.
func (level NoticeLevel) Valid() bool {
	return level >= NoticeLevelMinimum && level <= NoticeLevelMaximum
}

// Notice is a parameterized, leveled finding produced during scanning.
type Notice struct {
	Kind            NoticeKind  `yaml:"kind"`
	MessageTemplate string      `yaml:"message_template"`
	Parameters      []any       `yaml:"parameters,omitempty"`
	Level           NoticeLevel `yaml:"level"`
	Source          string      `yaml:"source"`
	Location        string      `yaml:"location,omitempty"`
}

// RenderedMessage expands the message template with the notice parameters.
func (notice Notice) RenderedMessage() string {
	if len(notice.Parameters) == 0 {
		return notice.MessageTemplate
	}
	return fmt.Sprintf(notice.MessageTemplate, notice.Parameters...)
}

// Issue binds a notice to the remediation suggestion of a matched rule.
// Unresolved issues carry the notice verbatim with an empty suggestion.
type Issue struct {
	Notice     Notice `yaml:"notice"`
	Suggestion string `yaml:"suggestion,omitempty"`
	Resolved   bool   `yaml:"resolved"`
}
