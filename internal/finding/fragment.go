package finding

// MultipleValuesSentinel replaces the consolidated value of a metadata key
// whose fragments disagree.
const MultipleValuesSentinel = "multiple"

// Fragment is one analyser's contribution to a named project attribute.
// Fragments are immutable once emitted; ownership transfers to the
// aggregation engine together with the emitting analyser's result.
type Fragment struct {
	Key    string `yaml:"key"`
	Value  any    `yaml:"value"`
	Source string `yaml:"source"`
	File   string `yaml:"file,omitempty"`
	Order  int    `yaml:"order"`
}

// ConsolidatedEntry is the single resolved value for a metadata key after
// aggregation, retaining the contributing fragments for traceability.
type ConsolidatedEntry struct {
	Key       string     `yaml:"key"`
	Value     any        `yaml:"value"`
	Fragments []Fragment `yaml:"fragments,omitempty"`
}
