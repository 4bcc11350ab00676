// Package finding defines the shared vocabulary emitted by analysers and
// consumed by the aggregation engine and issue resolver.
//
// It houses Notice, Fragment, ConsolidatedEntry, Issue, the per-analyser
// Result collector, and the finalized Run handed to report renderers.
package finding
