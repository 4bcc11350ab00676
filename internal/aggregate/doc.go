// Package aggregate consolidates metadata fragments emitted by analysers
// into single attribute values grouped by aggregator category.
//
// Disagreement between fragments is a first-class output: conflicting keys
// resolve to a sentinel value and raise an issue instead of silently picking
// a winner, and expected keys with no fragments raise absence notices.
package aggregate
