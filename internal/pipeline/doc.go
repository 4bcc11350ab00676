// Package pipeline orchestrates a full audit run: it validates the
// configured skip-lists, walks the code base, fans analysers out
// concurrently, aggregates their metadata fragments after a hard barrier,
// resolves issues against the rule table, and assembles the final Run.
package pipeline
