// Package analyser defines the pluggable analyser contract and the built-in
// analysers that inspect one project aspect each.
//
// Analysers are read-only consumers of the codebase context: they emit
// notices and metadata fragments into a private finding.Result and never
// communicate with each other directly.
package analyser
