// Package codebase walks a project root exactly once and exposes a stable,
// read-only view of its file tree shared by all analysers.
//
// The walk applies configurable exclusion rules, classifies every retained
// file, and records the directory and file counters surfaced in the final
// run statistics.
package codebase
