package finding

import "time"

// RunStatistics summarizes a completed pipeline run.
type RunStatistics struct {
	RootPath               string    `yaml:"root_path"`
	StartTime              time.Time `yaml:"start_time"`
	EndTime                time.Time `yaml:"end_time"`
	DurationSeconds        float64   `yaml:"duration_seconds"`
	DirectoryCount         int       `yaml:"num_dirs"`
	ExcludedDirectoryCount int       `yaml:"num_dirs_excluded"`
	FileCount              int       `yaml:"num_files"`
	AnalyserCount          int       `yaml:"num_analysers"`
	NoticeCount            int       `yaml:"num_notices"`
	SuppressedNoticeCount  int       `yaml:"num_notices_suppressed"`
	IssueCount             int       `yaml:"num_issues"`
	ErrorCount             int       `yaml:"num_errors"`
}

// Run is the finalized outcome of a pipeline execution: resolved issues, the
// consolidated metadata mapping, the surfaced notices, and run statistics.
// A run is assembled once by the orchestrator and never mutated afterwards.
type Run struct {
	Root       string                       `yaml:"root"`
	Issues     []Issue                      `yaml:"issues"`
	Notices    []Notice                     `yaml:"notices,omitempty"`
	Metadata   map[string]ConsolidatedEntry `yaml:"metadata"`
	Statistics RunStatistics                `yaml:"stats"`
}
