package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/codescan/internal/aggregate"
	"github.com/temirov/codescan/internal/analyser"
	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
	"github.com/temirov/codescan/internal/rules"
)

const (
	// DefaultMessageLevel is the surfacing threshold applied when the
	// options leave the level unset.
	DefaultMessageLevel finding.NoticeLevel = 3

	analyserFailedTemplateConstant    = "%s analyser failed."
	noticeFingerprintTemplateConstant = "%s|%s|%s"

	walkCompletedMessageConstant   = "code base walked"
	runningAnalyserMessageConstant = "running analyser"
	analyserPanicMessageConstant   = "analyser panicked"
	analyserErrorMessageConstant   = "analyser returned an error"
	runCompletedMessageConstant    = "analysis completed"

	logFieldRootConstant        = "root"
	logFieldAnalyserConstant    = "analyser"
	logFieldPanicConstant       = "panic"
	logFieldDirectoriesConstant = "directories"
	logFieldFilesConstant       = "files"
	logFieldIssuesConstant      = "issues"
	logFieldNoticesConstant     = "notices"
	logFieldErrorsConstant      = "errors"
	logFieldDurationConstant    = "duration"
)

// Options configures a single pipeline run.
type Options struct {
	Root                  string
	SkipAnalysers         []string
	SkipAggregators       []string
	SkipTypes             []string
	MessageLevel          finding.NoticeLevel
	ReferenceMetadataPath string
	RuleTablePath         string
	ExcludePatterns       []string
	DeduplicateNotices    bool
}

// Orchestrator drives analysers, aggregation, and issue resolution over one
// code base and assembles the resulting Run.
type Orchestrator struct {
	analysers []analyser.Analyser
	engine    *aggregate.Engine
	logger    *zap.Logger
}

// NewOrchestrator builds an orchestrator over the given analysers and
// aggregation engine. Nil arguments select the built-in analyser registry,
// the built-in categories, and a no-op logger.
func NewOrchestrator(analysers []analyser.Analyser, engine *aggregate.Engine, logger *zap.Logger) *Orchestrator {
	if analysers == nil {
		analysers = analyser.Builtin()
	}
	if engine == nil {
		engine = aggregate.NewEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{analysers: analysers, engine: engine, logger: logger}
}

// Run executes the full pipeline: skip-list validation, the code base walk,
// the concurrent analyser phase, the aggregation barrier, the optional
// reference metadata comparison, issue resolution, and level filtering.
func (orchestrator *Orchestrator) Run(executionContext context.Context, options Options) (*finding.Run, error) {
	startTime := time.Now()

	messageLevel := options.MessageLevel
	if messageLevel == 0 {
		messageLevel = DefaultMessageLevel
	}
	if !messageLevel.Valid() {
		return nil, &ConfigurationError{Parameter: messageLevelParameterConstant, Value: strconv.Itoa(int(messageLevel))}
	}

	if validationError := orchestrator.validateSkipLists(options); validationError != nil {
		return nil, validationError
	}

	ruleTable, ruleTableError := orchestrator.loadRuleTable(options.RuleTablePath)
	if ruleTableError != nil {
		return nil, ruleTableError
	}

	selectedAnalysers := orchestrator.selectAnalysers(options)

	excludePatterns := append(analyser.ExcludePatterns(), options.ExcludePatterns...)
	codebaseContext, contextError := codebase.NewContext(options.Root, codebase.Options{ExcludePatterns: excludePatterns})
	if contextError != nil {
		return nil, contextError
	}

	codebaseStatistics := codebaseContext.Statistics()
	orchestrator.logger.Debug(walkCompletedMessageConstant,
		zap.String(logFieldRootConstant, codebaseContext.Root()),
		zap.Int(logFieldDirectoriesConstant, codebaseStatistics.DirectoryCount),
		zap.Int(logFieldFilesConstant, codebaseStatistics.FileCount),
	)

	configuration := analyser.Configuration{}
	analyserResults := make([]*finding.Result, len(selectedAnalysers))

	waitGroup, groupContext := errgroup.WithContext(executionContext)
	for analyserIndex, selectedAnalyser := range selectedAnalysers {
		analyserIndex, selectedAnalyser := analyserIndex, selectedAnalyser
		waitGroup.Go(func() error {
			analyserResults[analyserIndex] = orchestrator.runAnalyser(groupContext, selectedAnalyser, codebaseContext, configuration)
			return nil
		})
	}
	_ = waitGroup.Wait()

	mergedResult := finding.NewResult("")
	for _, analyserResult := range analyserResults {
		mergedResult.Merge(analyserResult)
	}

	metadataEntries, aggregationNotices := orchestrator.engine.Aggregate(mergedResult.Fragments, orchestrator.aggregatorSkipSet(options))

	allNotices := append(mergedResult.Notices, aggregationNotices...)

	if len(options.ReferenceMetadataPath) > 0 {
		referenceNotices, referenceError := compareReferenceMetadata(options.ReferenceMetadataPath, metadataEntries)
		if referenceError != nil {
			return nil, referenceError
		}
		allNotices = append(allNotices, referenceNotices...)
	}

	suppressedCount := 0
	if options.DeduplicateNotices {
		deduplicatedNotices, duplicateCount := deduplicateNotices(allNotices)
		allNotices = deduplicatedNotices
		suppressedCount += duplicateCount
	}

	var issues []finding.Issue
	var surfacedNotices []finding.Notice
	issueCount := 0
	errorCount := 0

	for _, notice := range allNotices {
		switch notice.Kind {
		case finding.NoticeKindIssue:
			issueCount++
		case finding.NoticeKindError:
			errorCount++
		}

		if notice.Level > messageLevel {
			suppressedCount++
			continue
		}

		if notice.Kind == finding.NoticeKindIssue {
			issues = append(issues, ruleTable.Resolve(notice))
			continue
		}
		surfacedNotices = append(surfacedNotices, notice)
	}

	endTime := time.Now()
	run := &finding.Run{
		Root:     codebaseContext.Root(),
		Issues:   issues,
		Notices:  surfacedNotices,
		Metadata: metadataEntries,
		Statistics: finding.RunStatistics{
			RootPath:               codebaseContext.Root(),
			StartTime:              startTime,
			EndTime:                endTime,
			DurationSeconds:        endTime.Sub(startTime).Seconds(),
			DirectoryCount:         codebaseStatistics.DirectoryCount,
			ExcludedDirectoryCount: codebaseStatistics.ExcludedDirectoryCount,
			FileCount:              codebaseStatistics.FileCount,
			AnalyserCount:          len(selectedAnalysers),
			NoticeCount:            len(allNotices),
			SuppressedNoticeCount:  suppressedCount,
			IssueCount:             issueCount,
			ErrorCount:             errorCount,
		},
	}

	orchestrator.logger.Info(runCompletedMessageConstant,
		zap.String(logFieldRootConstant, run.Root),
		zap.Int(logFieldIssuesConstant, issueCount),
		zap.Int(logFieldNoticesConstant, len(allNotices)),
		zap.Int(logFieldErrorsConstant, errorCount),
		zap.Duration(logFieldDurationConstant, endTime.Sub(startTime)),
	)

	return run, nil
}

// runAnalyser executes one analyser in isolation. A returned error or a panic
// never aborts the run; the analyser's partial output is discarded and a
// single error notice naming the analyser is synthesized instead.
func (orchestrator *Orchestrator) runAnalyser(executionContext context.Context, selectedAnalyser analyser.Analyser, codebaseContext *codebase.Context, configuration analyser.Configuration) (analyserResult *finding.Result) {
	analyserIdentifier := selectedAnalyser.ID()

	defer func() {
		if panicValue := recover(); panicValue != nil {
			orchestrator.logger.Warn(analyserPanicMessageConstant,
				zap.String(logFieldAnalyserConstant, analyserIdentifier),
				zap.Any(logFieldPanicConstant, panicValue),
			)
			analyserResult = orchestrator.failedAnalyserResult(analyserIdentifier)
		}
	}()

	orchestrator.logger.Debug(runningAnalyserMessageConstant, zap.String(logFieldAnalyserConstant, analyserIdentifier))

	scanResult, scanError := selectedAnalyser.Scan(executionContext, codebaseContext, configuration)
	if scanError != nil {
		orchestrator.logger.Warn(analyserErrorMessageConstant,
			zap.String(logFieldAnalyserConstant, analyserIdentifier),
			zap.Error(scanError),
		)
		return orchestrator.failedAnalyserResult(analyserIdentifier)
	}
	if scanResult == nil {
		return finding.NewResult(analyserIdentifier)
	}
	return scanResult
}

func (orchestrator *Orchestrator) failedAnalyserResult(analyserIdentifier string) *finding.Result {
	failedResult := finding.NewResult(analyserIdentifier)
	failedResult.AddError(finding.NoticeLevelMinimum, "", analyserFailedTemplateConstant, analyserIdentifier)
	return failedResult
}

// validateSkipLists rejects skip entries naming no known analyser,
// aggregator, or processor type before any file is scanned.
func (orchestrator *Orchestrator) validateSkipLists(options Options) error {
	analyserIdentifiers := map[string]struct{}{}
	knownTypes := orchestrator.engine.CategoryTypes()
	for _, registeredAnalyser := range orchestrator.analysers {
		analyserIdentifiers[registeredAnalyser.ID()] = struct{}{}
		knownTypes[string(registeredAnalyser.Type())] = struct{}{}
	}

	aggregatorIdentifiers := map[string]struct{}{}
	for _, aggregatorIdentifier := range orchestrator.engine.CategoryIdentifiers() {
		aggregatorIdentifiers[aggregatorIdentifier] = struct{}{}
	}

	for _, skippedAnalyser := range options.SkipAnalysers {
		if _, known := analyserIdentifiers[skippedAnalyser]; !known {
			return &ConfigurationError{Parameter: analyserParameterConstant, Value: skippedAnalyser}
		}
	}
	for _, skippedAggregator := range options.SkipAggregators {
		if _, known := aggregatorIdentifiers[skippedAggregator]; !known {
			return &ConfigurationError{Parameter: aggregatorParameterConstant, Value: skippedAggregator}
		}
	}
	for _, skippedType := range options.SkipTypes {
		if _, known := knownTypes[skippedType]; !known {
			return &ConfigurationError{Parameter: processorTypeParameterConstant, Value: skippedType}
		}
	}
	return nil
}

// selectAnalysers filters the registry by the analyser and type skip-lists,
// preserving registration order.
func (orchestrator *Orchestrator) selectAnalysers(options Options) []analyser.Analyser {
	skippedAnalysers := stringSet(options.SkipAnalysers)
	skippedTypes := stringSet(options.SkipTypes)

	var selectedAnalysers []analyser.Analyser
	for _, registeredAnalyser := range orchestrator.analysers {
		if _, skipped := skippedAnalysers[registeredAnalyser.ID()]; skipped {
			continue
		}
		if _, skipped := skippedTypes[string(registeredAnalyser.Type())]; skipped {
			continue
		}
		selectedAnalysers = append(selectedAnalysers, registeredAnalyser)
	}
	return selectedAnalysers
}

// aggregatorSkipSet combines the aggregator and type skip-lists for the
// aggregation engine.
func (orchestrator *Orchestrator) aggregatorSkipSet(options Options) map[string]struct{} {
	skipSet := stringSet(options.SkipAggregators)
	for _, skippedType := range options.SkipTypes {
		skipSet[skippedType] = struct{}{}
	}
	return skipSet
}

// loadRuleTable compiles the rule table from the given path, falling back to
// the embedded default table. Malformed tables abort the run.
func (orchestrator *Orchestrator) loadRuleTable(ruleTablePath string) (*rules.Table, error) {
	if len(ruleTablePath) > 0 {
		return rules.LoadTable(ruleTablePath)
	}
	return rules.DefaultTable()
}

// deduplicateNotices keeps the first notice of every rendered-text, source,
// and kind combination and reports how many duplicates were dropped.
func deduplicateNotices(notices []finding.Notice) ([]finding.Notice, int) {
	seenFingerprints := map[string]struct{}{}
	deduplicated := make([]finding.Notice, 0, len(notices))
	duplicateCount := 0

	for _, notice := range notices {
		fingerprint := fmt.Sprintf(noticeFingerprintTemplateConstant, notice.Kind, notice.Source, notice.RenderedMessage())
		if _, seen := seenFingerprints[fingerprint]; seen {
			duplicateCount++
			continue
		}
		seenFingerprints[fingerprint] = struct{}{}
		deduplicated = append(deduplicated, notice)
	}

	return deduplicated, duplicateCount
}

func stringSet(values []string) map[string]struct{} {
	valueSet := map[string]struct{}{}
	for _, value := range values {
		valueSet[value] = struct{}{}
	}
	return valueSet
}
