package scan

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/codescan/internal/finding"
	"github.com/temirov/codescan/internal/pipeline"
)

const (
	commandUseConstant   = "scan [path]"
	commandShortConstant = "Audit a project tree and report issues, notices, and consolidated metadata"
	commandLongConstant  = "scan walks the project tree once, runs the registered analysers concurrently over the " +
		"shared file inventory, consolidates their metadata fragments, resolves issues against the remediation " +
		"rule table, and prints the resulting report as YAML."

	defaultRootConstant = "."

	flagSkipAnalyserNameConstant        = "skip-analyser"
	flagSkipAnalyserDescriptionConstant = "Analyser identifiers to exclude from the run."

	flagSkipAggregatorNameConstant        = "skip-aggregator"
	flagSkipAggregatorDescriptionConstant = "Aggregator identifiers to exclude from the run."

	flagSkipTypeNameConstant        = "skip-type"
	flagSkipTypeDescriptionConstant = "Processor types to exclude from the run."

	flagLevelNameConstant        = "level"
	flagLevelDescriptionConstant = "Surface findings up to this level (1-5)."

	flagReferenceNameConstant        = "reference"
	flagReferenceDescriptionConstant = "Path to a YAML reference metadata record to compare against."

	flagRulesNameConstant        = "rules"
	flagRulesDescriptionConstant = "Path to a remediation rule table overriding the built-in rules."

	flagExcludeNameConstant        = "exclude"
	flagExcludeDescriptionConstant = "Additional exclusion rules applied during the tree walk."

	flagDedupNameConstant        = "dedup"
	flagDedupDescriptionConstant = "Drop repeated notices with identical kind, source, and text."

	reportMarshalErrorTemplateConstant = "unable to encode report: %w"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the configured defaults for the scan command.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the scan cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Orchestrator          *pipeline.Orchestrator
}

// Build constructs the cobra command for project tree audits.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortConstant,
		Long:  commandLongConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringSlice(flagSkipAnalyserNameConstant, nil, flagSkipAnalyserDescriptionConstant)
	command.Flags().StringSlice(flagSkipAggregatorNameConstant, nil, flagSkipAggregatorDescriptionConstant)
	command.Flags().StringSlice(flagSkipTypeNameConstant, nil, flagSkipTypeDescriptionConstant)
	command.Flags().Int(flagLevelNameConstant, int(pipeline.DefaultMessageLevel), flagLevelDescriptionConstant)
	command.Flags().String(flagReferenceNameConstant, "", flagReferenceDescriptionConstant)
	command.Flags().String(flagRulesNameConstant, "", flagRulesDescriptionConstant)
	command.Flags().StringSlice(flagExcludeNameConstant, nil, flagExcludeDescriptionConstant)
	command.Flags().Bool(flagDedupNameConstant, false, flagDedupDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command, arguments)

	orchestrator := builder.Orchestrator
	if orchestrator == nil {
		orchestrator = pipeline.NewOrchestrator(nil, nil, builder.resolveLogger())
	}

	run, runError := orchestrator.Run(command.Context(), options)
	if runError != nil {
		return runError
	}

	encodedRun, marshalError := yaml.Marshal(run)
	if marshalError != nil {
		return fmt.Errorf(reportMarshalErrorTemplateConstant, marshalError)
	}

	_, writeError := command.OutOrStdout().Write(encodedRun)
	return writeError
}

// parseOptions folds the configured defaults with explicit flag overrides.
func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) pipeline.Options {
	configuration := builder.resolveConfiguration()

	options := pipeline.Options{
		Root:                  defaultRootConstant,
		SkipAnalysers:         configuration.SkipAnalysers,
		SkipAggregators:       configuration.SkipAggregators,
		SkipTypes:             configuration.SkipTypes,
		MessageLevel:          finding.NoticeLevel(configuration.Level),
		ReferenceMetadataPath: configuration.Reference,
		RuleTablePath:         configuration.Rules,
		ExcludePatterns:       configuration.Exclude,
		DeduplicateNotices:    configuration.Deduplicate,
	}

	if len(arguments) > 0 {
		options.Root = arguments[0]
	}

	commandFlags := command.Flags()
	if commandFlags.Changed(flagSkipAnalyserNameConstant) {
		options.SkipAnalysers, _ = commandFlags.GetStringSlice(flagSkipAnalyserNameConstant)
	}
	if commandFlags.Changed(flagSkipAggregatorNameConstant) {
		options.SkipAggregators, _ = commandFlags.GetStringSlice(flagSkipAggregatorNameConstant)
	}
	if commandFlags.Changed(flagSkipTypeNameConstant) {
		options.SkipTypes, _ = commandFlags.GetStringSlice(flagSkipTypeNameConstant)
	}
	if commandFlags.Changed(flagLevelNameConstant) {
		levelValue, _ := commandFlags.GetInt(flagLevelNameConstant)
		options.MessageLevel = finding.NoticeLevel(levelValue)
	}
	if commandFlags.Changed(flagReferenceNameConstant) {
		options.ReferenceMetadataPath, _ = commandFlags.GetString(flagReferenceNameConstant)
	}
	if commandFlags.Changed(flagRulesNameConstant) {
		options.RuleTablePath, _ = commandFlags.GetString(flagRulesNameConstant)
	}
	if commandFlags.Changed(flagExcludeNameConstant) {
		options.ExcludePatterns, _ = commandFlags.GetStringSlice(flagExcludeNameConstant)
	}
	if commandFlags.Changed(flagDedupNameConstant) {
		options.DeduplicateNotices, _ = commandFlags.GetBool(flagDedupNameConstant)
	}

	return options
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{Level: int(pipeline.DefaultMessageLevel)}
	}
	return builder.ConfigurationProvider()
}
