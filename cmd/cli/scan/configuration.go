package scan

import "github.com/temirov/codescan/internal/pipeline"

// Configuration key suffixes persisted under the command's configuration prefix.
const (
	levelConfigurationKeyConstant = ".level"
	dedupConfigurationKeyConstant = ".dedup"
)

// CommandConfiguration captures the configurable defaults of the scan command.
type CommandConfiguration struct {
	Level           int      `mapstructure:"level"`
	Rules           string   `mapstructure:"rules"`
	Reference       string   `mapstructure:"reference"`
	Exclude         []string `mapstructure:"exclude"`
	Deduplicate     bool     `mapstructure:"dedup"`
	SkipAnalysers   []string `mapstructure:"skip_analysers"`
	SkipAggregators []string `mapstructure:"skip_aggregators"`
	SkipTypes       []string `mapstructure:"skip_types"`
}

// DefaultConfigurationValues returns the Viper defaults for the scan command keyed under the given prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + levelConfigurationKeyConstant: int(pipeline.DefaultMessageLevel),
		configurationKeyPrefix + dedupConfigurationKeyConstant: false,
	}
}
