package pipeline

import "fmt"

const configurationErrorTemplateConstant = "unknown %s identifier: %s"

// Configuration parameter names used in validation errors.
const (
	analyserParameterConstant      = "analyser"
	aggregatorParameterConstant    = "aggregator"
	processorTypeParameterConstant = "processor type"
	messageLevelParameterConstant  = "message level"
)

// ConfigurationError reports an invalid pipeline configuration value. It is
// fatal and raised before any file is scanned.
type ConfigurationError struct {
	Parameter string
	Value     string
}

// Error renders the configuration error message.
func (configurationError *ConfigurationError) Error() string {
	return fmt.Sprintf(configurationErrorTemplateConstant, configurationError.Parameter, configurationError.Value)
}
