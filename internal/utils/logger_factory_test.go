package utils_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/codescan/internal/utils"
)

func TestCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logLevel      utils.LogLevel
		logFormat     utils.LogFormat
		expectedError bool
	}{
		{name: "debug_structured", logLevel: utils.LogLevelDebug, logFormat: utils.LogFormatStructured, expectedError: false},
		{name: "info_console", logLevel: utils.LogLevelInfo, logFormat: utils.LogFormatConsole, expectedError: false},
		{name: "warn_structured", logLevel: utils.LogLevelWarn, logFormat: utils.LogFormatStructured, expectedError: false},
		{name: "error_console", logLevel: utils.LogLevelError, logFormat: utils.LogFormatConsole, expectedError: false},
		{name: "unsupported_level", logLevel: utils.LogLevel("verbose"), logFormat: utils.LogFormatStructured, expectedError: true},
		{name: "unsupported_format", logLevel: utils.LogLevelInfo, logFormat: utils.LogFormat("plain"), expectedError: true},
	}

	loggerFactory := utils.NewLoggerFactory()

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			logger, creationError := loggerFactory.CreateLogger(testCase.logLevel, testCase.logFormat)
			if testCase.expectedError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, logger)
				return
			}
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)
		})
	}
}
