package finding_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/codescan/internal/finding"
)

func TestNoticeRenderedMessage(testInstance *testing.T) {
	testCases := []struct {
		name            string
		notice          finding.Notice
		expectedMessage string
	}{
		{
			name:            "without_parameters",
			notice:          finding.Notice{MessageTemplate: "No license file."},
			expectedMessage: "No license file.",
		},
		{
			name: "with_string_parameter",
			notice: finding.Notice{
				MessageTemplate: "Invalid citation attribute %s.",
				Parameters:      []any{"middle-name"},
			},
			expectedMessage: "Invalid citation attribute middle-name.",
		},
		{
			name: "with_multiple_parameters",
			notice: finding.Notice{
				MessageTemplate: "%s dependency has no version specifier.",
				Parameters:      []any{"requests"},
			},
			expectedMessage: "requests dependency has no version specifier.",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, testCase.notice.RenderedMessage())
		})
	}
}

func TestNoticeLevelValid(testInstance *testing.T) {
	testCases := []struct {
		name          string
		level         finding.NoticeLevel
		expectedValid bool
	}{
		{name: "below_minimum", level: 0, expectedValid: false},
		{name: "minimum", level: 1, expectedValid: true},
		{name: "default", level: 3, expectedValid: true},
		{name: "maximum", level: 5, expectedValid: true},
		{name: "above_maximum", level: 6, expectedValid: false},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedValid, testCase.level.Valid())
		})
	}
}
