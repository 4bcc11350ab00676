package analyser_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/codescan/internal/analyser"
)

func TestLicenseAnalyserIdentifiesEmbeddedReferenceText(testInstance *testing.T) {
	referenceText, readError := os.ReadFile("data/licenses/MIT.txt")
	require.NoError(testInstance, readError)

	codebaseContext := newCodebaseContext(testInstance, map[string]string{
		"LICENSE": string(referenceText),
	})

	result, scanError := (&analyser.LicenseAnalyser{}).Scan(context.Background(), codebaseContext, analyser.Configuration{})
	require.NoError(testInstance, scanError)

	identifier, present := fragmentValue(result, "license.identifier")
	require.True(testInstance, present)
	require.Equal(testInstance, "MIT", identifier)

	filePath, present := fragmentValue(result, "license.file")
	require.True(testInstance, present)
	require.Equal(testInstance, "LICENSE", filePath)

	require.NotContains(testInstance, renderedMessages(result), "Unknown license.")
	require.Contains(testInstance, renderedMessages(result), "License file exists.")
}

func TestLicenseAnalyserFlagsUnknownText(testInstance *testing.T) {
	codebaseContext := newCodebaseContext(testInstance, map[string]string{
		"LICENSE": "You may do whatever you want with this code, no questions asked.",
	})

	result, scanError := (&analyser.LicenseAnalyser{}).Scan(context.Background(), codebaseContext, analyser.Configuration{})
	require.NoError(testInstance, scanError)

	require.Contains(testInstance, renderedMessages(result), "Unknown license.")

	_, present := fragmentValue(result, "license.identifier")
	require.False(testInstance, present)
}

func TestLicenseAnalyserFlagsMultipleFiles(testInstance *testing.T) {
	referenceText, readError := os.ReadFile("data/licenses/MIT.txt")
	require.NoError(testInstance, readError)

	codebaseContext := newCodebaseContext(testInstance, map[string]string{
		"LICENSE":     string(referenceText),
		"LICENSE.txt": string(referenceText),
	})

	result, scanError := (&analyser.LicenseAnalyser{}).Scan(context.Background(), codebaseContext, analyser.Configuration{})
	require.NoError(testInstance, scanError)
	require.Contains(testInstance, renderedMessages(result), "Multiple license files found.")
}

func TestLicenseAnalyserWithoutLicenseFile(testInstance *testing.T) {
	codebaseContext := newCodebaseContext(testInstance, map[string]string{
		"README.md": "readme",
	})

	result, scanError := (&analyser.LicenseAnalyser{}).Scan(context.Background(), codebaseContext, analyser.Configuration{})
	require.NoError(testInstance, scanError)
	require.Empty(testInstance, result.Notices)
	require.Empty(testInstance, result.Fragments)
}
