package analyser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/codescan/internal/analyser"
)

const notebookWithOutputsContent = `{
  "cells": [
    {"cell_type": "markdown", "outputs": []},
    {"cell_type": "code", "outputs": [{"output_type": "stream"}]},
    {"cell_type": "code", "outputs": [{"output_type": "stream"}]}
  ]
}`

const notebookWithoutOutputsContent = `{
  "cells": [
    {"cell_type": "code", "outputs": []}
  ]
}`

func TestNotebookAnalyserScan(testInstance *testing.T) {
	codebaseContext := newCodebaseContext(testInstance, map[string]string{
		"analysis.ipynb": notebookWithOutputsContent,
		"clean.ipynb":    notebookWithoutOutputsContent,
		"broken.ipynb":   "{not json",
	})

	result, scanError := (&analyser.NotebookAnalyser{}).Scan(context.Background(), codebaseContext, analyser.Configuration{})
	require.NoError(testInstance, scanError)

	messages := renderedMessages(result)
	require.Contains(testInstance, messages, "Invalid notebook file.")
	require.Contains(testInstance, messages, "Notebook analysis.ipynb has execution outputs.")
	require.NotContains(testInstance, messages, "Notebook clean.ipynb has execution outputs.")

	// One notice per notebook regardless of how many cells carry outputs.
	outputNoticeCount := 0
	for _, message := range messages {
		if message == "Notebook analysis.ipynb has execution outputs." {
			outputNoticeCount++
		}
	}
	require.Equal(testInstance, 1, outputNoticeCount)

	count, present := fragmentValue(result, "notebook.count")
	require.True(testInstance, present)
	require.Equal(testInstance, 3, count)
}

func TestNotebookAnalyserWithoutNotebooks(testInstance *testing.T) {
	codebaseContext := newCodebaseContext(testInstance, map[string]string{
		"module.py": `"""doc"""`,
	})

	result, scanError := (&analyser.NotebookAnalyser{}).Scan(context.Background(), codebaseContext, analyser.Configuration{})
	require.NoError(testInstance, scanError)
	require.Empty(testInstance, result.Fragments)
	require.Empty(testInstance, result.Notices)
}
