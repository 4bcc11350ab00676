package analyser

import (
	"context"
	"encoding/json"
	"os"

	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
)

const (
	notebookAnalyserIDConstant         = "notebook"
	notebookCountKeyConstant           = "notebook.count"
	invalidNotebookMessageConstant     = "Invalid notebook file."
	notebookHasOutputsTemplateConstant = "Notebook %s has execution outputs."
)

type notebookCell struct {
	CellType string `json:"cell_type"`
	Outputs  []any  `json:"outputs"`
}

type notebookDocument struct {
	Cells []notebookCell `json:"cells"`
}

// NotebookAnalyser inspects Jupyter notebooks.
type NotebookAnalyser struct{}

// ID returns the analyser identifier.
func (notebookAnalyser *NotebookAnalyser) ID() string {
	return notebookAnalyserIDConstant
}

// Type returns the processor type.
func (notebookAnalyser *NotebookAnalyser) Type() Type {
	return TypeNotebook
}

// Scan parses notebooks and flags committed execution outputs.
func (notebookAnalyser *NotebookAnalyser) Scan(executionContext context.Context, codebaseContext *codebase.Context, configuration Configuration) (*finding.Result, error) {
	result := finding.NewResult(notebookAnalyserIDConstant)

	notebookFiles := codebaseContext.FilesByCategory(codebase.FileCategoryNotebook)
	if len(notebookFiles) == 0 {
		return result, nil
	}

	for _, notebookFile := range notebookFiles {
		content, readError := os.ReadFile(codebaseContext.AbsolutePath(notebookFile.RelativePath))
		if readError != nil {
			result.AddIssue(2, notebookFile.RelativePath, invalidNotebookMessageConstant)
			continue
		}

		var document notebookDocument
		if unmarshalError := json.Unmarshal(content, &document); unmarshalError != nil {
			result.AddIssue(2, notebookFile.RelativePath, invalidNotebookMessageConstant)
			continue
		}

		for _, cell := range document.Cells {
			if len(cell.Outputs) > 0 {
				result.AddIssue(3, notebookFile.RelativePath, notebookHasOutputsTemplateConstant, notebookFile.RelativePath)
				break
			}
		}
	}

	result.AddFragment(notebookCountKeyConstant, len(notebookFiles), "")
	return result, nil
}
