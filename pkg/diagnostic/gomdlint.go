package diagnostic

import (
	"encoding/json"
	"fmt"

	"github.com/yaklabco/diagview/internal/logging"
)

// gomdlintReport mirrors the JSON written by `gomdlint lint --format json`.
type gomdlintReport struct {
	Version string               `json:"version"`
	Files   []gomdlintFileResult `json:"files"`
}

type gomdlintFileResult struct {
	Path        string               `json:"path"`
	Diagnostics []gomdlintDiagnostic `json:"diagnostics"`
	Error       string               `json:"error,omitempty"`
}

type gomdlintDiagnostic struct {
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Suggestion  string `json:"suggestion,omitempty"`
}

func decodeGomdlint(data []byte, opts LoadOptions) (Collection, error) {
	var report gomdlintReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode gomdlint report: %w", err)
	}

	coll := make(Collection)
	for _, file := range report.Files {
		if file.Error != "" {
			opts.logger().Warn("gomdlint could not check file", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		}
		if len(file.Diagnostics) == 0 {
			continue
		}

		path := resolvePath(file.Path, opts.BaseDir)
		diags := make([]Diagnostic, 0, len(file.Diagnostics))
		for _, d := range file.Diagnostics {
			diags = append(diags, d.toDiagnostic())
		}
		coll[path] = diags
	}

	return coll, nil
}

func (d gomdlintDiagnostic) toDiagnostic() Diagnostic {
	sev, err := ParseSeverity(d.Severity)
	if err != nil {
		sev = SeverityWarning
	}

	message := d.Message
	if d.Suggestion != "" {
		message += "\nSuggestion: " + d.Suggestion
	}

	code := d.RuleID
	if d.RuleName != "" {
		code = d.RuleID + "/" + d.RuleName
	}

	start := Position{Line: max(d.StartLine-1, 0), Character: max(d.StartColumn-1, 0)}
	end := Position{Line: max(d.EndLine-1, start.Line), Character: max(d.EndColumn-1, 0)}

	return Diagnostic{
		Severity: sev,
		Message:  message,
		Range:    Range{Start: start, End: end},
		Source:   "gomdlint",
		Code:     code,
	}
}
