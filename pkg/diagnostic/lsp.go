package diagnostic

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/diagview/internal/logging"
)

const methodPublishDiagnostics = "textDocument/publishDiagnostics"

type lspNotification struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type lspPublishParams struct {
	URI         string          `json:"uri"`
	Version     *int            `json:"version,omitempty"`
	Diagnostics []lspDiagnostic `json:"diagnostics"`
}

type lspDiagnostic struct {
	Range              Range           `json:"range"`
	Severity           int             `json:"severity,omitempty"`
	Code               json.RawMessage `json:"code,omitempty"`
	Source             string          `json:"source,omitempty"`
	Message            string          `json:"message"`
	RelatedInformation []RelatedInfo   `json:"relatedInformation,omitempty"`
}

// decodeLSP accepts a publishDiagnostics params object, a JSON-RPC
// notification carrying one, an array of either, or a stream of them.
// Later publishes for the same document replace earlier ones.
func decodeLSP(data []byte, opts LoadOptions) (Collection, error) {
	coll := make(Collection)
	dec := json.NewDecoder(bytes.NewReader(data))

	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return coll, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode LSP payload: %w", err)
		}
		if err := applyLSPValue(coll, raw, opts); err != nil {
			return nil, err
		}
	}
}

func applyLSPValue(coll Collection, raw json.RawMessage, opts LoadOptions) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("decode LSP array: %w", err)
		}
		for _, item := range items {
			if err := applyLSPValue(coll, item, opts); err != nil {
				return err
			}
		}
		return nil
	}

	var note lspNotification
	if err := json.Unmarshal(trimmed, &note); err != nil {
		return fmt.Errorf("decode LSP message: %w", err)
	}
	if note.Method != "" {
		if note.Method != methodPublishDiagnostics {
			opts.logger().Debug("skipping LSP notification", "method", note.Method)
			return nil
		}
		trimmed = note.Params
	}

	var params lspPublishParams
	if err := json.Unmarshal(trimmed, &params); err != nil {
		return fmt.Errorf("decode publishDiagnostics params: %w", err)
	}

	path, err := PathFromURI(params.URI)
	if err != nil {
		opts.logger().Warn("skipping diagnostics for unresolvable document",
			"uri", params.URI, logging.FieldError, err)
		return nil
	}

	if len(params.Diagnostics) == 0 {
		delete(coll, path)
		return nil
	}

	diags := make([]Diagnostic, 0, len(params.Diagnostics))
	for _, d := range params.Diagnostics {
		diags = append(diags, d.toDiagnostic())
	}
	coll[path] = diags
	return nil
}

func (d lspDiagnostic) toDiagnostic() Diagnostic {
	sev := Severity(d.Severity)
	if !sev.Valid() {
		// Clients interpret a missing severity; treat it as an error.
		sev = SeverityError
	}
	return Diagnostic{
		Severity: sev,
		Message:  d.Message,
		Range:    d.Range,
		Source:   d.Source,
		Code:     codeString(d.Code),
		Related:  d.RelatedInformation,
	}
}

// codeString renders an LSP code, which may be a string or a number.
func codeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
