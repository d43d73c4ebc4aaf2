package problems_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/diagview/internal/logging"
	"github.com/yaklabco/diagview/pkg/diagnostic"
	"github.com/yaklabco/diagview/pkg/problems"
)

const (
	pathA = "/ws/a.rs"
	pathB = "/ws/src/b.rs"
	root  = "/ws"
)

// scenario returns two files of errors:
//
//	0 a.rs
//	1   a msg
//	2 b.rs  src
//	3   unused variable
//	4     c.rs[1, 0]:
//	5     first defined here
//	6     second line
func scenario() diagnostic.Collection {
	return diagnostic.Collection{
		pathB: {
			{
				Severity: diagnostic.SeverityError,
				Message:  "unused variable",
				Range:    diagnostic.Range{Start: diagnostic.Position{Line: 4, Character: 2}},
				Related: []diagnostic.RelatedInfo{{
					Location: diagnostic.Location{
						URI:   "file:///ws/c.rs",
						Range: diagnostic.Range{Start: diagnostic.Position{Line: 1, Character: 0}},
					},
					Message: "first defined here\nsecond line",
				}},
			},
			{Severity: diagnostic.SeverityWarning, Message: "not shown"},
		},
		pathA: {
			{
				Severity: diagnostic.SeverityError,
				Message:  "a msg",
				Range:    diagnostic.Range{Start: diagnostic.Position{Line: 9, Character: 1}},
			},
		},
	}
}

// wrappedScenario returns two files of errors where the diagnostic message
// wraps and the related message does not:
//
//	0 a.rs
//	1   a msg
//	2 b.rs  src
//	3   mismatched types
//	4   expected i32
//	5     c.rs[7, 1]:
//	6     found here
func wrappedScenario() diagnostic.Collection {
	return diagnostic.Collection{
		pathA: {
			{
				Severity: diagnostic.SeverityError,
				Message:  "a msg",
				Range:    diagnostic.Range{Start: diagnostic.Position{Line: 0, Character: 0}},
			},
		},
		pathB: {
			{
				Severity: diagnostic.SeverityError,
				Message:  "mismatched types\nexpected i32",
				Range:    diagnostic.Range{Start: diagnostic.Position{Line: 3, Character: 4}},
				Related: []diagnostic.RelatedInfo{{
					Location: diagnostic.Location{
						URI:   "file:///ws/c.rs",
						Range: diagnostic.Range{Start: diagnostic.Position{Line: 7, Character: 1}},
					},
					Message: "found here",
				}},
			},
		},
	}
}

func testLogger(t *testing.T) (*log.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	return logging.NewWithWriter(&buf, "debug"), &buf
}

type call struct {
	Op     string
	Text   string
	Icon   problems.Icon
	Bounds problems.Rect
	Origin problems.Point
	Color  problems.Color
}

// recorder is a Surface that records every call. Text is one unit per byte
// and one unit high.
type recorder struct {
	calls []call
}

func (r *recorder) DrawIcon(icon problems.Icon, bounds problems.Rect, tint problems.Color) {
	r.calls = append(r.calls, call{Op: "icon", Icon: icon, Bounds: bounds, Color: tint})
}

func (r *recorder) DrawText(text string, origin problems.Point, color problems.Color) {
	r.calls = append(r.calls, call{Op: "text", Text: text, Origin: origin, Color: color})
}

func (r *recorder) FillRect(bounds problems.Rect, color problems.Color) {
	r.calls = append(r.calls, call{Op: "fill", Bounds: bounds, Color: color})
}

func (r *recorder) TextSize(text string) problems.Size {
	return problems.Size{Width: float64(len(text)), Height: 1}
}

func (r *recorder) texts() []string {
	var out []string
	for _, c := range r.calls {
		if c.Op == "text" {
			out = append(out, c.Text)
		}
	}
	return out
}

func (r *recorder) fills() []problems.Rect {
	var out []problems.Rect
	for _, c := range r.calls {
		if c.Op == "fill" {
			out = append(out, c.Bounds)
		}
	}
	return out
}

// rows returns the set of rows touched by icons and text, for unit line height.
func (r *recorder) rows() map[int]bool {
	out := make(map[int]bool)
	for _, c := range r.calls {
		switch c.Op {
		case "text":
			out[int(c.Origin.Y)] = true
		case "icon":
			out[int(c.Bounds.Y0)] = true
		}
	}
	return out
}
