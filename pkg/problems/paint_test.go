package problems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/diagview/pkg/diagnostic"
	"github.com/yaklabco/diagview/pkg/problems"
)

func paintOptions(state problems.CollapseState, y0, y1 float64) problems.PaintOptions {
	return problems.PaintOptions{
		State:         state,
		Metrics:       problems.CellMetrics(),
		Visible:       problems.Rect{X0: 0, Y0: y0, X1: 40, Y1: y1},
		Width:         40,
		WorkspaceRoot: root,
	}
}

func TestPaintFullView(t *testing.T) {
	t.Parallel()

	idx := problems.BuildIndex(scenario(), diagnostic.SeverityError)
	rec := &recorder{}

	problems.Paint(rec, idx, paintOptions(nil, 0, 20))

	assert.Equal(t, []string{
		"a.rs", "a msg",
		"b.rs", "src", "unused variable",
		"c.rs[1, 0]:", "first defined here", "second line",
	}, rec.texts())
	assert.Empty(t, rec.fills())

	rows := rec.rows()
	for line := range 7 {
		assert.True(t, rows[line], "row %d not drawn", line)
	}
	assert.Len(t, rows, 7)
}

func TestPaintPlacement(t *testing.T) {
	t.Parallel()

	idx := problems.BuildIndex(scenario(), diagnostic.SeverityError)
	rec := &recorder{}

	problems.Paint(rec, idx, paintOptions(nil, 0, 20))

	byText := make(map[string]problems.Point)
	var icons []problems.Icon
	for _, c := range rec.calls {
		switch c.Op {
		case "text":
			byText[c.Text] = c.Origin
		case "icon":
			icons = append(icons, c.Icon)
		}
	}

	assert.Equal(t, problems.Point{X: 1, Y: 2}, byText["b.rs"])
	// name width 4 + line height 1 + folder gap 1
	assert.Equal(t, problems.Point{X: 6, Y: 2}, byText["src"])
	assert.Equal(t, problems.Point{X: 2, Y: 3}, byText["unused variable"])
	assert.Equal(t, problems.Point{X: 3, Y: 4}, byText["c.rs[1, 0]:"])
	assert.Equal(t, problems.Point{X: 3, Y: 6}, byText["second line"])

	assert.Equal(t, []problems.Icon{
		{Kind: problems.IconFile, Path: pathA},
		{Kind: problems.IconError},
		{Kind: problems.IconFile, Path: pathB},
		{Kind: problems.IconError},
		{Kind: problems.IconLink},
	}, icons)
}

func TestPaintCollapsedFileShowsHeaderOnly(t *testing.T) {
	t.Parallel()

	idx := problems.BuildIndex(scenario(), diagnostic.SeverityError)
	rec := &recorder{}

	problems.Paint(rec, idx, paintOptions(problems.CollapseMap{pathB: true}, 0, 20))

	assert.Equal(t, []string{"a.rs", "a msg", "b.rs", "src"}, rec.texts())
}

func TestPaintCullsRowsAboveView(t *testing.T) {
	t.Parallel()

	idx := problems.BuildIndex(scenario(), diagnostic.SeverityError)
	rec := &recorder{}

	// Lines 5..7 are in range.
	problems.Paint(rec, idx, paintOptions(nil, 5, 5))

	assert.Equal(t, []string{"first defined here", "second line"}, rec.texts())
	for row := range rec.rows() {
		assert.GreaterOrEqual(t, row, 5)
	}
}

func TestPaintStopsBelowView(t *testing.T) {
	t.Parallel()

	idx := problems.BuildIndex(scenario(), diagnostic.SeverityError)
	rec := &recorder{}

	// Lines 0..2 are in range.
	problems.Paint(rec, idx, paintOptions(nil, 0, 0.5))

	assert.Equal(t, []string{"a.rs", "a msg", "b.rs", "src"}, rec.texts())
}

func TestPaintNeverDrawsFilesOutsideView(t *testing.T) {
	t.Parallel()

	coll := diagnostic.Collection{}
	for _, name := range []string{"/ws/f0.go", "/ws/f1.go", "/ws/f2.go", "/ws/f3.go", "/ws/f4.go"} {
		coll[name] = []diagnostic.Diagnostic{{Severity: diagnostic.SeverityError, Message: "x\ny"}}
	}
	idx := problems.BuildIndex(coll, diagnostic.SeverityError)
	rec := &recorder{}

	// Each file spans 3 lines; lines 6..9 cover f2 and the top of f3.
	problems.Paint(rec, idx, paintOptions(nil, 6, 7))

	for _, c := range rec.calls {
		if c.Op == "icon" && c.Icon.Kind == problems.IconFile {
			assert.Contains(t, []string{"/ws/f2.go", "/ws/f3.go"}, c.Icon.Path)
		}
	}
	assert.Equal(t, []string{"f2.go", "x", "y", "f3.go"}, rec.texts())
}

func TestPaintHoverHighlight(t *testing.T) {
	t.Parallel()

	idx := problems.BuildIndex(scenario(), diagnostic.SeverityError)

	tests := []struct {
		name  string
		hover float64
		want  []problems.Rect
	}{
		{"file header", 2.5, nil},
		{"diagnostic message", 3.2, []problems.Rect{{X0: 0, Y0: 3, X1: 40, Y1: 4}}},
		{"related header", 4, []problems.Rect{{X0: 0, Y0: 4, X1: 40, Y1: 7}}},
		{"related message", 6.9, []problems.Rect{{X0: 0, Y0: 4, X1: 40, Y1: 7}}},
		{"below content", 7, nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			opts := paintOptions(nil, 0, 20)
			opts.Hover = &problems.Point{X: 3, Y: testCase.hover}
			rec := &recorder{}

			problems.Paint(rec, idx, opts)
			assert.Equal(t, testCase.want, rec.fills())
		})
	}
}

func TestPaintHighlightPrecedesText(t *testing.T) {
	t.Parallel()

	idx := problems.BuildIndex(scenario(), diagnostic.SeverityError)
	opts := paintOptions(nil, 0, 20)
	opts.Hover = &problems.Point{Y: 3}
	rec := &recorder{}

	problems.Paint(rec, idx, opts)

	fill, text := -1, -1
	for i, c := range rec.calls {
		if c.Op == "fill" && fill < 0 {
			fill = i
		}
		if c.Op == "text" && c.Text == "unused variable" {
			text = i
		}
	}
	require.GreaterOrEqual(t, fill, 0)
	assert.Less(t, fill, text)
}

func TestPaintPixelMetrics(t *testing.T) {
	t.Parallel()

	idx := problems.BuildIndex(scenario(), diagnostic.SeverityError)
	rec := &recorder{}

	problems.Paint(rec, idx, problems.PaintOptions{
		Metrics: problems.DefaultMetrics(),
		Visible: problems.Rect{X1: 300, Y1: 60},
		Width:   300,
	})

	require.NotEmpty(t, rec.calls)
	first := rec.calls[0]
	assert.Equal(t, "icon", first.Op)
	// 25px row with a 14px icon leaves 5.5px on each side.
	assert.Equal(t, problems.Rect{X0: 5.5, Y0: 5.5, X1: 19.5, Y1: 19.5}, first.Bounds)
	assert.Equal(t, problems.ColorNone, first.Color)

	// Lines 0..4 are in range; the related header on line 4 is drawn, its
	// message is not. Without a workspace root folders stay absolute.
	assert.Equal(t, []string{
		"a.rs", "/ws", "a msg", "b.rs", "/ws/src", "unused variable", "c.rs[1, 0]:",
	}, rec.texts())
}

func TestPaintEmptyIndex(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	problems.Paint(rec, nil, paintOptions(nil, 0, 20))
	assert.Empty(t, rec.calls)
}

func TestRelatedHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"file uri", "file:///ws/lib/mod.rs", "mod.rs[2, 7]:"},
		{"bare path", "src/main.go", "main.go[2, 7]:"},
		{"remote uri", "https://example.com/x/y.go", "y.go[2, 7]:"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			loc := diagnostic.Location{
				URI:   testCase.uri,
				Range: diagnostic.Range{Start: diagnostic.Position{Line: 2, Character: 7}},
			}
			assert.Equal(t, testCase.want, problems.RelatedHeader(loc))
		})
	}
}
