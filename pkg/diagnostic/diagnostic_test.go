package diagnostic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/diagview/pkg/diagnostic"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "one", []string{"one"}},
		{"only newline", "\n", []string{""}},
		{"trailing newline", "one\ntwo\n", []string{"one", "two"}},
		{"crlf", "one\r\ntwo", []string{"one", "two"}},
		{"inner blank", "one\n\ntwo", []string{"one", "", "two"}},
		{"double trailing", "one\n\n", []string{"one", ""}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, diagnostic.SplitLines(testCase.input))
		})
	}
}

func TestCollectionCountAndMerge(t *testing.T) {
	t.Parallel()

	coll := diagnostic.Collection{
		"a.go": {{Severity: diagnostic.SeverityError}, {Severity: diagnostic.SeverityWarning}},
		"b.go": {{Severity: diagnostic.SeverityError}},
	}
	assert.Equal(t, 2, coll.Count(diagnostic.SeverityError))
	assert.Equal(t, 1, coll.Count(diagnostic.SeverityWarning))
	assert.Zero(t, coll.Count(diagnostic.SeverityHint))

	coll.Merge(diagnostic.Collection{
		"a.go": nil,
		"c.go": {{Severity: diagnostic.SeverityHint}},
	})
	assert.NotContains(t, coll, "a.go")
	assert.Len(t, coll, 2)
	assert.Equal(t, 1, coll.Count(diagnostic.SeverityHint))
}

func TestSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  diagnostic.Severity
		str   string
		title string
	}{
		{"error", diagnostic.SeverityError, "error", "Errors"},
		{"Warn", diagnostic.SeverityWarning, "warning", "Warnings"},
		{" information ", diagnostic.SeverityInformation, "info", "Info"},
		{"4", diagnostic.SeverityHint, "hint", "Hints"},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			sev, err := diagnostic.ParseSeverity(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, sev)
			assert.Equal(t, testCase.str, sev.String())
			assert.Equal(t, testCase.title, sev.Title())
			assert.True(t, sev.Valid())
		})
	}

	_, err := diagnostic.ParseSeverity("fatal")
	require.Error(t, err)
	assert.False(t, diagnostic.Severity(0).Valid())
	assert.Equal(t, "severity(9)", diagnostic.Severity(9).String())
}

func TestPositionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3:14", diagnostic.Position{Line: 3, Character: 14}.String())
}
