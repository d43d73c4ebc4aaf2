package langdetect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/diagview/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		head     string
		expected string
	}{
		{name: "go by extension", path: "/ws/main.go", expected: "go"},
		{name: "dockerfile by name", path: "/ws/Dockerfile", expected: "dockerfile"},
		{name: "shebang bash", path: "/ws/bin/run", head: "#!/bin/bash\necho hello", expected: "bash"},
		{name: "shebang python", path: "/ws/bin/tool", head: "#!/usr/bin/env python3\nprint('hi')", expected: "python"},
		{name: "unknown without content", path: "/ws/LICENSE.unknownext", expected: langdetect.Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var head []byte
			if tt.head != "" {
				head = []byte(tt.head)
			}
			assert.Equal(t, tt.expected, langdetect.Detect(tt.path, head))
		})
	}
}

func TestDetectFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	script := filepath.Join(dir, "deploy")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o600))

	assert.Equal(t, "bash", langdetect.DetectFile(script))
	assert.Equal(t, "go", langdetect.DetectFile(filepath.Join(dir, "missing.go")))
	assert.Equal(t, langdetect.Text, langdetect.DetectFile(filepath.Join(dir, "missing")))
}
