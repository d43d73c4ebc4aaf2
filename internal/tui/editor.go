package tui

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/yaklabco/diagview/pkg/problems"
)

// ErrNoEditor is returned for an empty editor command.
var ErrNoEditor = errors.New("no editor command configured")

// EditorArgs splits an editor command template into arguments and fills in
// {path}, {line} and {column}. Line and column are 1-based. Substitution
// happens after splitting, so paths with spaces stay one argument.
func EditorArgs(template string, jump problems.JumpToLocation) ([]string, error) {
	args, err := shlex.Split(template)
	if err != nil {
		return nil, fmt.Errorf("parse editor command: %w", err)
	}
	if len(args) == 0 {
		return nil, ErrNoEditor
	}

	replacer := strings.NewReplacer(
		"{path}", jump.Path,
		"{line}", strconv.Itoa(jump.Position.Line+1),
		"{column}", strconv.Itoa(jump.Position.Character+1),
	)
	for i, arg := range args {
		args[i] = replacer.Replace(arg)
	}
	return args, nil
}

// EditorCommand builds the process that opens jump in the editor.
func EditorCommand(template string, jump problems.JumpToLocation) (*exec.Cmd, error) {
	args, err := EditorArgs(template, jump)
	if err != nil {
		return nil, err
	}
	return exec.Command(args[0], args[1:]...), nil //nolint:gosec // the command comes from the user's own config
}
