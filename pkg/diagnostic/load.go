package diagnostic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/diagview/internal/logging"
)

// Format names an input encoding.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatLSP      Format = "lsp"
	FormatSARIF    Format = "sarif"
	FormatGomdlint Format = "gomdlint"
)

// ErrUnknownFormat is returned when an input cannot be classified.
var ErrUnknownFormat = errors.New("unknown diagnostics format")

// StdinPath is the input name that reads from standard input.
const StdinPath = "-"

// ParseFormat validates a format name from a flag or config file.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatLSP, FormatSARIF, FormatGomdlint:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (expected auto, lsp, sarif or gomdlint)", ErrUnknownFormat, name)
	}
}

// LoadOptions controls decoding.
type LoadOptions struct {
	// Format forces a decoder. FormatAuto (or empty) sniffs the payload.
	Format Format

	// BaseDir resolves relative paths found in SARIF and gomdlint reports.
	BaseDir string

	// Stdin replaces os.Stdin for the "-" input.
	Stdin io.Reader

	// Logger receives warnings about skipped entries. Nil uses the logger
	// carried by the context in LoadFiles, or the default logger.
	Logger *log.Logger
}

func (o LoadOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.Default()
}

// DetectFormat inspects the first JSON value in data.
func DetectFormat(data []byte) (Format, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatLSP, nil
	}

	switch trimmed[0] {
	case '[':
		return FormatLSP, nil
	case '{':
	default:
		return "", fmt.Errorf("%w: input is not JSON", ErrUnknownFormat)
	}

	var head map[string]json.RawMessage
	if err := json.NewDecoder(bytes.NewReader(trimmed)).Decode(&head); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnknownFormat, err)
	}

	switch {
	case has(head, "runs") || has(head, "$schema"):
		return FormatSARIF, nil
	case has(head, "files") && has(head, "summary"):
		return FormatGomdlint, nil
	case has(head, "uri") || has(head, "method") || has(head, "params"):
		return FormatLSP, nil
	default:
		return "", ErrUnknownFormat
	}
}

func has(m map[string]json.RawMessage, key string) bool {
	_, ok := m[key]
	return ok
}

// Decode reads one input payload.
func Decode(r io.Reader, opts LoadOptions) (Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	format := opts.Format
	if format == "" || format == FormatAuto {
		format, err = DetectFormat(data)
		if err != nil {
			return nil, err
		}
	}

	switch format {
	case FormatLSP:
		return decodeLSP(data, opts)
	case FormatSARIF:
		return decodeSARIF(data, opts)
	case FormatGomdlint:
		return decodeGomdlint(data, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// LoadFile decodes a single file, or standard input for "-".
func LoadFile(path string, opts LoadOptions) (Collection, error) {
	if path == StdinPath {
		stdin := opts.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		coll, err := Decode(stdin, opts)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return coll, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(path)
	}

	coll, err := Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return coll, nil
}

// LoadFiles decodes every input concurrently and merges them in argument
// order, so later inputs replace earlier ones for the same file.
func LoadFiles(ctx context.Context, paths []string, opts LoadOptions) (Collection, error) {
	if opts.Logger == nil {
		opts.Logger = logging.FromContext(ctx)
	}
	results := make([]Collection, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			coll, err := LoadFile(path, opts)
			if err != nil {
				return err
			}
			results[i] = coll
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(Collection)
	for _, coll := range results {
		merged.Merge(coll)
	}
	return merged, nil
}

// resolvePath anchors a relative report path at base.
func resolvePath(path, base string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) || base == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
