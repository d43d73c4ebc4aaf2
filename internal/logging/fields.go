package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldInput      = "input"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Diagnostic fields.
	FieldFile     = "file"
	FieldFiles    = "files"
	FieldLine     = "line"
	FieldSeverity = "severity"
	FieldFormat   = "format"
	FieldCount    = "count"
	FieldAction   = "action"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
