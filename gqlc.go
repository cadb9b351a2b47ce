// Package gqlc is the top-level API for compiling GQL source into target
// handler code: a thin re-export over internal/compiler behind a small
// stable surface.
package gqlc

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog"

	"github.com/ritamzico/gqlc/internal/compiler"
	"github.com/ritamzico/gqlc/internal/source"
)

// Result is the outcome of a compile: accumulated diagnostics and, when
// there were no errors, the emitted handler source.
type Result = compiler.Result

// Diagnostic and Diagnostics re-export the structured error types every
// phase of the pipeline reports through.
type Diagnostic = source.Diagnostic
type Diagnostics = source.Diagnostics

// defaultLogger is a quiet zerolog.Logger used when callers don't need to
// observe pipeline progress.
var defaultLogger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)

// CompileFiles compiles files, which together may declare one shared
// schema and any number of queries, and returns the accumulated
// diagnostics alongside the emitted source (empty when diagnostics carry
// any error).
func CompileFiles(files []source.File) Result {
	return compiler.Compile(defaultLogger, files)
}

// CompileFilesWithLogger is CompileFiles but lets the caller observe
// pipeline progress through their own zerolog.Logger.
func CompileFilesWithLogger(log zerolog.Logger, files []source.File) Result {
	return compiler.Compile(log, files)
}

// CompileString is a convenience wrapper for compiling a single in-memory
// source string under name.
func CompileString(name, text string) Result {
	return CompileFiles([]source.File{{Path: name, Text: text}})
}

// diagnosticJSON is the wire shape for one diagnostic in MarshalDiagnosticsJSON's output.
type diagnosticJSON struct {
	Code    string `json:"code"`
	File    string `json:"file"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// MarshalDiagnosticsJSON renders diags as a JSON array, for callers (like
// cmd/gqlserver) that need to hand compile errors to a non-Go client.
func MarshalDiagnosticsJSON(diags Diagnostics) ([]byte, error) {
	out := make([]diagnosticJSON, len(diags))
	for i, d := range diags {
		path := ""
		if d.Loc.File != nil {
			path = d.Loc.File.Path
		}
		out[i] = diagnosticJSON{
			Code: string(d.Code), File: path,
			Start: d.Loc.Start, End: d.Loc.End,
			Message: d.Message, Hint: d.Hint,
		}
	}
	return json.Marshal(out)
}
