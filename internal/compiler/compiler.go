// Package compiler orchestrates the full pipeline: parse every file, build
// one shared schema registry, analyze every query against it, and emit
// target source.
package compiler

import (
	"github.com/rs/zerolog"

	"github.com/ritamzico/gqlc/internal/analyzer"
	"github.com/ritamzico/gqlc/internal/ast"
	"github.com/ritamzico/gqlc/internal/emitter"
	"github.com/ritamzico/gqlc/internal/parser"
	"github.com/ritamzico/gqlc/internal/schema"
	"github.com/ritamzico/gqlc/internal/source"
)

// Result is the outcome of compiling a set of files: every diagnostic
// gathered and, if there were no errors, the emitted handler source.
type Result struct {
	Diagnostics source.Diagnostics
	Output      string
}

// Compile runs the full pipeline over files, which together may declare one
// shared schema and any number of queries. A syntax error in any file
// short-circuits the whole compile immediately; schema and analysis errors
// accumulate across every file so one run reports every problem at once.
func Compile(log zerolog.Logger, files []source.File) Result {
	type parsed struct {
		file *source.File
		prog *ast.Program
	}
	var programs []parsed

	for i := range files {
		f := &files[i]
		log.Debug().Str("file", f.Path).Msg("parsing")
		prog, err := parser.Parse(f)
		if err != nil {
			if perr, ok := err.(parser.ParseError); ok {
				return Result{Diagnostics: source.Diagnostics{{
					Code: "E000", Loc: perr.Loc, Message: perr.Message,
				}}}
			}
			return Result{Diagnostics: source.Diagnostics{{Message: err.Error()}}}
		}
		programs = append(programs, parsed{file: f, prog: prog})
	}

	log.Debug().Int("files", len(programs)).Msg("building schema")
	ctx := schema.New()
	var diags source.Diagnostics
	for _, p := range programs {
		ctx.AddDecls(p.file, p.prog, &diags)
	}

	an := analyzer.New(ctx)
	var results []*analyzer.QueryResult
	for _, p := range programs {
		log.Debug().Str("file", p.file.Path).Int("queries", countQueries(p.prog)).Msg("analyzing")
		qrs, qdiags := an.AnalyzeProgram(p.file, p.prog)
		results = append(results, qrs...)
		diags = append(diags, qdiags...)
	}

	if diags.HasErrors() {
		log.Warn().Int("diagnostics", len(diags)).Msg("compilation failed")
		return Result{Diagnostics: diags}
	}

	out := emitter.Emit(ctx, results)
	log.Info().Int("files", len(programs)).Int("bytes", len(out)).Msg("compiled")
	return Result{Diagnostics: diags, Output: out}
}

func countQueries(prog *ast.Program) int {
	n := 0
	for _, d := range prog.Decls {
		if d.Query != nil {
			n++
		}
	}
	return n
}
