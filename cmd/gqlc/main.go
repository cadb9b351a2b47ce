// Command gqlc is the compiler's command-line front end: GQL source files
// are compiled ahead-of-time, so check/compile subcommands fit the shape
// better than an interactive loop.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	gqlc "github.com/ritamzico/gqlc"
	"github.com/ritamzico/gqlc/internal/source"
)

var verbose bool

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
}

func readFiles(paths []string) ([]source.File, error) {
	files := make([]source.File, len(paths))
	for i, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files[i] = source.File{Path: p, Text: string(b)}
	}
	return files, nil
}

func printDiagnostics(diags source.Diagnostics) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Error())
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.gql...>",
		Short: "Validate GQL source without emitting handler code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readFiles(args)
			if err != nil {
				return err
			}
			res := gqlc.CompileFilesWithLogger(newLogger(), files)
			printDiagnostics(res.Diagnostics)
			if res.Diagnostics.HasErrors() {
				return fmt.Errorf("%d diagnostic(s)", len(res.Diagnostics))
			}
			fmt.Fprintln(os.Stderr, "ok")
			return nil
		},
	}
}

func newCompileCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "compile <file.gql...>",
		Short: "Compile GQL source to target handler code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readFiles(args)
			if err != nil {
				return err
			}
			res := gqlc.CompileFilesWithLogger(newLogger(), files)
			printDiagnostics(res.Diagnostics)
			if res.Diagnostics.HasErrors() {
				return fmt.Errorf("%d diagnostic(s)", len(res.Diagnostics))
			}
			if out == "" {
				fmt.Print(res.Output)
				return nil
			}
			return os.WriteFile(out, []byte(res.Output), 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write emitted source to this path instead of stdout")
	return cmd
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gqlc",
		Short: "gqlc compiles GQL graph-query source into target handler code",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newCheckCmd(), newCompileCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
