package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/nikbrunner/bmterm/internal/output"
	"github.com/nikbrunner/bmterm/internal/shell"
	"github.com/spf13/cobra"
)

func addExec(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "exec [command [arg...]]",
		Short: "Run one command given as arguments, or each line read from stdin.",
		Example: `  bmterm exec add https://go.dev "Go Home"
  printf 'mkdir Work\ntree\n' | bmterm exec
  bmterm exec -- search -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			interp := shell.New(shell.Params{
				Store:           s.store,
				DefaultFolderID: s.cfg.DefaultFolder,
				Logger:          s.logger,
			})
			if err := interp.Start(cmd.Context()); err != nil {
				return fmt.Errorf("load bookmarks: %w", err)
			}

			if len(args) > 0 {
				if failed := printResult(cmd.OutOrStdout(), interp.ExecuteArgs(cmd.Context(), args)); failed {
					return errCommandFailed
				}
				return nil
			}

			lines, err := readLines(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			if failed := runLines(cmd.Context(), interp, lines, cmd.OutOrStdout()); failed {
				return errCommandFailed
			}
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

// runLines executes each line in order and prints its blocks. It reports
// whether any line produced an error block.
func runLines(ctx context.Context, exec shell.Executor, lines []string, w io.Writer) bool {
	failed := false
	for _, line := range lines {
		if printResult(w, exec.Execute(ctx, line)) {
			failed = true
		}
	}
	return failed
}

// printResult writes the blocks of res and reports whether one was an error.
func printResult(w io.Writer, res output.Result) bool {
	fmt.Fprint(w, output.PlainRenderer{}.RenderAll(res.Blocks))
	return res.HasError()
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
