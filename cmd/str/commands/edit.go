package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	str "github.com/danclive/string"
	"github.com/danclive/string/internal/script"
	"github.com/danclive/string/internal/watch"
)

const watchDebounce = 200 * time.Millisecond

func (c *CLI) newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Apply an edit script to a file's decoded contents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scriptPath, _ := cmd.Flags().GetString("script")
			if scriptPath == "" {
				return errors.New("--script is required")
			}
			outPath, _ := cmd.Flags().GetString("output")
			watchMode, _ := cmd.Flags().GetBool("watch")

			inPath := ""
			if len(args) == 1 {
				inPath = args[0]
			}

			if watchMode {
				if inPath == "" || inPath == "-" {
					return errors.New("--watch requires an input file")
				}
				if outPath == "" || outPath == "-" {
					return errors.New("--watch requires --output (the result is rewritten on every change)")
				}
				return watchAndApply(cmd, inPath, scriptPath, outPath)
			}

			seq, err := readSource(cmd, inPath)
			if err != nil {
				return err
			}
			if err := applyScript(seq, scriptPath); err != nil {
				return err
			}
			return writeResult(cmd, outPath, seq)
		},
	}
	cmd.Flags().StringP("script", "s", "", "Edit script (.json, .yaml, .toml, or .lua)")
	cmd.Flags().StringP("output", "o", "", "Write the result to this file instead of stdout")
	cmd.Flags().BoolP("watch", "w", false, "Re-apply whenever the input or script changes")
	return cmd
}

// applyScript runs the script at path against seq. Lua scripts run in a
// sandboxed interpreter; the declarative formats load into an op list.
func applyScript(seq *str.String, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".lua") {
		rt := script.NewRuntime(seq)
		defer rt.Close()
		return rt.RunFile(path)
	}
	ops, err := script.Load(path)
	if err != nil {
		return err
	}
	return script.Apply(seq, ops)
}

func writeResult(cmd *cobra.Command, outPath string, seq *str.String) error {
	if outPath == "" || outPath == "-" {
		_, err := cmd.OutOrStdout().Write(seq.Bytes())
		return err
	}
	return os.WriteFile(outPath, seq.Bytes(), 0o644)
}

// watchAndApply applies the script once, then re-applies it whenever
// the input or script file changes, until the command's context is
// cancelled. Script failures are reported and watching continues, so an
// edit-save cycle on a broken script recovers without a restart.
func watchAndApply(cmd *cobra.Command, inPath, scriptPath, outPath string) error {
	runOnce := func() {
		seq, err := readFile(inPath)
		if err == nil {
			err = applyScript(seq, scriptPath)
		}
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "edit:", err)
			return
		}
		if err := writeResult(cmd, outPath, seq); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "edit:", err)
		}
	}

	inWatcher, err := watch.NewFileWatcher(inPath)
	if err != nil {
		return err
	}
	in := watch.Debounce(inWatcher, watchDebounce)
	defer in.Close()

	scriptWatcher, err := watch.NewFileWatcher(scriptPath)
	if err != nil {
		return err
	}
	sc := watch.Debounce(scriptWatcher, watchDebounce)
	defer sc.Close()

	runOnce()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-in.Events():
			if !ok {
				return nil
			}
			runOnce()

		case _, ok := <-sc.Events():
			if !ok {
				return nil
			}
			runOnce()

		case err, ok := <-in.Errors():
			if ok && err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "watch:", err)
			}

		case err, ok := <-sc.Errors():
			if ok && err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "watch:", err)
			}
		}
	}
}
