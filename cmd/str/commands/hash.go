package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash [file...]",
		Short: "Print the 64-bit content hash of each file",
		Long: "Print the xxHash of each file's decoded contents as 16 hex digits.\n" +
			"The hash covers the canonical UTF-8 re-encoding, so files that decode\n" +
			"to the same text hash the same. With no arguments, stdin is hashed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				seq, err := readSource(cmd, "")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "%016x\n", seq.Hash64())
				return err
			}

			for _, path := range args {
				seq, err := readFile(path)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(out, "%016x  %s\n", seq.Hash64(), path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
