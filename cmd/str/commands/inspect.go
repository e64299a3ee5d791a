package commands

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	str "github.com/danclive/string"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Decode a file and report its contents rune by rune",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			seq, err := readSource(cmd, path)
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")

			if asJSON {
				return writeInspectJSON(cmd.OutOrStdout(), seq, limit)
			}
			return writeInspectTable(cmd.OutOrStdout(), seq, limit)
		},
	}
	cmd.Flags().Bool("json", false, "Emit the report as JSON")
	cmd.Flags().IntP("limit", "n", 0, "Maximum table rows (0 means all)")
	return cmd
}

// tableRows caps the per-rune table at limit rows when limit is
// positive.
func tableRows(seq *str.String, limit int) []rune {
	rs := seq.Runes()
	if limit > 0 && limit < len(rs) {
		return rs[:limit]
	}
	return rs
}

func writeInspectTable(w io.Writer, seq *str.String, limit int) error {
	rs := tableRows(seq, limit)
	for i, r := range rs {
		var buf [utf8.UTFMax]byte
		enc := utf8.AppendRune(buf[:0], r)
		if _, err := fmt.Fprintf(w, "%6d  U+%04X  %-8s  % x\n", i, r, strconv.QuoteRune(r), enc); err != nil {
			return err
		}
	}
	if hidden := seq.Len() - len(rs); hidden > 0 {
		if _, err := fmt.Fprintf(w, "   ...  %d more\n", hidden); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "runes %d  bytes %d  hash %016x\n",
		seq.Len(), seq.EncodedLen(), seq.Hash64())
	return err
}

func writeInspectJSON(w io.Writer, seq *str.String, limit int) error {
	out := []byte(`{}`)
	var err error
	if out, err = sjson.SetBytes(out, "runes", seq.Len()); err != nil {
		return err
	}
	if out, err = sjson.SetBytes(out, "bytes", seq.EncodedLen()); err != nil {
		return err
	}
	if out, err = sjson.SetBytes(out, "hash", fmt.Sprintf("%016x", seq.Hash64())); err != nil {
		return err
	}
	if out, err = sjson.SetBytes(out, "table", []any{}); err != nil {
		return err
	}
	for i, r := range tableRows(seq, limit) {
		entry := map[string]any{
			"index":     i,
			"codepoint": fmt.Sprintf("U+%04X", r),
			"char":      string(r),
			"utf8":      fmt.Sprintf("% x", utf8.AppendRune(nil, r)),
		}
		if out, err = sjson.SetBytes(out, "table.-1", entry); err != nil {
			return err
		}
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
