package main

import (
	"fmt"
	"io"

	"github.com/gregwebs/go-recovery"
	"github.com/spf13/cobra"

	"github.com/invakid404/rawstring/internal/rangeexpr"
	"github.com/invakid404/rawstring/internal/report"
	"github.com/invakid404/rawstring/rawstr"
)

var sliceCmd = &cobra.Command{
	Use:   "slice <selector> [file]",
	Short: "Print the byte or bytes picked by a selector such as 3, 1..4 or 2..=5",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := rangeexpr.Parse(args[0])
		if err != nil {
			return err
		}

		buf, _, err := readInput(cmd, args[1:])
		if err != nil {
			return err
		}

		return slice(cmd.OutOrStdout(), cfg.Format, sel, buf.Str)
	},
}

type sliceResult struct {
	Selector string        `json:"selector" yaml:"selector"`
	Byte     *int          `json:"byte,omitempty" yaml:"byte,omitempty"`
	Value    *report.Field `json:"value,omitempty" yaml:"value,omitempty"`
}

// slice applies sel to s. Selectors that don't fit come back as an error
// wrapping the *rawstr.BoundsError the lookup panicked with.
func slice(w io.Writer, format report.Format, sel rangeexpr.Selector, s rawstr.Str) error {
	result := sliceResult{Selector: sel.String()}

	err := recovery.Call(func() error {
		if sel.IsPos() {
			c := int(rawstr.MustGet[byte](s, sel.Pos()))
			result.Byte = &c
			return nil
		}
		field := report.Describe(rawstr.MustGet[rawstr.Str](s, sel.Range()))
		result.Value = &field
		return nil
	})
	if err != nil {
		return fmt.Errorf("selector %s: %w", sel, err)
	}

	logger.Debug().Str("selector", result.Selector).Msg("Selector applied")

	if format != report.FormatText {
		return report.Encode(w, format, result)
	}
	if result.Byte != nil {
		_, err = fmt.Fprintf(w, "0x%02x\n", *result.Byte)
		return err
	}
	_, err = fmt.Fprintln(w, result.Value.Debug)
	return err
}

func init() {
	rootCmd.AddCommand(sliceCmd)
}
