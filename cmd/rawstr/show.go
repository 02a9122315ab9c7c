package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/transform"

	"github.com/invakid404/rawstring/internal/report"
	"github.com/invakid404/rawstring/rawstr"
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print input as text, replacing broken UTF-8 with U+FFFD",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, name, err := openInput(cmd, args)
		if err != nil {
			return err
		}
		defer func() {
			_ = r.Close()
		}()

		n, err := io.Copy(cmd.OutOrStdout(), transform.NewReader(r, rawstr.NewLossyTransformer()))
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", name, err)
		}

		logger.Debug().Str("source", name).Int64("bytes_out", n).Msg("Rendered input")
		return nil
	},
}

var debugCmd = &cobra.Command{
	Use:   "debug [file]",
	Short: "Print input as a quoted literal with broken bytes escaped",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, name, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		if cfg.Format == report.FormatText {
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%q\n", buf)
			return err
		}

		return report.Encode(cmd.OutOrStdout(), cfg.Format, struct {
			Source string       `json:"source" yaml:"source"`
			Value  report.Field `json:"value" yaml:"value"`
		}{name, report.Describe(buf.Str)})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Fail unless input is valid UTF-8",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, name, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return check(cmd.OutOrStdout(), name, buf.Str)
	},
}

func check(w io.Writer, name string, s rawstr.Str) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	_, err := fmt.Fprintf(w, "%s: valid UTF-8 (%d bytes)\n", name, s.Len())
	return err
}

var chunksCmd = &cobra.Command{
	Use:   "chunks [file]",
	Short: "Split input into valid UTF-8 runs and broken sequences",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, name, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return report.Write(cmd.OutOrStdout(), cfg.Format, report.Build(name, buf.Str))
	},
}

var asciiCmd = &cobra.Command{
	Use:       "ascii upper|lower [file]",
	Short:     "Change the case of ASCII letters, leaving every other byte alone",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"upper", "lower"},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := args[0]
		if mode != "upper" && mode != "lower" {
			return fmt.Errorf("unknown mode %q (want upper or lower)", mode)
		}

		buf, _, err := readInput(cmd, args[1:])
		if err != nil {
			return err
		}

		if mode == "upper" {
			buf.MakeASCIIUpper()
		} else {
			buf.MakeASCIILower()
		}
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(showCmd, debugCmd, checkCmd, chunksCmd, asciiCmd)
}
