package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/invakid404/rawstring/internal/rawlog"
	"github.com/invakid404/rawstring/internal/report"
	"github.com/invakid404/rawstring/rawstr"
)

// pair is a name with an optional value, as found in the environment or a
// directory listing.
type pair struct {
	Name  report.Field  `json:"name" yaml:"name"`
	Value *report.Field `json:"value,omitempty" yaml:"value,omitempty"`

	raw rawstr.Str
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List environment variables with undecodable bytes escaped",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writePairs(cmd.OutOrStdout(), cfg.Format, environPairs(os.Environ()))
	},
}

// environPairs splits NAME=value entries. Entries without '=' keep the whole
// entry as the name.
func environPairs(environ []string) []pair {
	pairs := make([]pair, 0, len(environ))
	for _, kv := range environ {
		s := rawstr.FromString(kv)
		eq := bytes.IndexByte(s, '=')
		if eq < 0 {
			pairs = append(pairs, pair{Name: report.Describe(s), raw: s})
			continue
		}

		name, rest := s.SplitAt(eq)
		value := report.Describe(rest.Slice(rawstr.From(1)))
		pairs = append(pairs, pair{Name: report.Describe(name), Value: &value, raw: name})
	}

	slices.SortFunc(pairs, func(a, b pair) int {
		return a.raw.Compare(b.raw)
	})
	return pairs
}

var argsCmd = &cobra.Command{
	Use:   "args -- [arg...]",
	Short: "Print each argument with undecodable bytes escaped",
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs := make([]pair, 0, len(args))
		for _, arg := range args {
			pairs = append(pairs, pair{Name: report.Describe(rawstr.FromString(arg))})
		}
		return writePairs(cmd.OutOrStdout(), cfg.Format, pairs)
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls [dir]",
	Short: "List directory entries by their raw names",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		pairs, err := listDir(rawstr.FromString(dir))
		if err != nil {
			return err
		}
		return writePairs(cmd.OutOrStdout(), cfg.Format, pairs)
	},
}

// listDir lists dir. Each entry's value is its kind, "dir", "file" or
// "other". Names that are not valid UTF-8 are logged.
func listDir(dir rawstr.Str) ([]pair, error) {
	path, err := dir.ToPath()
	if err != nil {
		return nil, fmt.Errorf("unusable directory name: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	pairs := make([]pair, 0, len(entries))
	for _, entry := range entries {
		name := rawstr.FromString(entry.Name())
		if !name.ValidUTF8() {
			rawlog.Str(logger.Warn(), "name", name).Msg("Entry name is not valid UTF-8")
		}

		full := rawstr.NewBufferSize(dir.Len() + 1 + name.Len())
		full.PushStr(dir)
		full.Push(os.PathSeparator)
		full.PushStr(name)
		fullPath, err := full.TryIntoPath()
		if err != nil {
			return nil, err
		}

		kind := rawstr.Str("other")
		if info, err := os.Lstat(fullPath); err == nil {
			switch {
			case info.IsDir():
				kind = rawstr.Str("dir")
			case info.Mode().IsRegular():
				kind = rawstr.Str("file")
			}
		}

		value := report.Describe(kind)
		pairs = append(pairs, pair{Name: report.Describe(name), Value: &value})
	}
	return pairs, nil
}

func writePairs(w io.Writer, format report.Format, pairs []pair) error {
	if format != report.FormatText {
		return report.Encode(w, format, pairs)
	}

	for _, p := range pairs {
		var err error
		if p.Value == nil {
			_, err = fmt.Fprintln(w, p.Name.Debug)
		} else {
			_, err = fmt.Fprintf(w, "%s=%s\n", p.Name.Debug, p.Value.Debug)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(envCmd, argsCmd, lsCmd)
}
