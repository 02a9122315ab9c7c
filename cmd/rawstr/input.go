package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/invakid404/rawstring/internal/bytesize"
	"github.com/invakid404/rawstring/internal/rawlog"
	"github.com/invakid404/rawstring/rawstr"
)

const stdinName = "-"

// openInput opens the file named by the first argument, or stdin when there
// is none. The returned name is "-" for stdin.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == stdinName {
		return io.NopCloser(cmd.InOrStdin()), stdinName, nil
	}

	path, err := rawstr.FromString(args[0]).ToPath()
	if err != nil {
		return nil, "", fmt.Errorf("unusable path: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// readInput reads the whole input named by args into a buffer.
func readInput(cmd *cobra.Command, args []string) (*rawstr.Buffer, string, error) {
	r, name, err := openInput(cmd, args)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = r.Close()
	}()

	buf, err := readAll(r, cfg.MaxBytes)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	rawlog.Str(logger.Debug(), "source", rawstr.FromString(name)).
		Int("bytes", buf.Len()).
		Msg("Input read")

	return buf, name, nil
}

// readAll reads r to the end. A positive limit caps how much is accepted.
func readAll(r io.Reader, limit int64) (*rawstr.Buffer, error) {
	buf := rawstr.NewBufferSize(512)

	if limit <= 0 {
		_, err := io.Copy(buf, r)
		return buf, err
	}

	// Read one byte past the limit to tell "exactly at" from "over".
	if _, err := io.Copy(buf, io.LimitReader(r, limit+1)); err != nil {
		return nil, err
	}
	if int64(buf.Len()) > limit {
		return nil, fmt.Errorf("input exceeds %s limit", bytesize.Format(limit))
	}
	return buf, nil
}
