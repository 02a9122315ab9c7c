// Package report describes how a byte string splits into valid UTF-8 and
// broken sequences, in a form that can be printed or serialized.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/invakid404/rawstring/rawstr"
)

// Format selects how a Report is written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// Chunk is one valid run followed by the broken bytes after it.
type Chunk struct {
	Offset int    `json:"offset" yaml:"offset"`
	Valid  string `json:"valid" yaml:"valid"`
	// Broken holds the broken bytes as \xHH escapes.
	Broken    string `json:"broken,omitempty" yaml:"broken,omitempty"`
	BrokenLen int    `json:"broken_len" yaml:"broken_len"`
}

// DecodeError mirrors rawstr.DecodeError for serialization.
type DecodeError struct {
	ValidUpTo  int    `json:"valid_up_to" yaml:"valid_up_to"`
	ErrorLen   int    `json:"error_len" yaml:"error_len"`
	Incomplete bool   `json:"incomplete" yaml:"incomplete"`
	Message    string `json:"message" yaml:"message"`
}

// Field is a single raw string in both renderings.
type Field struct {
	Display   string `json:"display" yaml:"display"`
	Debug     string `json:"debug" yaml:"debug"`
	Len       int    `json:"len" yaml:"len"`
	ValidUTF8 bool   `json:"valid_utf8" yaml:"valid_utf8"`
}

func Describe(s rawstr.Str) Field {
	return Field{
		Display:   s.String(),
		Debug:     s.Quote(),
		Len:       s.Len(),
		ValidUTF8: s.ValidUTF8(),
	}
}

type Report struct {
	Source    string       `json:"source" yaml:"source"`
	Len       int          `json:"len" yaml:"len"`
	Hash      string       `json:"xxhash" yaml:"xxhash"`
	ValidUTF8 bool         `json:"valid_utf8" yaml:"valid_utf8"`
	Error     *DecodeError `json:"error,omitempty" yaml:"error,omitempty"`
	Chunks    []Chunk      `json:"chunks" yaml:"chunks"`
}

// Build describes s. The report holds copies, so s may change afterwards.
func Build(source string, s rawstr.Str) *Report {
	r := &Report{
		Source:    source,
		Len:       s.Len(),
		Hash:      fmt.Sprintf("%016x", s.Sum64()),
		ValidUTF8: true,
		Chunks:    []Chunk{},
	}

	var de *rawstr.DecodeError
	if err := s.Validate(); errors.As(err, &de) {
		r.ValidUTF8 = false
		r.Error = &DecodeError{
			ValidUpTo:  de.ValidUpTo,
			ErrorLen:   de.ErrorLen,
			Incomplete: de.Incomplete(),
			Message:    de.Error(),
		}
	}

	offset := 0
	for chunk := range s.Chunks() {
		r.Chunks = append(r.Chunks, Chunk{
			Offset:    offset,
			Valid:     strings.Clone(chunk.Valid),
			Broken:    escapeBytes(chunk.Broken),
			BrokenLen: chunk.Broken.Len(),
		})
		offset += len(chunk.Valid) + chunk.Broken.Len()
	}

	return r
}

func escapeBytes(b rawstr.Str) string {
	var sb strings.Builder
	for _, c := range b {
		fmt.Fprintf(&sb, `\x%02x`, c)
	}
	return sb.String()
}

// Write writes r to w in the given format.
func Write(w io.Writer, format Format, r *Report) error {
	if format == FormatText || format == "" {
		return writeText(w, r)
	}
	return Encode(w, format, r)
}

// Encode writes v to w as JSON or YAML. Text has no generic encoding, so
// callers render it themselves.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q has no structured encoding", format)
	}
}

func writeText(w io.Writer, r *Report) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "source: %s\n", r.Source)
	fmt.Fprintf(&sb, "length: %d\n", r.Len)
	fmt.Fprintf(&sb, "xxhash: %s\n", r.Hash)
	if r.Error != nil {
		fmt.Fprintf(&sb, "utf-8:  invalid (%s)\n", r.Error.Message)
	} else {
		sb.WriteString("utf-8:  valid\n")
	}

	for _, c := range r.Chunks {
		fmt.Fprintf(&sb, "%8d  %s", c.Offset, strconv.Quote(c.Valid))
		if c.Broken != "" {
			fmt.Fprintf(&sb, "  %s", c.Broken)
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
