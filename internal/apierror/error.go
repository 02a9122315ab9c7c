// Package apierror renders command failures in the same structured formats
// as regular output, so scripts reading JSON or YAML get an object back
// instead of a log line.
package apierror

import (
	"errors"
	"io"

	"github.com/invakid404/rawstring/internal/report"
	"github.com/invakid404/rawstring/rawstr"
)

// Response is the structured error format.
type Response struct {
	Error string `json:"error" yaml:"error"`
	// Decode is set when the failure was invalid UTF-8.
	Decode *report.DecodeError `json:"decode,omitempty" yaml:"decode,omitempty"`
	// Bounds is set when an index or range did not fit.
	Bounds *Bounds `json:"bounds,omitempty" yaml:"bounds,omitempty"`
}

type Bounds struct {
	Op    string `json:"op" yaml:"op"`
	Start int    `json:"start" yaml:"start"`
	End   *int   `json:"end,omitempty" yaml:"end,omitempty"`
	Len   int    `json:"len" yaml:"len"`
}

// FromError describes err, picking out the typed errors rawstr produces.
func FromError(err error) Response {
	resp := Response{Error: err.Error()}

	var de *rawstr.DecodeError
	if errors.As(err, &de) {
		resp.Decode = &report.DecodeError{
			ValidUpTo:  de.ValidUpTo,
			ErrorLen:   de.ErrorLen,
			Incomplete: de.Incomplete(),
			Message:    de.Error(),
		}
	}

	var be *rawstr.BoundsError
	if errors.As(err, &be) {
		resp.Bounds = &Bounds{Op: be.Op, Start: be.Start, Len: be.Len}
		if be.Range {
			end := be.End
			resp.Bounds.End = &end
		}
	}

	return resp
}

// Write writes err to w in format. Text is written as a single line.
func Write(w io.Writer, format report.Format, err error) error {
	if format == report.FormatText || format == "" {
		_, werr := io.WriteString(w, "error: "+err.Error()+"\n")
		return werr
	}
	return report.Encode(w, format, FromError(err))
}
