package rawstr

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidUTF8 matches every *DecodeError and *FromUTF8Error via errors.Is.
var ErrInvalidUTF8 = errors.New("invalid utf-8")

// DecodeError reports where a byte string stops being valid UTF-8.
type DecodeError struct {
	// ValidUpTo is the length of the longest valid UTF-8 prefix.
	ValidUpTo int
	// ErrorLen is the length of the invalid sequence starting at ValidUpTo.
	// It is 0 when the input ends in the middle of a sequence that more
	// bytes could still complete.
	ErrorLen int
}

func (e *DecodeError) Error() string {
	if e.ErrorLen == 0 {
		return fmt.Sprintf("incomplete utf-8 byte sequence from index %d", e.ValidUpTo)
	}
	return fmt.Sprintf("invalid utf-8 sequence of %d bytes from index %d", e.ErrorLen, e.ValidUpTo)
}

// Incomplete reports whether the input ended mid-sequence.
func (e *DecodeError) Incomplete() bool {
	return e.ErrorLen == 0
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidUTF8
}

// FromUTF8Error is returned by the conversions that consume a Buffer. It
// carries the bytes that failed to convert so nothing is lost.
type FromUTF8Error struct {
	bytes []byte
	err   *DecodeError
}

func (e *FromUTF8Error) Error() string {
	return e.err.Error()
}

func (e *FromUTF8Error) Unwrap() error {
	return e.err
}

// DecodeError returns the underlying validation failure.
func (e *FromUTF8Error) DecodeError() *DecodeError {
	return e.err
}

// Bytes returns the bytes that were rejected, without copying.
func (e *FromUTF8Error) Bytes() []byte {
	return e.bytes
}

// IntoBuffer hands the rejected bytes back as a Buffer.
func (e *FromUTF8Error) IntoBuffer() *Buffer {
	b := &Buffer{Str: e.bytes}
	e.bytes = nil
	return b
}

// ToString returns s as a string if it is valid UTF-8. The result is a copy.
func (s Str) ToString() (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	return string(s), nil
}

// Validate returns a *DecodeError describing the first invalid sequence in s,
// or nil if s is entirely valid UTF-8.
func (s Str) Validate() error {
	validUpTo, errLen, ok := validate(s)
	if ok {
		return nil
	}
	return &DecodeError{ValidUpTo: validUpTo, ErrorLen: errLen}
}

// ValidUTF8 reports whether s is valid UTF-8.
func (s Str) ValidUTF8() bool {
	return utf8.Valid(s)
}

// validate scans b up to the first invalid sequence. When ok is false,
// validUpTo is where the sequence starts and errLen its length, with 0
// meaning b ends before the sequence could be judged.
func validate(b []byte) (validUpTo, errLen int, ok bool) {
	i := 0
	for i < len(b) {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		size, bad := sequence(b[i:])
		if size == 0 {
			return i, bad, false
		}
		i += size
	}
	return len(b), 0, true
}

// sequence checks the multi-byte sequence at the start of b. It returns the
// size of a well-formed sequence, or size 0 and the length of the maximal
// invalid subpart. Both are 0 when b is a truncated but so far valid prefix.
func sequence(b []byte) (size, errLen int) {
	var need int
	lo, hi := byte(0x80), byte(0xBF)

	switch c := b[0]; {
	case 0xC2 <= c && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case 0xE1 <= c && c <= 0xEC, c == 0xEE, c == 0xEF:
		need = 2
	case c == 0xED:
		need, hi = 2, 0x9F
	case c == 0xF0:
		need, lo = 3, 0x90
	case 0xF1 <= c && c <= 0xF3:
		need = 3
	case c == 0xF4:
		need, hi = 3, 0x8F
	default:
		return 0, 1
	}

	for k := 1; k <= need; k++ {
		if k >= len(b) {
			return 0, 0
		}
		if b[k] < lo || b[k] > hi {
			return 0, k
		}
		lo, hi = 0x80, 0xBF
	}
	return need + 1, 0
}
