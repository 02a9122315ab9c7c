package rawstr

import (
	"bytes"
	"iter"

	"github.com/cespare/xxhash/v2"

	"github.com/invakid404/rawstring/internal/unsafeutil"
)

// Str is a string with unchecked contents.
//
// It is a []byte to be interpreted as text. Unlike string, its contents need
// not be valid UTF-8. Unlike []byte, it formats as text rather than as a list
// of numbers. The zero value is the empty string.
type Str []byte

// FromBytes reinterprets b as a Str. It never copies and never fails.
func FromBytes(b []byte) Str {
	return Str(b)
}

// FromString returns a Str over the bytes of s without copying.
// The result shares memory with s and must not be modified.
func FromString(s string) Str {
	return Str(unsafeutil.StringToBytes(s))
}

// Bytes returns the underlying bytes. It does not copy.
func (s Str) Bytes() []byte {
	return []byte(s)
}

func (s Str) Len() int {
	return len(s)
}

func (s Str) IsEmpty() bool {
	return len(s) == 0
}

// First returns the first byte, if any.
func (s Str) First() (byte, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[0], true
}

// FirstMut returns a pointer to the first byte, if any.
func (s Str) FirstMut() (*byte, bool) {
	if len(s) == 0 {
		return nil, false
	}
	return &s[0], true
}

// Last returns the last byte, if any.
func (s Str) Last() (byte, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1], true
}

// LastMut returns a pointer to the last byte, if any.
func (s Str) LastMut() (*byte, bool) {
	if len(s) == 0 {
		return nil, false
	}
	return &s[len(s)-1], true
}

// SplitFirst returns the first byte and the rest of s.
func (s Str) SplitFirst() (byte, Str, bool) {
	if len(s) == 0 {
		return 0, nil, false
	}
	return s[0], s[1:], true
}

// SplitLast returns the last byte and everything before it.
func (s Str) SplitLast() (byte, Str, bool) {
	if len(s) == 0 {
		return 0, nil, false
	}
	return s[len(s)-1], s[:len(s)-1], true
}

// SplitAt divides s into s[:mid] and s[mid:]. It panics with a *BoundsError
// if mid is not within [0, s.Len()]; TrySplitAt is the non-panicking form.
func (s Str) SplitAt(mid int) (Str, Str) {
	if mid < 0 || mid > len(s) {
		panic(&BoundsError{Op: "split", Start: mid, Len: len(s)})
	}
	return s[:mid:mid], s[mid:]
}

// TrySplitAt is like SplitAt but reports false instead of panicking.
func (s Str) TrySplitAt(mid int) (Str, Str, bool) {
	if mid < 0 || mid > len(s) {
		return nil, nil, false
	}
	return s[:mid:mid], s[mid:], true
}

func (s Str) ContainsByte(c byte) bool {
	return bytes.IndexByte(s, c) >= 0
}

// StartsWith reports whether s begins with prefix. Use Of to pass a string.
func (s Str) StartsWith(prefix Str) bool {
	return bytes.HasPrefix(s, prefix)
}

// EndsWith reports whether s ends with suffix. Use Of to pass a string.
func (s Str) EndsWith(suffix Str) bool {
	return bytes.HasSuffix(s, suffix)
}

// IsASCII reports whether every byte of s is below 0x80.
func (s Str) IsASCII() bool {
	for _, c := range s {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// EqualFoldASCII reports whether s and other are equal when ASCII letters
// are compared case-insensitively. Non-ASCII bytes must match exactly.
func (s Str) EqualFoldASCII(other Str) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if toLowerASCII(s[i]) != toLowerASCII(other[i]) {
			return false
		}
	}
	return true
}

// MakeASCIIUpper converts a-z to A-Z in place. Other bytes are untouched.
func (s Str) MakeASCIIUpper() {
	for i, c := range s {
		if 'a' <= c && c <= 'z' {
			s[i] = c - ('a' - 'A')
		}
	}
}

// MakeASCIILower converts A-Z to a-z in place. Other bytes are untouched.
func (s Str) MakeASCIILower() {
	for i, c := range s {
		s[i] = toLowerASCII(c)
	}
}

// ToASCIIUpper returns an upper-cased copy of s. See MakeASCIIUpper.
func (s Str) ToASCIIUpper() *Buffer {
	b := s.ToBuffer()
	b.MakeASCIIUpper()
	return b
}

// ToASCIILower returns a lower-cased copy of s. See MakeASCIILower.
func (s Str) ToASCIILower() *Buffer {
	b := s.ToBuffer()
	b.MakeASCIILower()
	return b
}

func toLowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// All iterates over the bytes of s with their offsets.
func (s Str) All() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for i, c := range s {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Values iterates over the bytes of s.
func (s Str) Values() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for _, c := range s {
			if !yield(c) {
				return
			}
		}
	}
}

// Clone returns a copy of s that shares no memory with it.
// The clone of an empty Str is empty but non-nil.
func (s Str) Clone() Str {
	return append(Str{}, s...)
}

// ToBuffer copies s into a new Buffer.
func (s Str) ToBuffer() *Buffer {
	return &Buffer{Str: s.Clone()}
}

// Sum64 returns the xxhash of the bytes of s. Equal strings have equal sums.
func (s Str) Sum64() uint64 {
	return xxhash.Sum64(s)
}
