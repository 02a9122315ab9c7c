package rawstr

import (
	"iter"
	"slices"

	"github.com/invakid404/rawstring/internal/unsafeutil"
)

// Buffer is an owned, growable Str.
//
// The embedded Str is the buffer's current contents. Every method of Str is
// therefore available on a Buffer and always reflects the latest mutation.
// A Buffer has no state besides that field, so assigning to it directly is
// fine.
//
// The zero value is an empty buffer ready to use. A Buffer must not be
// copied after first use, since both copies would share one backing array.
type Buffer struct {
	Str
}

// NewBuffer takes ownership of b. The caller must not use b afterwards.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{Str: b}
}

// NewBufferString copies s into a new Buffer.
func NewBufferString(s string) *Buffer {
	return &Buffer{Str: Str(s)}
}

// NewBufferSize returns an empty Buffer with room for n bytes.
func NewBufferSize(n int) *Buffer {
	return &Buffer{Str: make(Str, 0, n)}
}

// Cap returns the number of bytes the buffer can hold without reallocating.
func (b *Buffer) Cap() int {
	return cap(b.Str)
}

// Reserve makes room for at least n more bytes.
func (b *Buffer) Reserve(n int) {
	b.Str = slices.Grow(b.Str, n)
}

// ReserveExact makes room for exactly n more bytes, unless there already is.
func (b *Buffer) ReserveExact(n int) {
	if cap(b.Str)-len(b.Str) >= n {
		return
	}
	grown := make(Str, len(b.Str), len(b.Str)+n)
	copy(grown, b.Str)
	b.Str = grown
}

// ShrinkToFit drops unused capacity.
func (b *Buffer) ShrinkToFit() {
	if cap(b.Str) == len(b.Str) {
		return
	}
	shrunk := make(Str, len(b.Str))
	copy(shrunk, b.Str)
	b.Str = shrunk
}

// Clear removes every byte, keeping the capacity.
func (b *Buffer) Clear() {
	b.Str = b.Str[:0]
}

// Truncate shortens the buffer to n bytes. It does nothing if n >= Len.
func (b *Buffer) Truncate(n int) {
	if n < 0 {
		panic(&BoundsError{Op: "truncate", Start: n, Len: len(b.Str)})
	}
	if n < len(b.Str) {
		b.Str = b.Str[:n]
	}
}

func (b *Buffer) Push(c byte) {
	b.Str = append(b.Str, c)
}

func (b *Buffer) PushStr(s Str) {
	b.Str = append(b.Str, s...)
}

// Write appends p. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Str = append(b.Str, p...)
	return len(p), nil
}

// WriteByte appends c. It never fails.
func (b *Buffer) WriteByte(c byte) error {
	b.Str = append(b.Str, c)
	return nil
}

// WriteString appends s. It never fails.
func (b *Buffer) WriteString(s string) (int, error) {
	b.Str = append(b.Str, s...)
	return len(s), nil
}

// Pop removes and returns the last byte.
func (b *Buffer) Pop() (byte, bool) {
	if len(b.Str) == 0 {
		return 0, false
	}
	c := b.Str[len(b.Str)-1]
	b.Str = b.Str[:len(b.Str)-1]
	return c, true
}

// Insert inserts c at position i, which must be within [0, Len].
func (b *Buffer) Insert(i int, c byte) {
	if i < 0 || i > len(b.Str) {
		panic(&BoundsError{Op: "insert", Start: i, Len: len(b.Str)})
	}
	b.Str = slices.Insert(b.Str, i, c)
}

// InsertStr inserts s at position i, which must be within [0, Len].
// s may alias the buffer itself.
func (b *Buffer) InsertStr(i int, s Str) {
	if i < 0 || i > len(b.Str) {
		panic(&BoundsError{Op: "insert", Start: i, Len: len(b.Str)})
	}
	b.Str = slices.Insert(b.Str, i, s...)
}

// Remove removes and returns the byte at position i, which must be within [0, Len).
func (b *Buffer) Remove(i int) byte {
	if i < 0 || i >= len(b.Str) {
		panic(&BoundsError{Op: "remove", Start: i, Len: len(b.Str)})
	}
	c := b.Str[i]
	b.Str = slices.Delete(b.Str, i, i+1)
	return c
}

// Retain keeps only the bytes for which keep returns true, in order.
func (b *Buffer) Retain(keep func(c byte) bool) {
	b.Str = slices.DeleteFunc(b.Str, func(c byte) bool {
		return !keep(c)
	})
}

// SplitOff moves [at, Len) into a new Buffer and keeps [0, at).
func (b *Buffer) SplitOff(at int) *Buffer {
	if at < 0 || at > len(b.Str) {
		panic(&BoundsError{Op: "split off", Start: at, Len: len(b.Str)})
	}
	tail := make(Str, len(b.Str)-at)
	copy(tail, b.Str[at:])
	b.Str = b.Str[:at]
	return &Buffer{Str: tail}
}

// Drain removes the bytes selected by r and returns them as a sequence.
// The removal is complete by the time Drain returns, whether or not the
// sequence is ever consumed.
func (b *Buffer) Drain(r Range) iter.Seq[byte] {
	start, end, err := r.resolve("drain", len(b.Str))
	if err != nil {
		panic(err)
	}
	removed := make([]byte, end-start)
	copy(removed, b.Str[start:end])
	b.Str = slices.Delete(b.Str, start, end)

	return func(yield func(byte) bool) {
		for _, c := range removed {
			if !yield(c) {
				return
			}
		}
	}
}

// ReplaceRange replaces the bytes selected by r with s, which may be of a
// different length and may alias the buffer.
func (b *Buffer) ReplaceRange(r Range, s Str) {
	start, end, err := r.resolve("replace", len(b.Str))
	if err != nil {
		panic(err)
	}
	b.Str = slices.Replace(b.Str, start, end, s...)
}

// BytesMut returns a pointer to the underlying slice for direct manipulation.
func (b *Buffer) BytesMut() *[]byte {
	return (*[]byte)(&b.Str)
}

// IntoBytes hands the contents over to the caller and leaves b empty.
func (b *Buffer) IntoBytes() []byte {
	out := []byte(b.Str)
	b.Str = nil
	return out
}

// IntoStr hands the contents over as a Str and leaves b empty.
func (b *Buffer) IntoStr() Str {
	out := b.Str
	b.Str = nil
	return out
}

// IntoString converts the contents to a string without copying, if they are
// valid UTF-8. Either way b is left empty; on failure the returned
// *FromUTF8Error holds the original bytes.
func (b *Buffer) IntoString() (string, error) {
	validUpTo, errLen, ok := validate(b.Str)
	bytes := b.IntoBytes()
	if !ok {
		return "", &FromUTF8Error{
			bytes: bytes,
			err:   &DecodeError{ValidUpTo: validUpTo, ErrorLen: errLen},
		}
	}
	return unsafeutil.BytesToString(bytes), nil
}
