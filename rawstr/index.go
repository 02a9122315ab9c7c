package rawstr

import (
	"fmt"
	"math"
	"strconv"

	"github.com/invakid404/rawstring/internal/unsafeutil"
)

// Index selects part of a Str: a single byte (Pos) or a sub-string (Range).
//
// Get never panics. MustGet panics with a *BoundsError where Get would report
// false, mirroring s[i]. GetUnchecked skips bounds checks altogether; it is a
// performance escape hatch, and calling it with an index that Get would
// reject is undefined behavior.
//
// The set of implementations is closed.
type Index[T byte | Str] interface {
	Get(s Str) (T, bool)
	MustGet(s Str) T
	GetUnchecked(s Str) T

	sealed()
}

// Get returns the part of s selected by i.
func Get[T byte | Str](s Str, i Index[T]) (T, bool) {
	return i.Get(s)
}

// MustGet returns the part of s selected by i, panicking if it is out of bounds.
func MustGet[T byte | Str](s Str, i Index[T]) T {
	return i.MustGet(s)
}

// GetUnchecked returns the part of s selected by i without bounds checks.
func GetUnchecked[T byte | Str](s Str, i Index[T]) T {
	return i.GetUnchecked(s)
}

// At returns s[i], panicking with a *BoundsError if i is out of range.
func (s Str) At(i int) byte {
	return Pos(i).MustGet(s)
}

// Slice returns the sub-string selected by r, panicking with a *BoundsError
// if r does not fit.
func (s Str) Slice(r Range) Str {
	return r.MustGet(s)
}

// SliceUnchecked returns s[begin:end] without bounds checks. The caller
// must guarantee 0 <= begin <= end <= s.Len().
func (s Str) SliceUnchecked(begin, end int) Str {
	return Str(unsafeutil.SliceUnchecked(s, begin, end))
}

// BoundsError is the panic value of every operation that was handed an
// index or range outside its receiver.
type BoundsError struct {
	// Op names the operation, such as "index", "slice" or "insert".
	Op string
	// Start is the offending position, or the start of the offending range.
	Start int
	// End is the exclusive end of the offending range.
	End int
	// Range tells whether Start and End describe a range or Start alone a position.
	Range bool
	// Overflow is set when the end of an inclusive range is math.MaxInt and
	// so has no exclusive equivalent.
	Overflow bool
	// Len is the length of the receiver.
	Len int
}

func (e *BoundsError) Error() string {
	switch {
	case !e.Range:
		return fmt.Sprintf("rawstr: %s: index %d out of range with length %d", e.Op, e.Start, e.Len)
	case e.Overflow:
		return fmt.Sprintf("rawstr: %s: inclusive range end overflows int", e.Op)
	case e.Start > e.End:
		return fmt.Sprintf("rawstr: %s: range starts at %d but ends at %d", e.Op, e.Start, e.End)
	default:
		return fmt.Sprintf("rawstr: %s: range [%d:%d] out of range with length %d", e.Op, e.Start, e.End, e.Len)
	}
}

// RuntimeError marks BoundsError as a runtime.Error, like the panics raised
// by indexing a slice out of range.
func (e *BoundsError) RuntimeError() {}

// Pos selects a single byte.
type Pos int

func (p Pos) inBounds(s Str) bool {
	return p >= 0 && int(p) < len(s)
}

func (p Pos) Get(s Str) (byte, bool) {
	if !p.inBounds(s) {
		return 0, false
	}
	return s[p], true
}

func (p Pos) MustGet(s Str) byte {
	if !p.inBounds(s) {
		panic(&BoundsError{Op: "index", Start: int(p), Len: len(s)})
	}
	return s[p]
}

func (p Pos) GetUnchecked(s Str) byte {
	return *unsafeutil.AtUnchecked(s, int(p))
}

// GetMut returns a pointer to the selected byte.
func (p Pos) GetMut(s Str) (*byte, bool) {
	if !p.inBounds(s) {
		return nil, false
	}
	return &s[p], true
}

// MustGetMut is like GetMut but panics if p is out of range.
func (p Pos) MustGetMut(s Str) *byte {
	if !p.inBounds(s) {
		panic(&BoundsError{Op: "index", Start: int(p), Len: len(s)})
	}
	return &s[p]
}

// GetUncheckedMut is like GetMut without bounds checks.
func (p Pos) GetUncheckedMut(s Str) *byte {
	return unsafeutil.AtUnchecked(s, int(p))
}

func (Pos) sealed() {}

type rangeKind uint8

const (
	rangeFull rangeKind = iota
	rangeSpan
	rangeFrom
	rangeTo
	rangeInclusive
	rangeToInclusive
)

// Range selects a sub-string. The zero value selects the whole string.
// A Range result shares memory with the Str it was taken from, so writing
// through it modifies the original.
type Range struct {
	kind       rangeKind
	start, end int
}

// Span selects [start, end).
func Span(start, end int) Range {
	return Range{kind: rangeSpan, start: start, end: end}
}

// From selects [start, len).
func From(start int) Range {
	return Range{kind: rangeFrom, start: start}
}

// To selects [0, end).
func To(end int) Range {
	return Range{kind: rangeTo, end: end}
}

// Full selects everything.
func Full() Range {
	return Range{kind: rangeFull}
}

// Inclusive selects [start, end].
func Inclusive(start, end int) Range {
	return Range{kind: rangeInclusive, start: start, end: end}
}

// ToInclusive selects [0, end].
func ToInclusive(end int) Range {
	return Range{kind: rangeToInclusive, end: end}
}

// Bounds resolves r against a string of length n into the half-open
// interval [start, end). ok is false when r does not fit.
func (r Range) Bounds(n int) (start, end int, ok bool) {
	start, end, err := r.resolve("slice", n)
	return start, end, err == nil
}

func (r Range) resolve(op string, n int) (int, int, *BoundsError) {
	start, end := 0, n
	switch r.kind {
	case rangeSpan:
		start, end = r.start, r.end
	case rangeFrom:
		start = r.start
	case rangeTo:
		end = r.end
	case rangeInclusive, rangeToInclusive:
		if r.kind == rangeInclusive {
			start = r.start
		}
		if r.end == math.MaxInt {
			return 0, 0, &BoundsError{Op: op, Start: start, End: r.end, Range: true, Overflow: true, Len: n}
		}
		if r.end < 0 {
			return 0, 0, &BoundsError{Op: op, Start: start, End: r.end, Range: true, Len: n}
		}
		end = r.end + 1
	}

	if start < 0 || start > end || end > n {
		return 0, 0, &BoundsError{Op: op, Start: start, End: end, Range: true, Len: n}
	}
	return start, end, nil
}

func (r Range) Get(s Str) (Str, bool) {
	start, end, err := r.resolve("slice", len(s))
	if err != nil {
		return nil, false
	}
	return s[start:end:end], true
}

func (r Range) MustGet(s Str) Str {
	start, end, err := r.resolve("slice", len(s))
	if err != nil {
		panic(err)
	}
	return s[start:end:end]
}

func (r Range) GetUnchecked(s Str) Str {
	start, end := 0, len(s)
	switch r.kind {
	case rangeSpan:
		start, end = r.start, r.end
	case rangeFrom:
		start = r.start
	case rangeTo:
		end = r.end
	case rangeInclusive:
		start, end = r.start, r.end+1
	case rangeToInclusive:
		end = r.end + 1
	}
	return Str(unsafeutil.SliceUnchecked(s, start, end))
}

func (Range) sealed() {}

// String renders r in the a..b / a..=b notation.
func (r Range) String() string {
	itoa := strconv.Itoa
	switch r.kind {
	case rangeSpan:
		return itoa(r.start) + ".." + itoa(r.end)
	case rangeFrom:
		return itoa(r.start) + ".."
	case rangeTo:
		return ".." + itoa(r.end)
	case rangeInclusive:
		return itoa(r.start) + "..=" + itoa(r.end)
	case rangeToInclusive:
		return "..=" + itoa(r.end)
	default:
		return ".."
	}
}
