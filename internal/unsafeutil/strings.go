// Package unsafeutil provides unsafe operations for performance-critical code paths.
package unsafeutil

import "unsafe"

// BytesToString converts a byte slice to a string without copying.
//
// SAFETY: This function is safe to use when:
//   - The byte slice is not modified after the string is created
//   - The byte slice remains valid for the lifetime of the string
//   - The string is used ephemerally (e.g., passed to a function and not stored),
//     or ownership of the byte slice is handed over to the string entirely
//
// Violating these invariants causes undefined behavior due to Go's immutable
// string semantics being broken.
func BytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBytes returns the bytes backing s without copying.
//
// SAFETY: The returned slice must never be written to. String data may live
// in read-only memory, and writing to it either faults or breaks every other
// holder of the string.
func StringToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// SliceUnchecked returns b[lo:hi] without bounds checks. The result has
// capacity hi-lo, so appending to it never writes into b past hi.
//
// SAFETY: The caller must guarantee 0 <= lo <= hi <= len(b).
func SliceUnchecked(b []byte, lo, hi int) []byte {
	if hi == lo {
		return b[:0:0]
	}
	p := unsafe.Add(unsafe.Pointer(unsafe.SliceData(b)), lo)
	return unsafe.Slice((*byte)(p), hi-lo)
}

// AtUnchecked returns a pointer to b[i] without bounds checks.
//
// SAFETY: The caller must guarantee 0 <= i < len(b).
func AtUnchecked(b []byte, i int) *byte {
	return (*byte)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(b)), i))
}
