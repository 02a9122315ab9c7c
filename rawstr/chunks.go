package rawstr

import (
	"iter"

	"github.com/invakid404/rawstring/internal/unsafeutil"
)

// Utf8Chunk is a run of valid UTF-8 followed by at most one broken sequence.
type Utf8Chunk struct {
	// Valid is the valid UTF-8 text at the start of the chunk. It is empty
	// between two adjacent broken sequences. It shares memory with the Str
	// it was produced from, so it must not outlive modifications to it.
	Valid string

	// Broken is the invalid sequence following Valid. It is empty only in
	// the last chunk, and should be shown as a single U+FFFD.
	Broken Str
}

// Utf8ChunksIter walks the chunks of a Str once. See Str.Utf8Chunks.
type Utf8ChunksIter struct {
	rest []byte
}

// Utf8Chunks returns an iterator over the chunks of valid UTF-8 in s,
// separated by the broken sequences that would be replaced by U+FFFD.
//
// Concatenating every chunk's Valid and Broken in order reproduces s exactly.
// An empty s has no chunks.
func (s Str) Utf8Chunks() *Utf8ChunksIter {
	return &Utf8ChunksIter{rest: s}
}

// Next returns the next chunk. Once it reports false it keeps doing so.
func (it *Utf8ChunksIter) Next() (Utf8Chunk, bool) {
	if len(it.rest) == 0 {
		return Utf8Chunk{}, false
	}

	validUpTo, errLen, ok := validate(it.rest)
	if ok {
		chunk := Utf8Chunk{
			Valid:  unsafeutil.BytesToString(it.rest),
			Broken: it.rest[len(it.rest):],
		}
		it.rest = it.rest[len(it.rest):]
		return chunk, true
	}

	valid, rest := it.rest[:validUpTo], it.rest[validUpTo:]
	// An incomplete sequence can only occur at the very end, and nothing
	// after it can complete it, so it takes the whole remainder.
	if errLen == 0 {
		errLen = len(rest)
	}
	chunk := Utf8Chunk{
		Valid:  unsafeutil.BytesToString(valid),
		Broken: rest[:errLen:errLen],
	}
	it.rest = rest[errLen:]
	return chunk, true
}

// Remaining returns the bytes not yet consumed.
func (it *Utf8ChunksIter) Remaining() Str {
	return it.rest
}

// Chunks is the range-over-func form of Utf8Chunks. Every call starts over
// from the beginning of s.
func (s Str) Chunks() iter.Seq[Utf8Chunk] {
	return func(yield func(Utf8Chunk) bool) {
		it := s.Utf8Chunks()
		for {
			chunk, ok := it.Next()
			if !ok || !yield(chunk) {
				return
			}
		}
	}
}
