package rawstr

import (
	"errors"
	"testing"
	"unicode/utf8"
)

type chunk struct {
	valid  string
	broken string
}

func collectChunks(s Str) []chunk {
	var out []chunk
	for c := range s.Chunks() {
		out = append(out, chunk{valid: c.Valid, broken: string(c.Broken)})
	}
	return out
}

func TestUtf8Chunks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []chunk
	}{
		{
			name:  "empty input has no chunks",
			input: "",
			want:  nil,
		},
		{
			name:  "valid input is a single chunk",
			input: "hello μs",
			want:  []chunk{{"hello μs", ""}},
		},
		{
			name:  "stray byte",
			input: "1 \xFF \xce\xbcs",
			want:  []chunk{{"1 ", "\xFF"}, {" μs", ""}},
		},
		{
			name:  "truncated sequence before ASCII is one broken run",
			input: "a\xE2\x82b",
			want:  []chunk{{"a", "\xE2\x82"}, {"b", ""}},
		},
		{
			name:  "adjacent broken bytes get their own chunks",
			input: "\xFF\xFE",
			want:  []chunk{{"", "\xFF"}, {"", "\xFE"}},
		},
		{
			name:  "incomplete sequence at the end takes the remainder",
			input: "ab\xF0\x9F\x98",
			want:  []chunk{{"ab", "\xF0\x9F\x98"}},
		},
		{
			name:  "overlong three-byte lead",
			input: "\xE0\x80",
			want:  []chunk{{"", "\xE0"}, {"", "\x80"}},
		},
		{
			name:  "surrogate",
			input: "\xED\xA0\x80",
			want:  []chunk{{"", "\xED"}, {"", "\xA0"}, {"", "\x80"}},
		},
		{
			name:  "above U+10FFFF",
			input: "\xF4\x90\x80\x80x",
			want:  []chunk{{"", "\xF4"}, {"", "\x90"}, {"", "\x80"}, {"", "\x80"}, {"x", ""}},
		},
		{
			name:  "broken byte at the end",
			input: "ok\xC0",
			want:  []chunk{{"ok", "\xC0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectChunks(Str(tt.input))
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d chunks, got %d: %q", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestUtf8ChunksReconstructInput(t *testing.T) {
	for _, in := range samples {
		var rebuilt []byte
		chunks := collectChunks(Str(in))
		for i, c := range chunks {
			if !utf8.ValidString(c.valid) {
				t.Errorf("%q: chunk %d valid part is not UTF-8", in, i)
			}
			if c.broken == "" && i != len(chunks)-1 {
				t.Errorf("%q: chunk %d has empty broken part but is not last", in, i)
			}
			rebuilt = append(rebuilt, c.valid...)
			rebuilt = append(rebuilt, c.broken...)
		}
		if string(rebuilt) != in {
			t.Errorf("expected %q, rebuilt %q", in, rebuilt)
		}
	}
}

func TestUtf8ChunksIterIsFused(t *testing.T) {
	it := Str("a\xFF").Utf8Chunks()

	if _, ok := it.Next(); !ok {
		t.Fatal("expected a chunk")
	}
	if it.Remaining().Len() != 0 {
		t.Errorf("expected nothing remaining, got %q", it.Remaining())
	}
	for range 3 {
		if _, ok := it.Next(); ok {
			t.Fatal("expected exhausted iterator to stay exhausted")
		}
	}
}

func TestChunksRestartAndStop(t *testing.T) {
	s := Str("a\xFFb\xFEc")

	first := collectChunks(s)
	second := collectChunks(s)
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 chunks on each pass, got %d and %d", len(first), len(second))
	}

	n := 0
	for range s.Chunks() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("expected loop to stop after one chunk, got %d", n)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		input     string
		validUpTo int
		errorLen  int
		ok        bool
	}{
		{"", 0, 0, true},
		{"plain", 5, 0, true},
		{"μs °C", 7, 0, true},
		{"ab\xFFcd", 2, 1, false},
		{"ab\xE2\x82", 2, 0, false},
		{"ab\xE2\x82c", 2, 2, false},
		{"\xC0\xAF", 0, 1, false},
		{"\xF0\x9F\x98\x80\xF0\x9F", 4, 0, false},
		{"\xF4\x8F\xBF\xBF", 4, 0, true},
		{"\xF4\x90\x80\x80", 0, 1, false},
		{"\xED\x9F\xBF", 3, 0, true},
		{"\xED\xA0\x80", 0, 1, false},
	}

	for _, tt := range tests {
		err := Str(tt.input).Validate()
		if tt.ok {
			if err != nil {
				t.Errorf("%q: expected valid, got %v", tt.input, err)
			}
			continue
		}

		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("%q: expected *DecodeError, got %v", tt.input, err)
			continue
		}
		if de.ValidUpTo != tt.validUpTo || de.ErrorLen != tt.errorLen {
			t.Errorf("%q: expected (%d, %d), got (%d, %d)", tt.input, tt.validUpTo, tt.errorLen, de.ValidUpTo, de.ErrorLen)
		}
		if de.Incomplete() != (tt.errorLen == 0) {
			t.Errorf("%q: unexpected Incomplete() = %v", tt.input, de.Incomplete())
		}
		if !errors.Is(err, ErrInvalidUTF8) {
			t.Errorf("%q: expected errors.Is(err, ErrInvalidUTF8)", tt.input)
		}
	}
}

func TestValidateAgreesWithUTF8Package(t *testing.T) {
	for _, in := range samples {
		s := Str(in)
		if (s.Validate() == nil) != utf8.ValidString(in) {
			t.Errorf("%q: Validate disagrees with utf8.ValidString", in)
		}
		if s.ValidUTF8() != utf8.ValidString(in) {
			t.Errorf("%q: ValidUTF8 disagrees with utf8.ValidString", in)
		}
	}
}

func TestDecodeErrorMessages(t *testing.T) {
	_, err := Str("ab\xFFcd").ToString()
	if err == nil || err.Error() != "invalid utf-8 sequence of 1 bytes from index 2" {
		t.Errorf("unexpected error: %v", err)
	}

	_, err = Str("ab\xE2\x82").ToString()
	if err == nil || err.Error() != "incomplete utf-8 byte sequence from index 2" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestToStringRoundTrip(t *testing.T) {
	for _, in := range []string{"", "ascii", "1\" μs / °C", "日本語", "\U0001F600"} {
		got, err := FromString(in).ToString()
		if err != nil {
			t.Errorf("%q: unexpected error %v", in, err)
		}
		if got != in {
			t.Errorf("expected %q, got %q", in, got)
		}
	}
}

func TestToStringDoesNotAlias(t *testing.T) {
	b := []byte("mutable")
	got, err := Str(b).ToString()
	if err != nil {
		t.Fatal(err)
	}
	b[0] = 'M'
	if got != "mutable" {
		t.Errorf("expected an independent copy, got %q", got)
	}
}
