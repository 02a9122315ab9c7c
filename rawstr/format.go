package rawstr

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// String renders s as text. Valid UTF-8 is copied verbatim and every broken
// sequence becomes a single U+FFFD, however many bytes it spans.
func (s Str) String() string {
	var sb strings.Builder
	sb.Grow(len(s))
	for chunk := range s.Chunks() {
		sb.WriteString(chunk.Valid)
		if len(chunk.Broken) > 0 {
			sb.WriteRune(utf8.RuneError)
		}
	}
	return sb.String()
}

// Quote renders s as a double-quoted literal. Characters whose escaped form
// is longer than one character are escaped (\n, \", \\, \u{7f} and so on),
// and every byte of a broken sequence is shown as \xHH.
func (s Str) Quote() string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for chunk := range s.Chunks() {
		writeEscaped(&sb, chunk.Valid)
		for _, c := range chunk.Broken {
			sb.WriteString(`\x`)
			sb.WriteByte(lowerhex[c>>4])
			sb.WriteByte(lowerhex[c&0xF])
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// GoString implements fmt.GoStringer with the quoted rendering.
func (s Str) GoString() string {
	return s.Quote()
}

// Format implements fmt.Formatter.
//
//	%s, %v   text, as String
//	%q, %#v  quoted, as Quote
//	%x, %X   hexadecimal bytes
//
// Width, precision and the '-' flag apply to the rendered text.
func (s Str) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('#') {
			fmt.Fprintf(f, fmt.FormatString(f, 's'), s.Quote())
			return
		}
		fmt.Fprintf(f, fmt.FormatString(f, 's'), s.String())
	case 's':
		fmt.Fprintf(f, fmt.FormatString(f, 's'), s.String())
	case 'q':
		fmt.Fprintf(f, fmt.FormatString(f, 's'), s.Quote())
	case 'x', 'X':
		fmt.Fprintf(f, fmt.FormatString(f, verb), []byte(s))
	default:
		fmt.Fprintf(f, "%%!%c(rawstr.Str=%s)", verb, s.String())
	}
}

// WriteTo writes the raw bytes of s to w.
func (s Str) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s)
	return int64(n), err
}

const lowerhex = "0123456789abcdef"

func writeEscaped(sb *strings.Builder, s string) {
	written := 0
	for i, r := range s {
		e, ok := escape(r)
		if !ok {
			continue
		}
		sb.WriteString(s[written:i])
		sb.WriteString(e)
		written = i + utf8.RuneLen(r)
	}
	sb.WriteString(s[written:])
}

// escape returns the escaped form of r when that form is longer than r.
func escape(r rune) (string, bool) {
	switch r {
	case 0:
		return `\0`, true
	case '\t':
		return `\t`, true
	case '\r':
		return `\r`, true
	case '\n':
		return `\n`, true
	case '\\':
		return `\\`, true
	case '\'':
		return `\'`, true
	case '"':
		return `\"`, true
	}
	if unicode.In(r, unicode.Mn, unicode.Me, unicode.Other_Grapheme_Extend) || !unicode.IsGraphic(r) ||
		(r != ' ' && unicode.Is(unicode.Zs, r)) {
		return `\u{` + strconv.FormatInt(int64(r), 16) + `}`, true
	}
	return "", false
}
