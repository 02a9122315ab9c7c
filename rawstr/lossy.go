package rawstr

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// replacement is U+FFFD encoded as UTF-8.
const replacement = "\uFFFD"

type lossyTransformer struct {
	transform.NopResetter
}

// NewLossyTransformer returns a transformer that renders arbitrary bytes the
// way Str.String does, for input too large to hold at once. Splitting the
// input at any points yields the same output as rendering it whole.
func NewLossyTransformer() transform.Transformer {
	return lossyTransformer{}
}

func (lossyTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		rest := src[nSrc:]
		validUpTo, errLen, ok := validate(rest)

		n := copy(dst[nDst:], rest[:validUpTo])
		if n < validUpTo {
			// Only hand out whole characters, or the next call would see
			// the tail of a split one as garbage.
			for n > 0 && !utf8.RuneStart(rest[n]) {
				n--
			}
			return nDst + n, nSrc + n, transform.ErrShortDst
		}
		nDst += n
		nSrc += n
		if ok {
			break
		}

		if errLen == 0 {
			if !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			errLen = len(rest) - validUpTo
		}
		if len(dst)-nDst < len(replacement) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], replacement)
		nSrc += errLen
	}
	return nDst, nSrc, nil
}
