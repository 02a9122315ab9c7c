//go:build !unix

package rawstr

// NativeIsByteSuperset reports whether operating system strings accept any
// byte sequence on this platform. Here they must be valid UTF-8.
const NativeIsByteSuperset = false

func (s Str) toOSString() (string, error) {
	return s.ToString()
}

func (b *Buffer) tryIntoOSString() (string, error) {
	return b.IntoString()
}
