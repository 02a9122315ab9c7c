//go:build unix

package rawstr

import "github.com/invakid404/rawstring/internal/unsafeutil"

// NativeIsByteSuperset reports whether operating system strings accept any
// byte sequence on this platform, making the OS conversions infallible.
const NativeIsByteSuperset = true

func (s Str) toOSString() (string, error) {
	return string(s), nil
}

func (b *Buffer) tryIntoOSString() (string, error) {
	return b.IntoOSString(), nil
}

// AsOSString converts s to an operating system string. On unix it cannot fail.
func (s Str) AsOSString() string {
	return string(s)
}

// AsPath converts s to a file system path. On unix it cannot fail.
func (s Str) AsPath() string {
	return string(s)
}

// IntoOSString hands the contents over as an operating system string without
// copying and leaves b empty.
func (b *Buffer) IntoOSString() string {
	return unsafeutil.BytesToString(b.IntoBytes())
}

// IntoPath hands the contents over as a file system path without copying and
// leaves b empty.
func (b *Buffer) IntoPath() string {
	return unsafeutil.BytesToString(b.IntoBytes())
}
