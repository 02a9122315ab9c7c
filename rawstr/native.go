package rawstr

// ToOSString converts s to the string form the operating system uses for
// names and environment values. The result is a copy.
//
// Where NativeIsByteSuperset is true this never fails. Elsewhere s must be
// valid UTF-8 and the error is a *DecodeError. Code that only builds for
// unix can use the infallible AsOSString instead.
func (s Str) ToOSString() (string, error) {
	return s.toOSString()
}

// ToPath is ToOSString for file system paths. The bytes are not cleaned or
// otherwise altered.
func (s Str) ToPath() (string, error) {
	return s.toOSString()
}

// TryIntoOSString is the consuming form of ToOSString. It leaves b empty;
// on failure the *FromUTF8Error holds the original bytes. Where the platform
// accepts any bytes, the storage is handed over without copying.
func (b *Buffer) TryIntoOSString() (string, error) {
	return b.tryIntoOSString()
}

// TryIntoPath is the consuming form of ToPath.
func (b *Buffer) TryIntoPath() (string, error) {
	return b.tryIntoOSString()
}
