package rawstr

import (
	"bytes"
	"reflect"
)

// Bytes is the set of types that can be viewed as a Str without copying.
type Bytes interface {
	~string | ~[]byte
}

// Of views v as a Str without copying. When v is a string the result
// must not be modified.
func Of[T Bytes](v T) Str {
	switch x := any(v).(type) {
	case Str:
		return x
	case []byte:
		return Str(x)
	case string:
		return FromString(x)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return FromString(rv.String())
	}
	return Str(rv.Bytes())
}

// Compare orders a and b by their bytes, as bytes.Compare does, no matter
// which of the Bytes types each one is.
func Compare[A, B Bytes](a A, b B) int {
	return bytes.Compare(Of(a), Of(b))
}

// Equal reports whether a and b hold the same bytes.
func Equal[A, B Bytes](a A, b B) bool {
	return bytes.Equal(Of(a), Of(b))
}

// Compare returns -1, 0 or +1 as s sorts before, equal to or after other.
func (s Str) Compare(other Str) int {
	return bytes.Compare(s, other)
}

func (s Str) Equal(other Str) bool {
	return bytes.Equal(s, other)
}

func (s Str) Less(other Str) bool {
	return bytes.Compare(s, other) < 0
}

// EqualString reports whether s holds exactly the bytes of other.
func (s Str) EqualString(other string) bool {
	return string(s) == other
}
