package rawstr

import "testing"

// mustPanic runs fn and returns the *BoundsError it panicked with.
func mustPanic(t *testing.T, op string, fn func()) *BoundsError {
	t.Helper()

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		fn()
	}()

	if recovered == nil {
		t.Fatalf("%s: expected panic, got none", op)
	}
	be, ok := recovered.(*BoundsError)
	if !ok {
		t.Fatalf("%s: expected *BoundsError panic, got %T: %v", op, recovered, recovered)
	}
	return be
}

// samples covers valid text, stray bytes, truncated and overlong sequences.
var samples = []string{
	"",
	"hello",
	"1\" μs / °C",
	"1 \xFF \xce\xbcs / \xc2\xb0C",
	"\xFF",
	"\xFF\xFE",
	"a\xE2\x82b",
	"ab\xE2\x82",
	"\xF0\x9F\x98",
	"\xF0\x9F\x98\x80 smile",
	"\xE0\x80",
	"\xED\xA0\x80",
	"\xC0\xAF",
	"\xF4\x90\x80\x80",
	"tab\there\n",
	"\x00\x7f",
	"é",
	"\xEF\xBF\xBD literal replacement",
}
