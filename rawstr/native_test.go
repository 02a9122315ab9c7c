package rawstr

import (
	"errors"
	"testing"
)

func TestToOSString(t *testing.T) {
	for _, in := range samples {
		got, err := Str(in).ToOSString()
		if NativeIsByteSuperset || Str(in).ValidUTF8() {
			if err != nil || got != in {
				t.Errorf("%q: expected exact conversion, got %q (%v)", in, got, err)
			}
			continue
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("%q: expected *DecodeError, got %v", in, err)
		}
	}
}

func TestToPathKeepsBytes(t *testing.T) {
	got, err := Str("dir//./name").ToPath()
	if err != nil || got != "dir//./name" {
		t.Errorf("expected path unchanged, got %q (%v)", got, err)
	}
}

func TestTryIntoOSString(t *testing.T) {
	b := NewBufferString("name\xFF")
	got, err := b.TryIntoOSString()
	if !b.IsEmpty() {
		t.Error("expected buffer to be emptied")
	}

	if NativeIsByteSuperset {
		if err != nil || got != "name\xFF" {
			t.Errorf("expected raw bytes, got %q (%v)", got, err)
		}
		return
	}

	var fe *FromUTF8Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FromUTF8Error, got %v", err)
	}
	if string(fe.Bytes()) != "name\xFF" {
		t.Errorf("expected original bytes back, got %q", fe.Bytes())
	}
}

func TestTryIntoPath(t *testing.T) {
	b := NewBufferString("/tmp/ok")
	got, err := b.TryIntoPath()
	if err != nil || got != "/tmp/ok" {
		t.Errorf("expected \"/tmp/ok\", got %q (%v)", got, err)
	}
}
