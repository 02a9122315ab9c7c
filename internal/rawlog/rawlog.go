// Package rawlog logs byte strings with zerolog.
//
// A raw string can't be put in a JSON log line as is, so it is logged as an
// object carrying both renderings:
//
//	{"name":{"display":"caf�","debug":"\"caf\\xe9\"","len":4,"utf8":false}}
package rawlog

import (
	"github.com/rs/zerolog"

	"github.com/invakid404/rawstring/rawstr"
)

type value rawstr.Str

// Value wraps s for zerolog's Event.Object.
func Value(s rawstr.Str) zerolog.LogObjectMarshaler {
	return value(s)
}

func (v value) MarshalZerologObject(e *zerolog.Event) {
	s := rawstr.Str(v)
	e.Str("display", s.String()).
		Str("debug", s.Quote()).
		Int("len", s.Len()).
		Bool("utf8", s.ValidUTF8())
}

// Str adds s to e under key. Valid UTF-8 is logged as a plain string field,
// anything else as a Value object.
func Str(e *zerolog.Event, key string, s rawstr.Str) *zerolog.Event {
	if s.ValidUTF8() {
		return e.Str(key, string(s))
	}
	return e.Object(key, Value(s))
}
