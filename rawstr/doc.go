// Package rawstr provides Str and Buffer, the byte-string equivalents of a
// string and a strings.Builder, without any guarantee that the contents are
// valid UTF-8.
//
// Str is a named []byte. Converting between the two never copies, so a Str
// can be laid over any existing byte region, such as a file name read from
// disk or an environment variable. Unlike []byte, a Str prints as text:
// %s and %v render it with every broken UTF-8 sequence collapsed into a single
// U+FFFD, and %q renders it quoted with every broken byte shown as \xHH.
//
// Buffer owns a growable Str. It embeds the Str it manages, so every read-only
// or slicing method of Str is available on a Buffer as well and always sees the
// buffer's current contents.
//
// Neither type synchronizes access. Any number of goroutines may read the same
// bytes at once, but mutation requires that nobody else is looking.
package rawstr
