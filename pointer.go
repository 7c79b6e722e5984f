package jsonapi

import (
	"strconv"
	"strings"
)

// A Pointer locates a value within a JSON document, rendered using the JSON
// Pointer syntax of RFC 6901. Pointers are immutable: descending into the
// document always produces a new value.
type Pointer struct {
	segments []string
}

// Root returns the pointer to the document itself. It renders as "/".
func Root() Pointer {
	return Pointer{}
}

// Child returns a new pointer descending into the named member of the value
// the receiver points at.
func (p Pointer) Child(segment string) Pointer {
	segments := make([]string, len(p.segments), len(p.segments)+1)
	copy(segments, p.segments)
	return Pointer{segments: append(segments, segment)}
}

// Index returns a new pointer descending into the array element at i.
func (p Pointer) Index(i int) Pointer {
	return p.Child(strconv.Itoa(i))
}

// "~" and "/" must be escaped as "~0" and "~1" so that rendering remains
// unambiguous for any segment text.
var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// String renders the pointer.
func (p Pointer) String() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, segment := range p.segments {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(segment))
	}
	return b.String()
}
