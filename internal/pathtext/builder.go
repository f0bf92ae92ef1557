// Package pathtext provides efficient incremental construction of the
// textual path strings the field-path walker attaches to matches and
// diagnostics, adapted from oastools' internal/pathutil builder: push/pop
// semantics so a recursive walk can build and unwind a path without
// reallocating a string at every step, materializing the full string only
// when String() is actually called.
package pathtext

import (
	"strconv"
	"strings"
)

// Builder accumulates path segments via Push/PushIndex and Pop.
type Builder struct {
	segments []string
	length   int
}

// Push adds a named field segment.
func (b *Builder) Push(segment string) {
	b.segments = append(b.segments, segment)
	if len(b.segments) > 1 {
		b.length++ // dot separator
	}
	b.length += len(segment)
}

// PushIndex adds a sequence-index segment rendered as "[i]".
func (b *Builder) PushIndex(i int) {
	seg := "[" + strconv.Itoa(i) + "]"
	b.segments = append(b.segments, seg)
	b.length += len(seg)
}

// Pop removes the most recently pushed segment.
func (b *Builder) Pop() {
	if len(b.segments) == 0 {
		return
	}
	last := b.segments[len(b.segments)-1]
	b.segments = b.segments[:len(b.segments)-1]
	b.length -= len(last)
	if len(b.segments) > 0 && (len(last) == 0 || last[0] != '[') {
		b.length--
	}
}

// Len returns the number of segments currently pushed.
func (b *Builder) Len() int { return len(b.segments) }

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.segments = b.segments[:0]
	b.length = 0
}

// String materializes the full dotted/bracketed path.
func (b *Builder) String() string {
	if len(b.segments) == 0 {
		return ""
	}
	var out strings.Builder
	out.Grow(b.length)
	out.WriteString(b.segments[0])
	for _, seg := range b.segments[1:] {
		if len(seg) > 0 && seg[0] == '[' {
			out.WriteString(seg)
		} else {
			out.WriteByte('.')
			out.WriteString(seg)
		}
	}
	return out.String()
}
