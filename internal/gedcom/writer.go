package gedcom

import (
	"fmt"
	"io"
	"strings"
)

// LineWriter emits level-prefixed lines while tracking the current nesting
// level. The first write error is retained and turns every later emit into
// a no-op; callers check Err once at the end.
type LineWriter struct {
	w     io.Writer
	level int
	err   error
}

// NewLineWriter returns a writer positioned at level zero.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// Descend increments the nesting level and returns the function that
// restores it. Callers defer the result so the level is restored on every
// exit path:
//
//	defer lw.Descend()()
func (lw *LineWriter) Descend() func() {
	lw.level++
	return func() { lw.level-- }
}

// Err returns the first write error, if any.
func (lw *LineWriter) Err() error {
	return lw.err
}

// Emit writes `<level> [@xref@] TAG [parts...]`. The xref token is passed
// fully delimited or empty.
func (lw *LineWriter) Emit(xref, tag string, parts ...string) {
	lw.EmitAt(0, xref, tag, parts...)
}

// EmitAt is Emit with a one-off level adjustment, for lines that logically
// belong one level away from the writer's current position.
func (lw *LineWriter) EmitAt(offset int, xref, tag string, parts ...string) {
	if lw.err != nil {
		return
	}
	tokens := make([]string, 0, len(parts)+2)
	if xref != "" {
		tokens = append(tokens, xref)
	}
	tokens = append(tokens, tag)
	for _, part := range parts {
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	_, err := fmt.Fprintf(lw.w, "%d %s\n", lw.level+offset, strings.Join(tokens, " "))
	if err != nil {
		lw.err = fmt.Errorf("writing line: %w", err)
	}
}

// EmitOptional writes `<level> TAG parts...` with empty parts dropped, and
// suppresses the line entirely when nothing but the tag would remain.
func (lw *LineWriter) EmitOptional(tag string, parts ...string) {
	for _, part := range parts {
		if part != "" {
			lw.Emit("", tag, parts...)
			return
		}
	}
}

// EmitPointer writes `<level> TAG @ref@`, the citation-style trailing
// pointer form.
func (lw *LineWriter) EmitPointer(tag, ref string) {
	lw.Emit("", tag, ref)
}
