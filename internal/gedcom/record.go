package gedcom

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Record is one tagged line in the tree. Children are owned and kept in
// document order; Parent is a non-owning back-link that is nil for roots.
type Record struct {
	// Level is the nesting depth, zero at the root. For any attached child
	// Level is always Parent.Level+1.
	Level int

	// Tag is the record category, e.g. INDI, SOUR, PAGE.
	Tag string

	// Data is the free-form payload following the tag, possibly empty.
	Data string

	// Xref is the @-delimited identifier this record defines, rendered
	// before the tag. Empty for records that define nothing.
	Xref string

	// Reference is the @-delimited identifier this record points to,
	// rendered after the data.
	Reference string

	Children []*Record
	Parent   *Record
}

// ParseLine parses a single raw line, with or without a line terminator.
// The level is the first space-delimited token, a leading @-token defines
// an xref, and a trailing @-delimited token is a reference.
func ParseLine(raw string) (*Record, error) {
	levelToken, rest, _ := strings.Cut(strings.TrimSpace(raw), " ")
	level, err := strconv.Atoi(levelToken)
	if err != nil {
		return nil, fmt.Errorf("invalid record level %q: %w", levelToken, err)
	}
	if level < 0 {
		return nil, fmt.Errorf("invalid record level %d", level)
	}

	rec := &Record{Level: level}
	remaining := strings.TrimSpace(rest)

	if strings.HasPrefix(remaining, "@") {
		rec.Xref, remaining, _ = strings.Cut(remaining, " ")
	}

	rec.Tag, remaining, _ = strings.Cut(remaining, " ")

	if idx := strings.LastIndex(remaining, " "); idx >= 0 {
		if tail := remaining[idx+1:]; isPointerToken(tail) {
			rec.Reference = tail
			remaining = remaining[:idx]
		}
	} else if isPointerToken(remaining) {
		rec.Reference = remaining
		remaining = ""
	}

	rec.Data = strings.TrimSpace(remaining)
	return rec, nil
}

func isPointerToken(token string) bool {
	return len(token) >= 2 && strings.HasPrefix(token, "@") && strings.HasSuffix(token, "@")
}

// LineData returns the line content following the level: xref, tag, data,
// and reference joined by single spaces with empty fields dropped.
func (r *Record) LineData() string {
	parts := make([]string, 0, 4)
	if r.Xref != "" {
		parts = append(parts, r.Xref)
	}
	parts = append(parts, r.Tag)
	if r.Data != "" {
		parts = append(parts, r.Data)
	}
	if r.Reference != "" {
		parts = append(parts, r.Reference)
	}
	return strings.Join(parts, " ")
}

// String renders the record and its children as line-format text, one
// line per record in depth-first pre-order.
func (r *Record) String() string {
	var b strings.Builder
	r.render(&b)
	return b.String()
}

func (r *Record) render(b *strings.Builder) {
	fmt.Fprintf(b, "%d %s\n", r.Level, r.LineData())
	for _, child := range r.Children {
		child.render(b)
	}
}

// AddChild reparents child under r, appends it to Children, and re-levels
// the child's subtree so the level invariant holds. It returns child.
func (r *Record) AddChild(child *Record) *Record {
	child.Parent = r
	r.Children = append(r.Children, child)
	child.setLevel(r.Level + 1)
	return child
}

func (r *Record) setLevel(level int) {
	r.Level = level
	for _, child := range r.Children {
		child.setLevel(level + 1)
	}
}

// RemoveChild detaches child from r, preserving the order of the remaining
// siblings. It reports whether child was found among r's children.
func (r *Record) RemoveChild(child *Record) bool {
	for i, c := range r.Children {
		if c == child {
			r.Children = append(r.Children[:i], r.Children[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// FindFirstChild returns the first direct child with the given tag, or nil.
func (r *Record) FindFirstChild(tag string) *Record {
	for _, child := range r.Children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// ChildrenByTag returns a lazy sequence over the direct children with the
// given tag, in document order.
func (r *Record) ChildrenByTag(tag string) iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, child := range r.Children {
			if child.Tag == tag && !yield(child) {
				return
			}
		}
	}
}

// Descendants returns a lazy sequence over every descendant with the given
// tag, at any depth, in depth-first pre-order. The record itself is not
// included. Each call starts a fresh traversal.
func (r *Record) Descendants(tag string) iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		var walk func(*Record) bool
		walk = func(rec *Record) bool {
			for _, child := range rec.Children {
				if child.Tag == tag && !yield(child) {
					return false
				}
				if !walk(child) {
					return false
				}
			}
			return true
		}
		walk(r)
	}
}

// NodeCount returns the number of records in this subtree, including r.
func (r *Record) NodeCount() int {
	count := 1
	for _, child := range r.Children {
		count += child.NodeCount()
	}
	return count
}

// Clone returns a deep copy of the record's subtree. The copy has no parent.
func (r *Record) Clone() *Record {
	clone := &Record{
		Level:     r.Level,
		Tag:       r.Tag,
		Data:      r.Data,
		Xref:      r.Xref,
		Reference: r.Reference,
	}
	for _, child := range r.Children {
		clone.AddChild(child.Clone())
	}
	return clone
}
