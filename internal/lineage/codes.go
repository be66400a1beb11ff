package lineage

import "strconv"

// IndexCode maps a 1-based sibling index to its lineage-code digit:
// 1 through 9 map directly, 10 wraps to "0", and 11 onward continue
// alphabetically ("A", "B", ...).
func IndexCode(index int) string {
	switch {
	case index <= 0:
		return ""
	case index <= 9:
		return strconv.Itoa(index)
	case index == 10:
		return "0"
	default:
		return string(rune('A' + index - 11))
	}
}

// ChildCodes generates lineage codes for the children of one parent. The
// sequence is infinite: prefix+"1" .. prefix+"9", prefix+"0", prefix+"A",
// prefix+"B", and so on. A fresh generator is created per parent.
type ChildCodes struct {
	prefix string
	index  int
}

// NewChildCodes returns a generator seeded with the parent's own lineage
// code as prefix.
func NewChildCodes(prefix string) *ChildCodes {
	return &ChildCodes{prefix: prefix}
}

// Next returns the next child code. It never runs out.
func (c *ChildCodes) Next() string {
	c.index++
	return c.prefix + IndexCode(c.index)
}
