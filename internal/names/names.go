// Package names defines the name-decomposition contract consumed by the
// lineage builder. Full human-name parsing is an external concern; the
// package ships a deliberately simple default implementation.
package names

import "strings"

// Unknown is the sentinel a decomposer may return for a component it could
// not determine. It means "unknown", not a literal underscore, and callers
// must clear it before use (see Clean).
const Unknown = "_"

// Name is a decomposed personal name.
type Name struct {
	First    string
	Middle   string
	Last     string
	Title    string
	Nickname string
}

// Parser decomposes a free-text name into its components.
type Parser interface {
	Parse(full string) Name
}

// Clean replaces the Unknown sentinel with an empty string in every
// component of n.
func Clean(n Name) Name {
	clear := func(s string) string {
		if s == Unknown {
			return ""
		}
		return s
	}
	return Name{
		First:    clear(n.First),
		Middle:   clear(n.Middle),
		Last:     clear(n.Last),
		Title:    clear(n.Title),
		Nickname: clear(n.Nickname),
	}
}

var titles = map[string]bool{
	"Mr.":  true,
	"Mrs.": true,
	"Ms.":  true,
	"Dr.":  true,
	"Rev.": true,
	"Col.": true,
	"Capt": true,
	"Gen.": true,
}

// SimpleParser is a positional decomposer: an optional leading title, a
// double-quoted token as the nickname, the last token as the surname, the
// first remaining token as the given name, and anything left as middle
// names. It stands in for a real name-parsing service.
type SimpleParser struct{}

// Parse implements Parser.
func (SimpleParser) Parse(full string) Name {
	var n Name
	tokens := strings.Fields(full)

	if len(tokens) > 1 && titles[tokens[0]] {
		n.Title = tokens[0]
		tokens = tokens[1:]
	}

	remaining := tokens[:0:0]
	for _, token := range tokens {
		if len(token) >= 3 && strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) {
			n.Nickname = strings.Trim(token, `"`)
			continue
		}
		remaining = append(remaining, token)
	}

	switch len(remaining) {
	case 0:
	case 1:
		n.First = remaining[0]
	default:
		n.First = remaining[0]
		n.Last = remaining[len(remaining)-1]
		n.Middle = strings.Join(remaining[1:len(remaining)-1], " ")
	}
	return n
}
