package lineage

import (
	"fmt"

	"github.com/dave-shawley/ged-work/internal/names"
	"github.com/dave-shawley/ged-work/internal/outline"
)

// Person is one expanded individual. The builder owns every Person it
// creates; after the outline traversal only PageNumber is ever mutated.
type Person struct {
	UID        int64
	LineageID  string
	Name       names.Name
	Gender     string
	PageNumber string
	Events     []outline.Event

	// Families is reserved for back-links from Family records and is not
	// populated yet.
	Families []*Family
}

// Xref returns the identifier token the person's record defines.
func (p *Person) Xref() string {
	return fmt.Sprintf("@I%d@", p.UID)
}

// NoteXref returns the identifier of the person's lineage note record.
func (p *Person) NoteXref() string {
	return fmt.Sprintf("@N%d@", p.UID)
}

// Family links one or two parents to their children. Parents and Children
// reference builder-owned Person values and are not owned here.
type Family struct {
	UID      int64
	Parents  []*Person
	Children []*Person
}

// Xref returns the identifier token the family's record defines.
func (f *Family) Xref() string {
	return fmt.Sprintf("@F%d@", f.UID)
}
