// Package lineage expands nested family outlines into uniquely identified
// person and family entities and renders them as level-prefixed records.
package lineage

import (
	"log/slog"

	"github.com/dave-shawley/ged-work/internal/names"
	"github.com/dave-shawley/ged-work/internal/outline"
)

// Builder expands a family outline into Person and Family entities with
// generated identifiers and deterministic child lineage codes. It owns
// every entity it creates.
type Builder struct {
	seq    *Sequence
	parser names.Parser
	log    *slog.Logger

	persons  []*Person
	families []*Family
}

// NewBuilder returns a builder drawing identifiers from seq and name
// components from parser.
func NewBuilder(seq *Sequence, parser names.Parser, log *slog.Logger) *Builder {
	return &Builder{seq: seq, parser: parser, log: log}
}

// Persons returns every built person in creation order.
func (b *Builder) Persons() []*Person {
	return b.persons
}

// Families returns every built family in creation order.
func (b *Builder) Families() []*Family {
	return b.families
}

// Process expands each top-level outline entry. Top-level entries must
// carry an explicit lineage code; entries without one are skipped with a
// warning. The page context is sticky across siblings in document order:
// each entry that declares a page updates the running context, and entries
// without one inherit it.
func (b *Builder) Process(doc *outline.Document) {
	page := ""
	for _, entry := range doc.Entries {
		if entry.LineageID == "" {
			b.log.Warn("skipping top-level entry without lineage code",
				slog.String("name", entry.Name))
			continue
		}
		page = effectivePage(entry, page)
		b.buildPerson(entry, entry.LineageID, page)
	}
}

func effectivePage(entry *outline.Entry, context string) string {
	if entry.Page != "" {
		return string(entry.Page)
	}
	return context
}

// buildPerson creates the person for entry and expands each of its
// families depth-first: the spouse (never inheriting a lineage code), then
// every child, recursing into a child's own families before moving to the
// next sibling. Children without an explicit code draw the next value from
// a generator seeded with the parent's code; one generator spans all of
// the parent's families.
func (b *Builder) buildPerson(entry *outline.Entry, code, page string) *Person {
	person := &Person{
		UID:        b.seq.Next(),
		LineageID:  code,
		Name:       names.Clean(b.parser.Parse(entry.Name)),
		Gender:     entry.Gender,
		PageNumber: page,
	}
	for _, event := range entry.Events {
		if event.Kind == outline.KindUnknown {
			b.log.Warn("skipping unknown event kind",
				slog.String("kind", event.Key),
				slog.String("person", entry.Name))
			continue
		}
		person.Events = append(person.Events, event)
	}
	b.persons = append(b.persons, person)

	codes := NewChildCodes(code)
	for _, familyEntry := range entry.Families {
		family := &Family{UID: b.seq.Next()}
		family.Parents = append(family.Parents, person)

		if familyEntry.Spouse != nil {
			spousePage := effectivePage(familyEntry.Spouse, page)
			spouse := b.buildPerson(familyEntry.Spouse, "", spousePage)
			family.Parents = append(family.Parents, spouse)
		}

		childPage := page
		for _, childEntry := range familyEntry.Children {
			childCode := childEntry.LineageID
			if childCode == "" {
				childCode = codes.Next()
			}
			childPage = effectivePage(childEntry, childPage)
			child := b.buildPerson(childEntry, childCode, childPage)
			family.Children = append(family.Children, child)
		}

		b.families = append(b.families, family)
	}
	return person
}

// BackfillPages fills in missing page numbers from a lineage-code to page
// mapping, typically read from a map file. Pages already set by the
// outline are left alone.
func (b *Builder) BackfillPages(pages map[string]string) {
	for _, person := range b.persons {
		if person.PageNumber != "" || person.LineageID == "" {
			continue
		}
		if page, ok := pages[person.LineageID]; ok {
			person.PageNumber = page
		}
	}
}
