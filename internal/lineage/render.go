package lineage

import (
	"fmt"
	"io"
	"strings"

	"github.com/dave-shawley/ged-work/internal/gedcom"
	"github.com/dave-shawley/ged-work/internal/outline"
)

// The citation attached to every rendered person points at this one static
// source record. The literal text is fixed, not derived from the outline.
const (
	sourceXref   = "@S1@"
	sourceTitle  = "Family Lineage Compendium"
	sourceAuthor = "Collected Family Papers"
	sourcePubl   = "Privately held"
)

// Render writes the built entities as level-prefixed records, driving the
// line writer directly. Output order: the static source record, person
// records, family records, then one lineage note record per coded person.
func (b *Builder) Render(w io.Writer) error {
	lw := gedcom.NewLineWriter(w)

	renderSource(lw)
	for _, person := range b.persons {
		renderPerson(lw, person)
	}
	for _, family := range b.families {
		renderFamily(lw, family)
	}
	for _, person := range b.persons {
		renderNote(lw, person)
	}
	return lw.Err()
}

func renderSource(lw *gedcom.LineWriter) {
	lw.Emit(sourceXref, gedcom.TagSource)
	defer lw.Descend()()
	lw.Emit("", "TITL", sourceTitle)
	lw.Emit("", "AUTH", sourceAuthor)
	lw.Emit("", "PUBL", sourcePubl)
}

func renderPerson(lw *gedcom.LineWriter, p *Person) {
	lw.Emit(p.Xref(), gedcom.TagIndividual)
	defer lw.Descend()()

	lw.Emit("", "NAME", formatName(p))
	func() {
		defer lw.Descend()()
		lw.EmitOptional("GIVN", p.Name.First)
		lw.EmitOptional("SURN", p.Name.Last)
		lw.EmitOptional("NPFX", p.Name.Title)
		lw.EmitOptional("NICK", p.Name.Nickname)
	}()

	lw.EmitOptional("SEX", p.Gender)

	for _, event := range p.Events {
		renderEvent(lw, event)
	}

	lw.EmitOptional("REFN", p.LineageID)

	lw.EmitPointer(gedcom.TagSource, sourceXref)
	if p.PageNumber != "" {
		lw.EmitAt(1, "", gedcom.TagPage, p.PageNumber)
	}
	if p.LineageID != "" {
		lw.EmitPointer(gedcom.TagNote, p.NoteXref())
	}
}

// formatName renders the interchange form of the name, surname slashed:
// `Andrew /Bear/`.
func formatName(p *Person) string {
	parts := make([]string, 0, 3)
	if p.Name.First != "" {
		parts = append(parts, p.Name.First)
	}
	if p.Name.Middle != "" {
		parts = append(parts, p.Name.Middle)
	}
	if p.Name.Last != "" {
		parts = append(parts, "/"+p.Name.Last+"/")
	}
	return strings.Join(parts, " ")
}

func renderEvent(lw *gedcom.LineWriter, event outline.Event) {
	var tag string
	switch event.Kind {
	case outline.KindBirth:
		tag = "BIRT"
	case outline.KindDeath:
		tag = "DEAT"
	case outline.KindResidence:
		tag = "RESI"
	case outline.KindOccupation:
		// Occupations carry their text on the event line itself.
		lw.Emit("", "OCCU", event.Value)
		return
	case outline.KindBurial:
		tag = "BURI"
	case outline.KindUnknown:
		// Filtered out during expansion; nothing to render.
		return
	default:
		return
	}

	lw.Emit("", tag)
	defer lw.Descend()()
	if event.Value != "" {
		lw.Emit("", "DATE", event.Value)
	}
	if event.Place != nil {
		renderPlace(lw, event.Place)
	}
}

func renderPlace(lw *gedcom.LineWriter, place *outline.Place) {
	parts := make([]string, 0, 4)
	for _, part := range []string{place.Place, place.County, place.State, place.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	lw.EmitOptional("PLAC", strings.Join(parts, ", "))
	if place.Coordinates != nil {
		lw.Emit("", "MAP")
		defer lw.Descend()()
		lw.EmitOptional("LATI", string(place.Coordinates.Latitude))
		lw.EmitOptional("LONG", string(place.Coordinates.Longitude))
	}
}

func renderFamily(lw *gedcom.LineWriter, f *Family) {
	lw.Emit(f.Xref(), gedcom.TagFamily)
	defer lw.Descend()()

	for i, parent := range f.Parents {
		tag := "HUSB"
		if parent.Gender == "F" || (parent.Gender == "" && i == 1) {
			tag = "WIFE"
		}
		lw.EmitPointer(tag, parent.Xref())
	}
	for _, child := range f.Children {
		lw.EmitPointer("CHIL", child.Xref())
	}
}

// renderNote emits the lineage note the identifier-recovery pass reads
// back: the second token after "Listed as " is the lineage code.
func renderNote(lw *gedcom.LineWriter, p *Person) {
	if p.LineageID == "" {
		return
	}
	lw.Emit(p.NoteXref(), gedcom.TagNote)
	defer lw.Descend()()

	text := fmt.Sprintf("Listed as entry %s", p.LineageID)
	if p.PageNumber != "" {
		text = fmt.Sprintf("%s on page %s", text, p.PageNumber)
	}
	lw.Emit("", gedcom.TagContinuation, text)
}
