// Package normalize post-processes a parsed record database: it propagates
// page numbers across citations, merges duplicate citation nodes, recovers
// lineage codes embedded in note text, and backfills page numbers from an
// external map. Every pass mutates the database in place; anomalies are
// logged where they are found and never escape a pass.
package normalize

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/dave-shawley/ged-work/internal/gedcom"
)

// listedPrefix starts the note text a lineage code is recovered from; the
// code is the second whitespace-delimited token after the prefix.
const listedPrefix = "Listed as "

// Normalizer applies structural passes to one database. Passes must be
// applied sequentially by a single owner; traversals are invalidated by
// concurrent mutation.
type Normalizer struct {
	db         *gedcom.Database
	log        *slog.Logger
	lineageIDs map[string]*gedcom.Record
}

// New returns a normalizer over db logging anomalies to log.
func New(db *gedcom.Database, log *slog.Logger) *Normalizer {
	return &Normalizer{db: db, log: log}
}

// SetSourcePages copies the page of each person's first citation onto the
// person's other citations. For every INDI root whose first direct SOUR
// child has a PAGE child, every other SOUR descendant under that root that
// lacks a PAGE gains a clone of it. The pass never crosses roots.
func (n *Normalizer) SetSourcePages() {
	for _, root := range n.db.Roots() {
		if root.Tag != gedcom.TagIndividual {
			continue
		}
		first := root.FindFirstChild(gedcom.TagSource)
		if first == nil {
			continue
		}
		page := first.FindFirstChild(gedcom.TagPage)
		if page == nil {
			continue
		}
		for cite := range root.Descendants(gedcom.TagSource) {
			if cite == first {
				continue
			}
			if cite.FindFirstChild(gedcom.TagPage) == nil {
				cite.AddChild(page.Clone())
			}
		}
	}
}

// RemoveDuplicateSources merges duplicate citation children throughout the
// database. For each parent with more than one direct SOUR child carrying
// a single shared citation text, the citations are replaced by one entry
// per distinct page (first occurrence per page wins), or exactly one
// unpaged entry when none carry a page. Parents whose citations disagree
// on text are left untouched and logged. A merge-touched INDI or FAM root
// left without citations is logged as an error; the pass does not attempt
// repair. Running the pass twice changes nothing the second time.
func (n *Normalizer) RemoveDuplicateSources() {
	for _, root := range n.db.Roots() {
		guard := root.Tag == gedcom.TagIndividual || root.Tag == gedcom.TagFamily
		hadCitations := root.FindFirstChild(gedcom.TagSource) != nil

		for _, parent := range mergeCandidates(root) {
			n.mergeSources(parent)
		}

		if guard && hadCitations && root.FindFirstChild(gedcom.TagSource) == nil {
			n.log.Error("merge removed every citation from record",
				slog.String("xref", root.Xref),
				slog.String("tag", root.Tag))
		}
	}
}

// mergeCandidates collects, before any mutation, every record in the
// subtree (root included) with more than one direct SOUR child.
func mergeCandidates(root *gedcom.Record) []*gedcom.Record {
	var found []*gedcom.Record
	var walk func(*gedcom.Record)
	walk = func(rec *gedcom.Record) {
		count := 0
		for range rec.ChildrenByTag(gedcom.TagSource) {
			count++
		}
		if count > 1 {
			found = append(found, rec)
		}
		for _, child := range rec.Children {
			walk(child)
		}
	}
	walk(root)
	return found
}

func (n *Normalizer) mergeSources(parent *gedcom.Record) {
	citations := slices.Collect(parent.ChildrenByTag(gedcom.TagSource))
	if len(citations) < 2 {
		return
	}

	texts := make(map[string]bool)
	for _, cite := range citations {
		texts[citationText(cite)] = true
	}
	if len(texts) > 1 {
		n.log.Info("not merging citations with differing text",
			slog.String("parent", parent.Tag),
			slog.Int("citations", len(citations)),
			slog.Int("texts", len(texts)))
		return
	}
	shared := citationText(citations[0])

	seenPages := make(map[string]bool)
	var keep []*gedcom.Record
	var unpaged *gedcom.Record
	for _, cite := range citations {
		page := cite.FindFirstChild(gedcom.TagPage)
		if page == nil {
			if unpaged == nil {
				unpaged = cite
			}
			continue
		}
		if seenPages[page.Data] {
			continue
		}
		seenPages[page.Data] = true
		keep = append(keep, cite)
	}
	if len(keep) == 0 && unpaged != nil {
		keep = append(keep, unpaged)
	}

	for _, cite := range citations {
		parent.RemoveChild(cite)
	}
	for _, cite := range keep {
		setCitationText(cite, shared)
		parent.AddChild(cite)
	}
}

// citationText is the citation payload: the pointer when present,
// otherwise the inline data.
func citationText(cite *gedcom.Record) string {
	if cite.Reference != "" {
		return cite.Reference
	}
	return cite.Data
}

func setCitationText(cite *gedcom.Record, text string) {
	if cite.Reference != "" {
		cite.Reference = text
		return
	}
	cite.Data = text
}

// AugmentIndiIDs recovers externally meaningful lineage codes from note
// text. For every INDI root, each direct NOTE child carrying a pointer is
// resolved and the resolved note's CONT children are scanned for the
// "Listed as " prefix. The result maps lineage code to person root; it is
// retained for InsertPageNumbers and returned. The database itself is not
// mutated.
func (n *Normalizer) AugmentIndiIDs() map[string]*gedcom.Record {
	table := make(map[string]*gedcom.Record)
	for _, root := range n.db.Roots() {
		if root.Tag != gedcom.TagIndividual {
			continue
		}
		for note := range root.ChildrenByTag(gedcom.TagNote) {
			if note.Reference == "" {
				continue
			}
			target, err := n.db.FindPointer(note.Reference)
			if err != nil {
				n.log.Warn("dangling note reference",
					slog.String("person", root.Xref),
					slog.String("reference", note.Reference))
				continue
			}
			for cont := range target.ChildrenByTag(gedcom.TagContinuation) {
				if code, ok := lineageCode(cont.Data); ok {
					table[code] = root
				}
			}
		}
	}
	n.lineageIDs = table
	return table
}

// lineageCode extracts the second whitespace-delimited token after the
// "Listed as " prefix.
func lineageCode(text string) (string, bool) {
	rest, ok := strings.CutPrefix(text, listedPrefix)
	if !ok {
		return "", false
	}
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}

// InsertPageNumbers backfills missing citation pages from a lineage-code
// to page-number mapping, using the side table built by AugmentIndiIDs.
// A person gains a PAGE node only when it has exactly one citation child
// and that citation has none. Codes absent from the side table are logged
// and skipped. Codes are processed in sorted order so runs are
// deterministic.
func (n *Normalizer) InsertPageNumbers(pages map[string]string) {
	for _, code := range slices.Sorted(maps.Keys(pages)) {
		root, ok := n.lineageIDs[code]
		if !ok {
			n.log.Warn("lineage code not present in database",
				slog.String("code", code))
			continue
		}
		citations := slices.Collect(root.ChildrenByTag(gedcom.TagSource))
		if len(citations) != 1 {
			continue
		}
		if citations[0].FindFirstChild(gedcom.TagPage) != nil {
			continue
		}
		citations[0].AddChild(&gedcom.Record{Tag: gedcom.TagPage, Data: pages[code]})
	}
}
