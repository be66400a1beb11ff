package lineage_test

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/dave-shawley/ged-work/internal/gedcom"
	"github.com/dave-shawley/ged-work/internal/lineage"
	"github.com/dave-shawley/ged-work/internal/names"
	"github.com/dave-shawley/ged-work/internal/normalize"
	"github.com/dave-shawley/ged-work/internal/outline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func renderFixture(t *testing.T) *gedcom.Database {
	t.Helper()
	b := lineage.NewBuilder(lineage.NewSequence(100), names.SimpleParser{}, discardLogger())
	b.Process(&outline.Document{Entries: []*outline.Entry{{
		Name:      "Andrew Bear",
		Gender:    "M",
		Page:      "17",
		LineageID: "I3",
		Events: []outline.Event{
			{Kind: outline.KindBirth, Key: "birth", Value: "AFT 1773"},
			{Kind: outline.KindResidence, Key: "residence", Place: &outline.Place{
				Place:  "Earl Township",
				County: "Lancaster",
				State:  "Pennsylvania",
				Coordinates: &outline.Coordinates{
					Latitude:  "N40.1",
					Longitude: "W76.1",
				},
			}},
			{Kind: outline.KindOccupation, Key: "occupation", Value: "Farmer"},
		},
		Families: []outline.FamilyEntry{{
			Spouse:   &outline.Entry{Name: "Mary Miller", Gender: "F"},
			Children: []*outline.Entry{{Name: "Jacob Bear", Gender: "M"}},
		}},
	}}})

	var buf bytes.Buffer
	require.NoError(t, b.Render(&buf))

	db, err := gedcom.Parse(&buf)
	require.NoError(t, err, "rendered output parses cleanly")
	return db
}

func TestRenderParsesBack(t *testing.T) {
	db := renderFixture(t)

	// One static source, three persons, one family, two notes (the spouse
	// has no lineage code and therefore no note).
	require.Len(t, db.Roots(), 7)

	source := db.Roots()[0]
	assert.Equal(t, gedcom.TagSource, source.Tag)
	assert.Equal(t, "@S1@", source.Xref)
	assert.NotNil(t, source.FindFirstChild("TITL"))

	andrew, err := db.FindPointer("@I100@")
	require.NoError(t, err)
	assert.Equal(t, gedcom.TagIndividual, andrew.Tag)
	assert.Equal(t, "Andrew /Bear/", andrew.FindFirstChild("NAME").Data)
	assert.Equal(t, "M", andrew.FindFirstChild("SEX").Data)
	assert.Equal(t, "I3", andrew.FindFirstChild("REFN").Data)

	t.Run("events", func(t *testing.T) {
		birt := andrew.FindFirstChild("BIRT")
		require.NotNil(t, birt)
		assert.Equal(t, "AFT 1773", birt.FindFirstChild("DATE").Data)

		resi := andrew.FindFirstChild("RESI")
		require.NotNil(t, resi)
		plac := resi.FindFirstChild("PLAC")
		require.NotNil(t, plac)
		assert.Equal(t, "Earl Township, Lancaster, Pennsylvania", plac.Data)
		m := resi.FindFirstChild("MAP")
		require.NotNil(t, m)
		assert.Equal(t, "N40.1", m.FindFirstChild("LATI").Data)
		assert.Equal(t, "W76.1", m.FindFirstChild("LONG").Data)

		occu := andrew.FindFirstChild("OCCU")
		require.NotNil(t, occu)
		assert.Equal(t, "Farmer", occu.Data)
	})

	t.Run("citation", func(t *testing.T) {
		cite := andrew.FindFirstChild(gedcom.TagSource)
		require.NotNil(t, cite)
		assert.Equal(t, "@S1@", cite.Reference)
		assert.Equal(t, "17", cite.FindFirstChild(gedcom.TagPage).Data)
	})

	t.Run("family record", func(t *testing.T) {
		fam, err := db.FindPointer("@F101@")
		require.NoError(t, err)
		assert.Equal(t, "@I100@", fam.FindFirstChild("HUSB").Reference)
		assert.Equal(t, "@I102@", fam.FindFirstChild("WIFE").Reference)
		assert.Equal(t, "@I103@", fam.FindFirstChild("CHIL").Reference)
	})

	t.Run("spouse has no note or lineage code", func(t *testing.T) {
		mary, err := db.FindPointer("@I102@")
		require.NoError(t, err)
		assert.Nil(t, mary.FindFirstChild("REFN"))
		assert.Nil(t, mary.FindFirstChild(gedcom.TagNote))
	})
}

func TestRenderedNotesRoundTripThroughAugment(t *testing.T) {
	db := renderFixture(t)

	table := normalize.New(db, discardLogger()).AugmentIndiIDs()

	andrew, err := db.FindPointer("@I100@")
	require.NoError(t, err)
	jacob, err := db.FindPointer("@I103@")
	require.NoError(t, err)

	assert.Same(t, andrew, table["I3"], "the builder's notes feed identifier recovery")
	assert.Same(t, jacob, table["I31"])
	assert.Len(t, table, 2)
}
