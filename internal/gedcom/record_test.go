package gedcom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		level     int
		xref      string
		tag       string
		data      string
		reference string
	}{
		{
			name:  "tag and data",
			line:  "1 NAME Andrew /Bear/",
			level: 1, tag: "NAME", data: "Andrew /Bear/",
		},
		{
			name:  "defining xref",
			line:  "0 @I14938282@ INDI",
			level: 0, xref: "@I14938282@", tag: "INDI",
		},
		{
			name:  "trailing reference",
			line:  "2 SOUR some text @S68885317@",
			level: 2, tag: "SOUR", data: "some text",
			reference: "@S68885317@",
		},
		{
			name:  "reference only",
			line:  "1 SOUR @S68885317@",
			level: 1, tag: "SOUR", reference: "@S68885317@",
		},
		{
			name:  "tag only with terminator",
			line:  "1 BIRT\n",
			level: 1, tag: "BIRT",
		},
		{
			name:  "at-sign inside data is not a reference",
			line:  "1 ADDR daveshawley@gmail.com",
			level: 1, tag: "ADDR", data: "daveshawley@gmail.com",
		},
		{
			name:  "xref and reference on one line",
			line:  "1 @X1@ REPO see also @R2@",
			level: 1, xref: "@X1@", tag: "REPO", data: "see also",
			reference: "@R2@",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.level, rec.Level)
			assert.Equal(t, tt.xref, rec.Xref)
			assert.Equal(t, tt.tag, rec.Tag)
			assert.Equal(t, tt.data, rec.Data)
			assert.Equal(t, tt.reference, rec.Reference)
		})
	}

	t.Run("rejects junk level", func(t *testing.T) {
		_, err := ParseLine("x NAME oops")
		assert.Error(t, err)
	})

	t.Run("rejects negative level", func(t *testing.T) {
		_, err := ParseLine("-1 NAME oops")
		assert.Error(t, err)
	})
}

func TestLineDataRoundTrip(t *testing.T) {
	lines := []string{
		"0 HEAD",
		"0 @I14938282@ INDI",
		"1 NAME Andrew /Bear/",
		"1 SOUR @S68885317@",
		"2 SOUR page citation @S68885317@",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			rec, err := ParseLine(line)
			require.NoError(t, err)
			assert.Equal(t, line+"\n", rec.String())
		})
	}
}

func TestRecordRendersChildrenRecursively(t *testing.T) {
	indi := mustParseLine(t, "0 @I14938282@ INDI")
	name := indi.AddChild(mustParseLine(t, "1 NAME Andrew /Bear/"))
	name.AddChild(mustParseLine(t, "2 GIVN Andrew"))
	name.AddChild(mustParseLine(t, "2 SURN Bear"))

	assert.Equal(t,
		"0 @I14938282@ INDI\n"+
			"1 NAME Andrew /Bear/\n"+
			"2 GIVN Andrew\n"+
			"2 SURN Bear\n",
		indi.String())
	assert.Equal(t, 4, indi.NodeCount())
	assert.Equal(t, 3, name.NodeCount())
}

func TestAddChild(t *testing.T) {
	t.Run("sets record level from parent", func(t *testing.T) {
		root := mustParseLine(t, "0 PARENT")
		child := mustParseLine(t, "2 CHILD")
		require.Equal(t, 2, child.Level)

		root.AddChild(child)
		assert.Equal(t, 1, child.Level)
		assert.Same(t, root, child.Parent)
	})

	t.Run("re-levels the whole subtree", func(t *testing.T) {
		branch := mustParseLine(t, "0 BRANCH")
		leaf := branch.AddChild(mustParseLine(t, "1 LEAF"))

		root := mustParseLine(t, "0 PARENT")
		root.AddChild(branch)
		assert.Equal(t, 1, branch.Level)
		assert.Equal(t, 2, leaf.Level)
	})

	t.Run("returns the child", func(t *testing.T) {
		root := mustParseLine(t, "0 PARENT")
		child := mustParseLine(t, "1 CHILD")
		assert.Same(t, child, root.AddChild(child))
		assert.Equal(t, []*Record{child}, root.Children)
	})
}

func TestRemoveChild(t *testing.T) {
	root := mustParseLine(t, "0 PARENT")
	first := root.AddChild(mustParseLine(t, "1 CHILD one"))
	second := root.AddChild(mustParseLine(t, "1 CHILD two"))
	third := root.AddChild(mustParseLine(t, "1 CHILD three"))

	assert.True(t, root.RemoveChild(second))
	assert.Equal(t, []*Record{first, third}, root.Children)
	assert.Nil(t, second.Parent)

	assert.False(t, root.RemoveChild(second), "removing twice fails")
}

func TestFindFirstChild(t *testing.T) {
	root := mustParseLine(t, "0 PARENT")
	first := root.AddChild(mustParseLine(t, "1 FIRST CHILD"))

	assert.Same(t, first, root.FindFirstChild("FIRST"))
	assert.Nil(t, root.FindFirstChild("SECOND"))
}

func TestChildrenByTag(t *testing.T) {
	root := mustParseLine(t, "0 PARENT")
	root.AddChild(mustParseLine(t, "1 CHILD FIRST"))
	root.AddChild(mustParseLine(t, "1 NOTCHILD"))
	root.AddChild(mustParseLine(t, "1 CHILD SECOND"))
	root.AddChild(mustParseLine(t, "1 CHILD THIRD"))

	var seen []string
	for child := range root.ChildrenByTag("CHILD") {
		seen = append(seen, child.Data)
	}
	assert.Equal(t, []string{"FIRST", "SECOND", "THIRD"}, seen)

	t.Run("is restartable", func(t *testing.T) {
		count := 0
		for range root.ChildrenByTag("CHILD") {
			count++
		}
		assert.Equal(t, 3, count)
	})

	t.Run("supports early break", func(t *testing.T) {
		for child := range root.ChildrenByTag("CHILD") {
			assert.Equal(t, "FIRST", child.Data)
			break
		}
	})
}

func TestClone(t *testing.T) {
	original := mustParseLine(t, "1 SOUR @S1@")
	original.AddChild(mustParseLine(t, "2 PAGE 17"))

	clone := original.Clone()
	assert.Nil(t, clone.Parent)
	assert.Equal(t, original.String(), clone.String())

	clone.Children[0].Data = "18"
	assert.Equal(t, "17", original.Children[0].Data, "clone is detached from the original")
}

func mustParseLine(t *testing.T, line string) *Record {
	t.Helper()
	rec, err := ParseLine(line)
	require.NoError(t, err)
	return rec
}
