package gedcom

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineWriterEmit(t *testing.T) {
	var buf strings.Builder
	lw := NewLineWriter(&buf)

	lw.Emit("@I1@", "INDI")
	func() {
		defer lw.Descend()()
		lw.Emit("", "NAME", "Andrew", "/Bear/")
		lw.EmitPointer("SOUR", "@S1@")
		lw.EmitAt(1, "", "PAGE", "17")
	}()
	lw.Emit("@I2@", "INDI")

	require.NoError(t, lw.Err())
	assert.Equal(t, strings.Join([]string{
		"0 @I1@ INDI",
		"1 NAME Andrew /Bear/",
		"1 SOUR @S1@",
		"2 PAGE 17",
		"0 @I2@ INDI",
	}, "\n")+"\n", buf.String())
}

func TestLineWriterDescendIsSymmetric(t *testing.T) {
	var buf strings.Builder
	lw := NewLineWriter(&buf)

	// The restore must run on early returns as well.
	func() {
		defer lw.Descend()()
		func() {
			defer lw.Descend()()
			lw.Emit("", "DEEP")
		}()
		lw.Emit("", "MIDDLE")
	}()
	lw.Emit("", "TOP")

	assert.Equal(t, "2 DEEP\n1 MIDDLE\n0 TOP\n", buf.String())
}

func TestLineWriterEmitOptional(t *testing.T) {
	var buf strings.Builder
	lw := NewLineWriter(&buf)

	lw.EmitOptional("GIVN", "Andrew")
	lw.EmitOptional("SURN", "")
	lw.EmitOptional("PLAC", "", "Lancaster")
	lw.EmitOptional("NICK")

	assert.Equal(t, "0 GIVN Andrew\n0 PLAC Lancaster\n", buf.String())
}

type failWriter struct{ calls int }

func (w *failWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestLineWriterRetainsFirstError(t *testing.T) {
	w := &failWriter{}
	lw := NewLineWriter(w)

	lw.Emit("", "ONE")
	lw.Emit("", "TWO")
	lw.Emit("", "THREE")

	assert.Error(t, lw.Err())
	assert.Equal(t, 1, w.calls, "emits after a failure are dropped")
}
