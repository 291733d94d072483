package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_GetSetRoundTripsEveryField(t *testing.T) {
	var s Selection
	for i, f := range Fields {
		s.Set(f, string(rune('a'+i)))
	}
	for i, f := range Fields {
		assert.Equal(t, string(rune('a'+i)), s.Get(f), "field %s", f)
	}
	assert.False(t, s.IsEmpty())
}

func TestSelection_SetUnknownFieldIsIgnored(t *testing.T) {
	var s Selection
	s.Set(Field("nope"), "x")
	assert.True(t, s.IsEmpty())
	assert.Equal(t, "", s.Get(Field("nope")))
}

func TestFindOption_FirstMatchWins(t *testing.T) {
	opts := []Option{{Code: "1", Label: "a"}, {Code: "2", Label: "b"}, {Code: "1", Label: "c"}}
	o, ok := FindOption(opts, "1")
	assert.True(t, ok)
	assert.Equal(t, "a", o.Label)

	_, ok = FindOption(opts, "9")
	assert.False(t, ok)
	assert.True(t, ContainsCode(opts, "2"))
}

func TestField_IsChoice(t *testing.T) {
	assert.True(t, FieldStage3.IsChoice())
	assert.False(t, FieldStartTime.IsChoice())
	assert.Equal(t, "3. Aşama", FieldStage3.Title())
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr("", ""))
}
