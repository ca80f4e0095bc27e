package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyLevel_Meta(t *testing.T) {
	levels := EnergyLevels()
	require.Len(t, levels, 5)
	for i, m := range levels {
		assert.Equal(t, EnergyLevel(i+1), m.Level)
		assert.NotEmpty(t, m.Emoji)
		assert.NotEmpty(t, m.Label)
		assert.Regexp(t, `^#[0-9a-f]{6}$`, m.Color)
	}

	assert.Equal(t, "Rực rỡ", EnergyPeak.Label())
	assert.Equal(t, "#fca5a5", EnergyExtremeLow.Color())
	assert.True(t, EnergyNeutral.Valid())
	assert.False(t, EnergyLevel(0).Valid())
	assert.False(t, EnergyLevel(6).Valid())
	assert.Equal(t, "", EnergyLevel(9).Color())
	assert.Equal(t, "EnergyLevel(9)", EnergyLevel(9).String())
}

func TestEnergyLevels_ReturnsCopy(t *testing.T) {
	levels := EnergyLevels()
	levels[0].Label = "changed"
	assert.Equal(t, "Cạn kiệt", EnergyExtremeLow.Label())
}

func TestResolveTheme(t *testing.T) {
	assert.Equal(t, "rose", ResolveTheme("rose").ID)
	assert.Equal(t, "indigo", ResolveTheme("unknown").ID)
	assert.Equal(t, "indigo", ResolveTheme("").ID)

	_, ok := LookupTheme("violet")
	assert.True(t, ok)
	_, ok = LookupTheme("teal")
	assert.False(t, ok)

	ts := Themes()
	ts[0].ID = "x"
	assert.Equal(t, "indigo", Themes()[0].ID)
	assert.Equal(t, "indigo", DefaultPreference().ThemeID)
}

func TestDay_Scan(t *testing.T) {
	var d Day

	require.NoError(t, d.Scan(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Day("2024-05-01"), d)

	require.NoError(t, d.Scan("2024-02-29"))
	assert.Equal(t, Day("2024-02-29"), d)

	require.NoError(t, d.Scan([]byte("2023-12-31")))
	assert.Equal(t, Day("2023-12-31"), d)

	require.NoError(t, d.Scan(nil))
	assert.Equal(t, Day(""), d)

	assert.Error(t, d.Scan(42))
}

func TestDay_Value(t *testing.T) {
	v, err := Day("2024-05-01").Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", v)

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Day("2024-05-01").Time(time.UTC))
	assert.True(t, Day("bad").Time(time.UTC).IsZero())
}

func TestJournalEntry_Helpers(t *testing.T) {
	e := JournalEntry{Date: "2024-05-01"}
	assert.Equal(t, "", e.ImageURL())
	assert.Equal(t, "", e.Insight())

	e.Image = StringPtr("https://cdn/x.jpg")
	e.AIInsight = StringPtr("nice")
	assert.Equal(t, "https://cdn/x.jpg", e.ImageURL())
	assert.Equal(t, "nice", e.Insight())
	assert.Nil(t, StringPtr(""))

	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, Dates([]JournalEntry{e, {Date: "2024-05-02"}}))

	require.NoError(t, e.BeforeCreate(nil))
	assert.Len(t, e.ID, 36)
	id := e.ID
	require.NoError(t, e.BeforeCreate(nil))
	assert.Equal(t, id, e.ID)
	assert.Equal(t, "entries", e.TableName())
}
