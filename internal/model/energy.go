package model

import "fmt"

// EnergyLevel is the daily energy score, 1 (drained) to 5 (peak).
type EnergyLevel int

const (
	EnergyExtremeLow EnergyLevel = iota + 1
	EnergyLow
	EnergyNeutral
	EnergyHigh
	EnergyPeak
)

// EnergyMeta is the fixed display metadata of one energy level.
type EnergyMeta struct {
	Level EnergyLevel `json:"level"`
	Emoji string      `json:"emoji"`
	Label string      `json:"label"`
	Color string      `json:"color"`
}

// energyTable is indexed by level; slot 0 is unused.
var energyTable = [...]EnergyMeta{
	{},
	{Level: EnergyExtremeLow, Emoji: "😴", Label: "Cạn kiệt", Color: "#fca5a5"},
	{Level: EnergyLow, Emoji: "🥱", Label: "Hơi mệt", Color: "#fcd34d"},
	{Level: EnergyNeutral, Emoji: "😐", Label: "Bình thường", Color: "#93c5fd"},
	{Level: EnergyHigh, Emoji: "😊", Label: "Tốt nè", Color: "#86efac"},
	{Level: EnergyPeak, Emoji: "🔥", Label: "Rực rỡ", Color: "#f9a8d4"},
}

// EmptyColor is used for days without an entry.
const EmptyColor = "#f1f5f9"

// Valid reports whether e is one of the five defined levels.
func (e EnergyLevel) Valid() bool {
	return e >= EnergyExtremeLow && e <= EnergyPeak
}

// Meta returns the display metadata for e. Invalid levels return an empty
// record carrying only the level.
func (e EnergyLevel) Meta() EnergyMeta {
	if !e.Valid() {
		return EnergyMeta{Level: e}
	}
	return energyTable[e]
}

func (e EnergyLevel) Label() string { return e.Meta().Label }
func (e EnergyLevel) Color() string { return e.Meta().Color }

func (e EnergyLevel) String() string {
	if !e.Valid() {
		return fmt.Sprintf("EnergyLevel(%d)", int(e))
	}
	return e.Meta().Label
}

// EnergyLevels lists the metadata of every level in ascending order.
func EnergyLevels() []EnergyMeta {
	out := make([]EnergyMeta, 0, len(energyTable)-1)
	out = append(out, energyTable[1:]...)
	return out
}
