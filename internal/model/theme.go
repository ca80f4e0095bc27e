package model

import "time"

// Theme is one of the fixed UI color themes.
type Theme struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Main  string `json:"main"`
	Light string `json:"light"`
	Hover string `json:"hover"`
}

var themes = [...]Theme{
	{ID: "indigo", Name: "Indigo", Main: "#4f46e5", Light: "#e0e7ff", Hover: "#4338ca"},
	{ID: "emerald", Name: "Emerald", Main: "#059669", Light: "#d1fae5", Hover: "#047857"},
	{ID: "rose", Name: "Rose", Main: "#e11d48", Light: "#ffe4e6", Hover: "#be123c"},
	{ID: "amber", Name: "Amber", Main: "#d97706", Light: "#fef3c7", Hover: "#b45309"},
	{ID: "violet", Name: "Violet", Main: "#7c3aed", Light: "#ede9fe", Hover: "#6d28d9"},
}

// Themes returns a copy of the theme list; the first one is the default.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes[:])
	return out
}

// LookupTheme finds a theme by id.
func LookupTheme(id string) (Theme, bool) {
	for _, t := range themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// ResolveTheme returns the theme with the given id, or the default theme.
func ResolveTheme(id string) Theme {
	if t, ok := LookupTheme(id); ok {
		return t
	}
	return themes[0]
}

// PreferenceID is the primary key of the single preferences row.
const PreferenceID = 1

// Preference holds the per-user UI flags: the active theme and whether daily
// reminders are on.
type Preference struct {
	ID                   int       `json:"-" gorm:"primaryKey;autoIncrement:false"`
	ThemeID              string    `json:"themeId" gorm:"not null"`
	NotificationsEnabled bool      `json:"notificationsEnabled" gorm:"not null;default:false"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// DefaultPreference is what a fresh install starts with.
func DefaultPreference() Preference {
	return Preference{ID: PreferenceID, ThemeID: themes[0].ID}
}
