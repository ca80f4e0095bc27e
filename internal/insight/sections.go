package insight

import (
	"regexp"
	"strings"
)

var (
	noteMarker  = regexp.MustCompile(`(?i)Lời nhắn\s*:`)
	trendMarker = regexp.MustCompile(`(?i)Xu hướng\s*:`)
)

// Sections is a stored comment split into its trend and note parts.
type Sections struct {
	Trend string `json:"trend"`
	Note  string `json:"note"`
}

// Split separates a comment at its "Lời nhắn:" marker and drops markdown
// bold markers. Without the marker the whole text is the trend.
func Split(text string) Sections {
	cleaned := strings.ReplaceAll(text, "**", "")
	if !noteMarker.MatchString(cleaned) {
		return Sections{Trend: strings.TrimSpace(cleaned)}
	}
	parts := noteMarker.Split(cleaned, 3)
	return Sections{
		Trend: strings.TrimSpace(trendMarker.ReplaceAllLiteralString(parts[0], "")),
		Note:  strings.TrimSpace(parts[1]),
	}
}
