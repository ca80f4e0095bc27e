package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aebalz/vibetrack/internal/calendar"
)

// Day is a calendar day in YYYY-MM-DD form. It is stored in a SQL date column
// and normalized on the way out of the driver, whatever shape the driver uses.
type Day string

// Scan implements sql.Scanner.
func (d *Day) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		// date columns come back as midnight in the driver's zone; keep the
		// wall-clock day instead of converting it.
		*d = Day(v.Format(calendar.DayLayout))
	case string:
		*d = Day(calendar.NormalizeDate(v, time.Now()))
	case []byte:
		*d = Day(calendar.NormalizeDate(string(v), time.Now()))
	case nil:
		*d = ""
	default:
		return fmt.Errorf("unsupported Scan, storing driver.Value type %T into type *model.Day", value)
	}
	return nil
}

// Value implements driver.Valuer.
func (d Day) Value() (driver.Value, error) {
	return string(d), nil
}

func (d Day) String() string { return string(d) }

// Time parses d in loc.
func (d Day) Time(loc *time.Location) time.Time {
	return calendar.MustDay(string(d), loc)
}

// JournalEntry is one day's record: energy score, note, optional photo and
// the AI comment generated when it was saved.
type JournalEntry struct {
	ID        string      `json:"id" gorm:"primaryKey;type:uuid"`
	Date      Day         `json:"date" gorm:"type:date;uniqueIndex;not null"`
	Energy    EnergyLevel `json:"energy" gorm:"not null;check:energy >= 1 AND energy <= 5"`
	Content   string      `json:"content" gorm:"type:text;not null"`
	Image     *string     `json:"image,omitempty" gorm:"type:text"`
	AIInsight *string     `json:"aiInsight,omitempty" gorm:"column:ai_insight;type:text"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// TableName pins the table name used by the SQL migrations.
func (JournalEntry) TableName() string {
	return "entries"
}

// BeforeCreate assigns an id to new entries.
func (e *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ImageURL returns the photo URL or "".
func (e JournalEntry) ImageURL() string {
	if e.Image == nil {
		return ""
	}
	return *e.Image
}

// Insight returns the AI comment or "".
func (e JournalEntry) Insight() string {
	if e.AIInsight == nil {
		return ""
	}
	return *e.AIInsight
}

// Dates extracts the day of every entry.
func Dates(entries []JournalEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, string(e.Date))
	}
	return out
}

// StringPtr returns nil for "" and &s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
