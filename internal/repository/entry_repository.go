package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aebalz/vibetrack/internal/model"
)

// ErrEntryNotFound is returned when no entry matches the id or date.
var ErrEntryNotFound = errors.New("entry not found")

// EntryRepositoryInterface defines the interface for journal entry persistence.
type EntryRepositoryInterface interface {
	List(ctx context.Context) ([]model.JournalEntry, error)
	ListRange(ctx context.Context, from, to string) ([]model.JournalEntry, error)
	Recent(ctx context.Context, before string, limit int) ([]model.JournalEntry, error)
	GetByID(ctx context.Context, id string) (*model.JournalEntry, error)
	GetByDate(ctx context.Context, day string) (*model.JournalEntry, error)
	Upsert(ctx context.Context, entry *model.JournalEntry) (*model.JournalEntry, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, format string) ([]byte, string, error)
}

// EntryRepository implements EntryRepositoryInterface on gorm.
type EntryRepository struct {
	DB *gorm.DB
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{DB: db}
}

// List returns every entry, newest day first.
func (r *EntryRepository) List(ctx context.Context) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	if err := r.DB.WithContext(ctx).Order("date DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// ListRange returns entries whose day is within [from, to], oldest first.
func (r *EntryRepository) ListRange(ctx context.Context, from, to string) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	err := r.DB.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list entries %s..%s: %w", from, to, err)
	}
	return entries, nil
}

// Recent returns up to limit entries strictly before the given day, newest
// first. An empty before means no upper bound.
func (r *EntryRepository) Recent(ctx context.Context, before string, limit int) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	query := r.DB.WithContext(ctx).Order("date DESC")
	if before != "" {
		query = query.Where("date < ?", before)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("recent entries: %w", err)
	}
	return entries, nil
}

// GetByID retrieves a single entry by its id.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*model.JournalEntry, error) {
	var entry model.JournalEntry
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// GetByDate retrieves the entry of a calendar day.
func (r *EntryRepository) GetByDate(ctx context.Context, day string) (*model.JournalEntry, error) {
	var entry model.JournalEntry
	if err := r.DB.WithContext(ctx).Where("date = ?", day).First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// Upsert stores entry as the record of its day. An existing row for the same
// day is updated in place and keeps its id and creation time. The conflict is
// resolved by the unique index on date, so concurrent saves of one day do not
// race.
func (r *EntryRepository) Upsert(ctx context.Context, entry *model.JournalEntry) (*model.JournalEntry, error) {
	db := r.DB.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"energy", "content", "image", "ai_insight", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return nil, fmt.Errorf("save entry: %w", err)
	}

	var stored model.JournalEntry
	if err := db.Where("date = ?", entry.Date).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("reload entry %s: %w", entry.Date, err)
	}
	return &stored, nil
}

// Delete removes an entry permanently.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.JournalEntry{})
	if result.Error != nil {
		return fmt.Errorf("delete entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Export renders every entry, oldest first, as CSV or JSON.
func (r *EntryRepository) Export(ctx context.Context, format string) ([]byte, string, error) {
	var entries []model.JournalEntry
	if err := r.DB.WithContext(ctx).Order("date ASC").Find(&entries).Error; err != nil {
		return nil, "", fmt.Errorf("export entries: %w", err)
	}
	return EncodeEntries(entries, format)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEntryNotFound
	}
	return err
}
