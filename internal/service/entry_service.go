package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aebalz/vibetrack/internal/calendar"
	"github.com/aebalz/vibetrack/internal/imaging"
	"github.com/aebalz/vibetrack/internal/insight"
	"github.com/aebalz/vibetrack/internal/model"
	"github.com/aebalz/vibetrack/internal/repository"
	"github.com/aebalz/vibetrack/internal/storage"
)

// historyForInsight is how many previous days the comment prompt sees.
const historyForInsight = 5

// ErrStorageDisabled is returned when a photo is attached but no object
// storage is configured.
var ErrStorageDisabled = errors.New("storage: object storage is not configured")

// SaveInput is one submission of the daily check-in form.
type SaveInput struct {
	// Date is any timestamp-like string; empty means today.
	Date    string
	Energy  model.EnergyLevel `validate:"required,min=1,max=5"`
	Content string            `validate:"required"`
	// Image is the raw photo, nil when none is attached.
	Image io.Reader
}

// EntryServiceInterface defines the journal entry use cases.
type EntryServiceInterface interface {
	List(ctx context.Context) ([]model.JournalEntry, error)
	GetByDate(ctx context.Context, raw string) (*model.JournalEntry, error)
	Save(ctx context.Context, in SaveInput) (*model.JournalEntry, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, format string) ([]byte, string, error)
}

// EntryService implements EntryServiceInterface.
type EntryService struct {
	repo      repository.EntryRepositoryInterface
	uploader  storage.Uploader
	commenter insight.Commenter
	imageOpts imaging.Options
	validate  *validator.Validate
	log       zerolog.Logger
	now       func() time.Time
}

// EntryServiceOption customizes an EntryService.
type EntryServiceOption func(*EntryService)

// WithImageOptions sets the downscale parameters for photos.
func WithImageOptions(opts imaging.Options) EntryServiceOption {
	return func(s *EntryService) { s.imageOpts = opts }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) EntryServiceOption {
	return func(s *EntryService) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) EntryServiceOption {
	return func(s *EntryService) { s.log = log }
}

// NewEntryService creates a new EntryService. uploader may be nil when photos
// are not supported.
func NewEntryService(repo repository.EntryRepositoryInterface, uploader storage.Uploader, commenter insight.Commenter, opts ...EntryServiceOption) *EntryService {
	s := &EntryService{
		repo:      repo,
		uploader:  uploader,
		commenter: commenter,
		validate:  validator.New(),
		log:       zerolog.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all entries, newest first.
func (s *EntryService) List(ctx context.Context) ([]model.JournalEntry, error) {
	return s.repo.List(ctx)
}

// GetByDate returns the entry of the day raw normalizes to.
func (s *EntryService) GetByDate(ctx context.Context, raw string) (*model.JournalEntry, error) {
	return s.repo.GetByDate(ctx, calendar.NormalizeDate(raw, s.now()))
}

// Save records the check-in of a day. The steps run strictly in order:
// photo upload, comment generation, then the database write. A failed upload
// or write aborts the save; a failed comment falls back to a fixed message.
// An uploaded photo is not removed when the write fails.
func (s *EntryService) Save(ctx context.Context, in SaveInput) (*model.JournalEntry, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := s.validate.Struct(in); err != nil {
		return nil, fromValidator(err)
	}

	now := s.now()
	day := calendar.Today(now)
	if strings.TrimSpace(in.Date) != "" {
		day = calendar.DayKey(in.Date, now)
	}

	existing, err := s.repo.GetByDate(ctx, day)
	if err != nil && !errors.Is(err, repository.ErrEntryNotFound) {
		return nil, fmt.Errorf("load entry %s: %w", day, err)
	}

	var image *string
	if existing != nil {
		image = existing.Image
	}
	if in.Image != nil {
		url, err := s.storePhoto(ctx, in.Image, now)
		if err != nil {
			return nil, err
		}
		image = &url
	}

	history, err := s.repo.Recent(ctx, day, historyForInsight)
	if err != nil {
		s.log.Warn().Err(err).Str("date", day).Msg("could not load history for insight")
		history = nil
	}
	comment := s.commenter.Comment(ctx, in.Energy, in.Content, history)

	entry := &model.JournalEntry{
		Date:      model.Day(day),
		Energy:    in.Energy,
		Content:   in.Content,
		Image:     image,
		AIInsight: model.StringPtr(comment),
	}
	saved, err := s.repo.Upsert(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("id", saved.ID).Str("date", day).Int("energy", int(saved.Energy)).
		Bool("image", saved.Image != nil).Msg("entry saved")
	return saved, nil
}

func (s *EntryService) storePhoto(ctx context.Context, r io.Reader, now time.Time) (string, error) {
	if s.uploader == nil {
		return "", ErrStorageDisabled
	}
	res, err := imaging.Downscale(r, s.imageOpts)
	if err != nil {
		return "", err
	}
	key := storage.ObjectName(now, imaging.Extension)
	url, err := s.uploader.Upload(ctx, key, res.Data, res.ContentType)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("key", key).Int("width", res.Width).Int("height", res.Height).
		Int("bytes", len(res.Data)).Msg("photo uploaded")
	return url, nil
}

// Delete removes an entry by id.
func (s *EntryService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return validationError("id is required")
	}
	return s.repo.Delete(ctx, id)
}

// Export renders all entries as csv or json.
func (s *EntryService) Export(ctx context.Context, format string) ([]byte, string, error) {
	return s.repo.Export(ctx, format)
}
