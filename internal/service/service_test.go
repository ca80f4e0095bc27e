package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/vibetrack/internal/analytics"
	"github.com/aebalz/vibetrack/internal/imaging"
	"github.com/aebalz/vibetrack/internal/model"
	"github.com/aebalz/vibetrack/internal/repository"
)

// fakeEntryRepo keeps entries in memory and records the calls it receives.
type fakeEntryRepo struct {
	byDate    map[string]model.JournalEntry
	calls     *[]string
	upsertErr error
	listErr   error
}

func newFakeEntryRepo(calls *[]string, entries ...model.JournalEntry) *fakeEntryRepo {
	r := &fakeEntryRepo{byDate: map[string]model.JournalEntry{}, calls: calls}
	for _, e := range entries {
		r.byDate[string(e.Date)] = e
	}
	return r
}

func (r *fakeEntryRepo) record(call string) {
	if r.calls != nil {
		*r.calls = append(*r.calls, call)
	}
}

func (r *fakeEntryRepo) sorted(desc bool) []model.JournalEntry {
	out := make([]model.JournalEntry, 0, len(r.byDate))
	for _, e := range r.byDate {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].Date > out[j].Date
		}
		return out[i].Date < out[j].Date
	})
	return out
}

func (r *fakeEntryRepo) List(context.Context) ([]model.JournalEntry, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sorted(true), nil
}

func (r *fakeEntryRepo) ListRange(_ context.Context, from, to string) ([]model.JournalEntry, error) {
	r.record("range " + from + " " + to)
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []model.JournalEntry
	for _, e := range r.sorted(false) {
		if string(e.Date) >= from && string(e.Date) <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) Recent(_ context.Context, before string, limit int) ([]model.JournalEntry, error) {
	r.record("recent")
	var out []model.JournalEntry
	for _, e := range r.sorted(true) {
		if string(e.Date) < before && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) GetByID(_ context.Context, id string) (*model.JournalEntry, error) {
	for _, e := range r.byDate {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, repository.ErrEntryNotFound
}

func (r *fakeEntryRepo) GetByDate(_ context.Context, day string) (*model.JournalEntry, error) {
	r.record("get " + day)
	if e, ok := r.byDate[day]; ok {
		return &e, nil
	}
	return nil, repository.ErrEntryNotFound
}

func (r *fakeEntryRepo) Upsert(_ context.Context, e *model.JournalEntry) (*model.JournalEntry, error) {
	r.record("upsert")
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	if old, ok := r.byDate[string(e.Date)]; ok {
		e.ID = old.ID
	} else if e.ID == "" {
		e.ID = "id-" + string(e.Date)
	}
	r.byDate[string(e.Date)] = *e
	return e, nil
}

func (r *fakeEntryRepo) Delete(_ context.Context, id string) error {
	for d, e := range r.byDate {
		if e.ID == id {
			delete(r.byDate, d)
			return nil
		}
	}
	return repository.ErrEntryNotFound
}

func (r *fakeEntryRepo) Export(_ context.Context, format string) ([]byte, string, error) {
	return repository.EncodeEntries(r.sorted(false), format)
}

type fakeUploader struct {
	calls *[]string
	keys  []string
	err   error
}

func (u *fakeUploader) Upload(_ context.Context, key string, data []byte, contentType string) (string, error) {
	*u.calls = append(*u.calls, "upload "+contentType)
	if u.err != nil {
		return "", u.err
	}
	u.keys = append(u.keys, key)
	return "https://cdn.test/vibes/" + key, nil
}

type fakeCommenter struct {
	calls   *[]string
	history []model.JournalEntry
}

func (c *fakeCommenter) Comment(_ context.Context, energy model.EnergyLevel, note string, history []model.JournalEntry) string {
	*c.calls = append(*c.calls, "insight")
	c.history = history
	return "nice " + note
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

var fixedNow = time.Date(2024, 5, 10, 21, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newEntryService(calls *[]string, repo *fakeEntryRepo, up *fakeUploader) (*EntryService, *fakeCommenter) {
	c := &fakeCommenter{calls: calls}
	var uploader interface {
		Upload(context.Context, string, []byte, string) (string, error)
	}
	if up != nil {
		uploader = up
	}
	return NewEntryService(repo, uploader, c, WithClock(clock)), c
}

func TestSave_OrderUploadInsightUpsert(t *testing.T) {
	var calls []string
	repo := newFakeEntryRepo(&calls)
	up := &fakeUploader{calls: &calls}
	svc, _ := newEntryService(&calls, repo, up)

	saved, err := svc.Save(context.Background(), SaveInput{
		Energy:  model.EnergyHigh,
		Content: "  chạy bộ  ",
		Image:   bytes.NewReader(pngBytes(t, 2000, 1000)),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"get 2024-05-10", "upload image/jpeg", "recent", "insight", "upsert"}, calls)
	assert.Equal(t, model.Day("2024-05-10"), saved.Date)
	assert.Equal(t, "chạy bộ", saved.Content)
	assert.Equal(t, "nice chạy bộ", saved.Insight())
	require.Len(t, up.keys, 1)
	assert.True(t, strings.HasPrefix(up.keys[0], "1715376600000-"))
	assert.True(t, strings.HasSuffix(up.keys[0], "."+imaging.Extension))
	assert.Equal(t, "https://cdn.test/vibes/"+up.keys[0], saved.ImageURL())
}

func TestSave_UploadFailureAborts(t *testing.T) {
	var calls []string
	repo := newFakeEntryRepo(&calls)
	boom := errors.New("bucket missing")
	svc, _ := newEntryService(&calls, repo, &fakeUploader{calls: &calls, err: boom})

	_, err := svc.Save(context.Background(), SaveInput{
		Energy:  model.EnergyLow,
		Content: "x",
		Image:   bytes.NewReader(pngBytes(t, 10, 10)),
	})
	assert.ErrorIs(t, err, boom)
	assert.NotContains(t, calls, "insight")
	assert.NotContains(t, calls, "upsert")
	assert.Empty(t, repo.byDate)
}

func TestSave_UndecodableImage(t *testing.T) {
	var calls []string
	svc, _ := newEntryService(&calls, newFakeEntryRepo(&calls), &fakeUploader{calls: &calls})

	_, err := svc.Save(context.Background(), SaveInput{
		Energy:  model.EnergyLow,
		Content: "x",
		Image:   strings.NewReader("not an image"),
	})
	assert.ErrorIs(t, err, imaging.ErrDecode)
	assert.NotContains(t, calls, "upload image/jpeg")
}

func TestSave_NoStorageConfigured(t *testing.T) {
	var calls []string
	svc, _ := newEntryService(&calls, newFakeEntryRepo(&calls), nil)

	_, err := svc.Save(context.Background(), SaveInput{
		Energy:  model.EnergyLow,
		Content: "x",
		Image:   bytes.NewReader(pngBytes(t, 10, 10)),
	})
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestSave_UpsertFailure(t *testing.T) {
	var calls []string
	repo := newFakeEntryRepo(&calls)
	repo.upsertErr = errors.New("save entry: connection refused")
	svc, _ := newEntryService(&calls, repo, nil)

	_, err := svc.Save(context.Background(), SaveInput{Energy: model.EnergyLow, Content: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, []string{"get 2024-05-10", "recent", "insight", "upsert"}, calls)
}

func TestSave_Validation(t *testing.T) {
	var calls []string
	svc, _ := newEntryService(&calls, newFakeEntryRepo(&calls), nil)

	tests := []struct {
		name string
		in   SaveInput
		msg  string
	}{
		{"blank content", SaveInput{Energy: model.EnergyHigh, Content: "   "}, "content is required"},
		{"missing energy", SaveInput{Content: "x"}, "energy is required"},
		{"energy too high", SaveInput{Energy: 6, Content: "x"}, "energy must be between 1 and 5"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), tc.in)
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
	assert.Empty(t, calls)
}

func TestSave_UpdatesExistingDayAndKeepsPhoto(t *testing.T) {
	var calls []string
	photo := "https://cdn.test/vibes/old.jpg"
	repo := newFakeEntryRepo(&calls,
		model.JournalEntry{ID: "e1", Date: "2024-05-08", Energy: model.EnergyLow, Content: "old", Image: &photo},
		model.JournalEntry{ID: "e0", Date: "2024-05-07", Energy: model.EnergyNeutral, Content: "older"},
		model.JournalEntry{ID: "e2", Date: "2024-05-09", Energy: model.EnergyPeak, Content: "later"},
	)
	svc, commenter := newEntryService(&calls, repo, nil)

	saved, err := svc.Save(context.Background(), SaveInput{
		Date:    "2024-05-08T23:59:00+07:00",
		Energy:  model.EnergyHigh,
		Content: "updated",
	})
	require.NoError(t, err)

	assert.Equal(t, "e1", saved.ID)
	assert.Equal(t, model.Day("2024-05-08"), saved.Date)
	assert.Equal(t, photo, saved.ImageURL())
	assert.Len(t, repo.byDate, 3)
	// Only days before the saved one are given as history.
	assert.Equal(t, []string{"2024-05-07"}, model.Dates(commenter.history))
}

func TestEntryService_GetDeleteExport(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEntryRepo(nil, model.JournalEntry{ID: "e1", Date: "2024-05-10", Energy: model.EnergyHigh, Content: "a"})
	svc := NewEntryService(repo, nil, nil, WithClock(clock))

	got, err := svc.GetByDate(ctx, "2024-05-10T08:00:00")
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)

	data, ct, err := svc.Export(ctx, "json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", ct)
	assert.Contains(t, string(data), `"date":"2024-05-10"`)

	assert.ErrorIs(t, svc.Delete(ctx, " "), ErrValidation)
	require.NoError(t, svc.Delete(ctx, "e1"))
	assert.ErrorIs(t, svc.Delete(ctx, "e1"), repository.ErrEntryNotFound)
}

func TestAnalyticsService(t *testing.T) {
	ctx := context.Background()
	var calls []string
	repo := newFakeEntryRepo(&calls,
		model.JournalEntry{ID: "a", Date: "2024-05-10", Energy: model.EnergyPeak},
		model.JournalEntry{ID: "b", Date: "2024-05-09", Energy: model.EnergyLow},
		model.JournalEntry{ID: "c", Date: "2024-04-30", Energy: model.EnergyHigh},
	)
	svc := NewAnalyticsService(repo, clock)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 3, stats.TotalEntries)

	hm, err := svc.Heatmap(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, hm.Year)
	assert.Contains(t, calls, "range 2024-01-01 2024-12-31")

	_, err = svc.Heatmap(ctx, -1)
	assert.ErrorIs(t, err, ErrValidation)

	// 2024-05-10 is a Friday; the week starts on Monday 05-06.
	tr, err := svc.Trend(ctx, "", "", 0)
	require.NoError(t, err)
	assert.Equal(t, analytics.Week, tr.Timeframe)
	assert.Contains(t, calls, "range 2024-05-06 2024-05-12")
	assert.InDelta(t, 3.5, tr.Average, 1e-9)

	// One week back covers 04-29..05-05.
	tr, err = svc.Trend(ctx, "week", "2024-05-10", -1)
	require.NoError(t, err)
	assert.Contains(t, calls, "range 2024-04-29 2024-05-05")
	assert.InDelta(t, 4.0, tr.Average, 1e-9)

	tr, err = svc.Trend(ctx, "month", "2024-02-15", 0)
	require.NoError(t, err)
	assert.Len(t, tr.Buckets, 29)
	assert.Contains(t, calls, "range 2024-02-01 2024-02-29")

	_, err = svc.Trend(ctx, "year", "", 0)
	require.NoError(t, err)
	assert.Contains(t, calls, "range 2024-01-01 2024-12-31")

	_, err = svc.Trend(ctx, "decade", "", 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Trend(ctx, "week", "yesterday-ish", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAnalyticsService_LoadError(t *testing.T) {
	repo := newFakeEntryRepo(nil)
	repo.listErr = errors.New("db down")
	svc := NewAnalyticsService(repo, clock)

	_, err := svc.Stats(context.Background())
	assert.EqualError(t, err, "db down")
}

type memPrefRepo struct {
	pref  *model.Preference
	saves int
}

func (m *memPrefRepo) Get(context.Context) (model.Preference, error) {
	if m.pref == nil {
		return model.DefaultPreference(), nil
	}
	return *m.pref, nil
}

func (m *memPrefRepo) Save(_ context.Context, p model.Preference) (model.Preference, error) {
	m.saves++
	m.pref = &p
	return p, nil
}

func TestPreferenceService(t *testing.T) {
	ctx := context.Background()
	repo := &memPrefRepo{}
	svc := NewPreferenceService(repo)

	p, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "indigo", p.ThemeID)

	rose, on := "rose", true
	p, err = svc.Update(ctx, PreferenceInput{ThemeID: &rose, NotificationsEnabled: &on})
	require.NoError(t, err)
	assert.Equal(t, "rose", p.ThemeID)
	assert.True(t, p.NotificationsEnabled)

	// Partial update keeps the theme.
	off := false
	p, err = svc.Update(ctx, PreferenceInput{NotificationsEnabled: &off})
	require.NoError(t, err)
	assert.Equal(t, "rose", p.ThemeID)
	assert.False(t, p.NotificationsEnabled)

	bogus := "sepia"
	_, err = svc.Update(ctx, PreferenceInput{ThemeID: &bogus})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 2, repo.saves)

	// A stale stored theme resolves to the first one.
	repo.pref = &model.Preference{ID: 1, ThemeID: "removed"}
	p, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "indigo", p.ThemeID)
}
