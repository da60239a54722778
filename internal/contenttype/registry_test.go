package contenttype_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"usertags/backend/internal/contenttype"
	domainerrors "usertags/backend/internal/errors"
	"usertags/backend/internal/models"
	"usertags/backend/internal/testutil"
)

type weatherEntry struct {
	ID      uint `gorm:"primarykey"`
	Summary string
}

func (*weatherEntry) ContentTypeName() string { return "WeatherEntry" }
func (w *weatherEntry) TargetID() uint       { return w.ID }

type journalPage struct {
	ID    uint `gorm:"primarykey"`
	Title string
}

func (*journalPage) ContentTypeName() string { return "JournalPage" }
func (p *journalPage) TargetID() uint       { return p.ID }

func newRegistry(t *testing.T) (*contenttype.Registry, *gorm.DB) {
	t.Helper()

	db := testutil.NewDB(t, &weatherEntry{}, &journalPage{})
	r := contenttype.NewRegistry()
	require.NoError(t, contenttype.RegisterModel[weatherEntry](r))
	require.NoError(t, contenttype.RegisterModel[journalPage](r))
	require.NoError(t, r.Sync(context.Background(), db))
	return r, db
}

func TestRegister_Validation(t *testing.T) {
	r := contenttype.NewRegistry()
	noop := func(context.Context, *gorm.DB, uint) (contenttype.Target, error) { return nil, nil }

	err := r.Register("", noop)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	err = r.Register("WeatherEntry", nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	require.NoError(t, r.Register("WeatherEntry", noop))
	err = r.Register("WeatherEntry", noop)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestRegistry_Names(t *testing.T) {
	r, _ := newRegistry(t)

	assert.Equal(t, []string{"JournalPage", "WeatherEntry"}, r.Names())
}

func TestSync_PersistsContentTypes(t *testing.T) {
	r, db := newRegistry(t)

	var rows []models.ContentType
	require.NoError(t, db.Order("name").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "JournalPage", rows[0].Name)
	assert.Equal(t, "WeatherEntry", rows[1].Name)

	id, err := r.ID("WeatherEntry")
	require.NoError(t, err)
	assert.Equal(t, rows[1].ID, id)

	name, err := r.Name(rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "JournalPage", name)
}

func TestSync_ReusesExistingRows(t *testing.T) {
	r, db := newRegistry(t)
	before, err := r.ID("WeatherEntry")
	require.NoError(t, err)

	// A fresh registry over the same database finds the same ids.
	again := contenttype.NewRegistry()
	require.NoError(t, contenttype.RegisterModel[weatherEntry](again))
	require.NoError(t, again.Sync(context.Background(), db))

	after, err := again.ID("WeatherEntry")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	var count int64
	require.NoError(t, db.Model(&models.ContentType{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestID_Errors(t *testing.T) {
	r := contenttype.NewRegistry()
	require.NoError(t, contenttype.RegisterModel[weatherEntry](r))

	_, err := r.ID("WeatherEntry")
	assert.ErrorIs(t, err, domainerrors.ErrValidation, "not synced yet")

	_, err = r.ID("Unknown")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = r.Name(42)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestResolve(t *testing.T) {
	r, db := newRegistry(t)
	ctx := context.Background()

	entry := weatherEntry{Summary: "clear skies"}
	require.NoError(t, db.Create(&entry).Error)
	page := journalPage{Title: "monday"}
	require.NoError(t, db.Create(&page).Error)

	weatherID, err := r.ID("WeatherEntry")
	require.NoError(t, err)
	pageID, err := r.ID("JournalPage")
	require.NoError(t, err)

	got, err := r.Resolve(ctx, db, weatherID, entry.ID)
	require.NoError(t, err)
	resolved, ok := got.(*weatherEntry)
	require.True(t, ok, "got %T", got)
	assert.Equal(t, "clear skies", resolved.Summary)

	got, err = r.Resolve(ctx, db, pageID, page.ID)
	require.NoError(t, err)
	assert.Equal(t, "JournalPage", got.ContentTypeName())
	assert.Equal(t, page.ID, got.TargetID())
}

func TestResolve_Missing(t *testing.T) {
	r, db := newRegistry(t)
	ctx := context.Background()

	weatherID, err := r.ID("WeatherEntry")
	require.NoError(t, err)

	_, err = r.Resolve(ctx, db, weatherID, 404)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.Contains(t, err.Error(), "WeatherEntry 404 not found")

	_, err = r.Resolve(ctx, db, 9999, 1)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestResolve_ResolverFailure(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	r := contenttype.NewRegistry()
	require.NoError(t, r.Register("Broken", func(context.Context, *gorm.DB, uint) (contenttype.Target, error) {
		return nil, fmt.Errorf("backend unavailable")
	}))
	require.NoError(t, r.Sync(ctx, db))

	id, err := r.ID("Broken")
	require.NoError(t, err)

	_, err = r.Resolve(ctx, db, id, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInternal)
	assert.Contains(t, err.Error(), "backend unavailable")
}
