package tagging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"usertags/backend/internal/contenttype"
	"usertags/backend/internal/logger"
	"usertags/backend/internal/models"
	"usertags/backend/internal/tagging"
	"usertags/backend/internal/testutil"
)

type weatherEntry struct {
	ID      uint `gorm:"primarykey"`
	Summary string
}

func (*weatherEntry) ContentTypeName() string { return "WeatherEntry" }
func (w *weatherEntry) TargetID() uint       { return w.ID }

type photo struct {
	ID      uint `gorm:"primarykey"`
	Caption string
}

func (*photo) ContentTypeName() string { return "Photo" }
func (p *photo) TargetID() uint       { return p.ID }

// unregistered is taggable in shape but never registered.
type unregistered struct{ ID uint }

func (unregistered) ContentTypeName() string { return "Unregistered" }
func (u unregistered) TargetID() uint        { return u.ID }

// unsaved stands for a registered record whose id is zero.
type unsaved struct{}

func (unsaved) ContentTypeName() string { return "WeatherEntry" }
func (unsaved) TargetID() uint          { return 0 }

type fixture struct {
	ctx context.Context
	db  *gorm.DB
	svc *tagging.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := context.Background()
	db := testutil.NewDB(t, &weatherEntry{}, &photo{})

	registry := contenttype.NewRegistry()
	require.NoError(t, contenttype.RegisterModel[weatherEntry](registry))
	require.NoError(t, contenttype.RegisterModel[photo](registry))
	require.NoError(t, registry.Sync(ctx, db))

	return &fixture{
		ctx: ctx,
		db:  db,
		svc: tagging.NewService(db, registry, logger.Discard()),
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := models.User{Username: name}
	require.NoError(t, f.db.Create(&u).Error)
	return &u
}

func (f *fixture) group(t *testing.T, userID uint, name string) *models.UserTagGroup {
	t.Helper()
	g, err := f.svc.CreateGroup(f.ctx, userID, name)
	require.NoError(t, err)
	return g
}

func (f *fixture) tag(t *testing.T, groupID uint, text string) *models.UserTag {
	t.Helper()
	tag, err := f.svc.CreateTag(f.ctx, groupID, text)
	require.NoError(t, err)
	return tag
}

func (f *fixture) weather(t *testing.T, summary string) *weatherEntry {
	t.Helper()
	e := weatherEntry{Summary: summary}
	require.NoError(t, f.db.Create(&e).Error)
	return &e
}

func tagTexts(item *models.TaggedItem) []string {
	texts := make([]string, 0, len(item.UserTags))
	for _, tag := range item.UserTags {
		texts = append(texts, tag.Text)
	}
	return texts
}
