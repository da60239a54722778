// Package tagging is the entry point host code uses to manage tag groups,
// tags and tagged items.
//
// Typical flow: look up or create a UserTagGroup for a user, look up or create
// UserTags in it, then tag a host record with them:
//
//	group, _ := svc.GetOrCreateGroup(ctx, userID, "weather")
//	sunny, _ := svc.GetOrCreateTag(ctx, group.ID, "sunny")
//	item, _ := svc.CreateTaggedItem(ctx, entry, sunny.ID)
//
// Uniqueness and reference integrity are enforced by the database; the
// service translates those failures into domain errors.
package tagging

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"usertags/backend/internal/contenttype"
	"usertags/backend/internal/database"
	domainerrors "usertags/backend/internal/errors"
)

// Service manages tag groups, tags and tagged items.
type Service struct {
	db       *gorm.DB
	registry *contenttype.Registry
	log      *slog.Logger
}

// NewService creates a Service. The registry must already be synced.
func NewService(db *gorm.DB, registry *contenttype.Registry, log *slog.Logger) *Service {
	return &Service{
		db:       db,
		registry: registry,
		log:      log.With("component", "tagging"),
	}
}

// translate maps storage failures onto domain errors. Domain errors pass
// through; failures with no domain meaning become ErrInternal wrapping the
// driver error.
func translate(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var domainErr *domainerrors.Error
	switch {
	case domainerrors.As(err, &domainErr):
		return err
	case domainerrors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.NotFoundf("%s: not found", msg)
	case database.IsUniqueViolation(err):
		return domainerrors.Wrap(err, domainerrors.CodeAlreadyExists, msg)
	case database.IsForeignKeyViolation(err):
		return domainerrors.Wrap(err, domainerrors.CodeValidation, msg+": referenced record does not exist")
	default:
		return domainerrors.ErrInternal.WithCause(fmt.Errorf("%s: %w", msg, err))
	}
}

// uniqueIDs drops zero and repeated ids, keeping first-seen order.
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
