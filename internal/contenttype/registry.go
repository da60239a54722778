// Package contenttype resolves the generic (content type, object id) reference
// stored on a TaggedItem back to the host record it points at.
//
// The set of taggable kinds is fixed at start-up: the host registers one
// Resolver per kind, calls Sync once to persist the content_types rows, and
// then passes the Registry to whatever needs to resolve targets.
package contenttype

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainerrors "usertags/backend/internal/errors"
	"usertags/backend/internal/models"
)

// Target is a record that can be tagged.
type Target interface {
	ContentTypeName() string
	TargetID() uint
}

// Resolver loads the record of one content type by id.
type Resolver func(ctx context.Context, db *gorm.DB, id uint) (Target, error)

// Registry maps content type names to resolvers and to their content_types ids.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[string]Resolver
	ids       map[string]uint
	names     map[uint]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		resolvers: make(map[string]Resolver),
		ids:       make(map[string]uint),
		names:     make(map[uint]string),
	}
}

// Register adds a content type. Names are unique.
func (r *Registry) Register(name string, fn Resolver) error {
	if name == "" {
		return domainerrors.Validationf("content type name is required")
	}
	if fn == nil {
		return domainerrors.Validationf("content type %q: resolver is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.resolvers[name]; ok {
		return domainerrors.AlreadyExistsf("content type %q already registered", name)
	}
	r.resolvers[name] = fn
	return nil
}

// RegisterModel registers a gorm model as a content type, named by its
// ContentTypeName and loaded by primary key.
func RegisterModel[T any, P interface {
	*T
	Target
}](r *Registry) error {
	name := P(new(T)).ContentTypeName()
	return r.Register(name, func(ctx context.Context, db *gorm.DB, id uint) (Target, error) {
		rec := P(new(T))
		if err := db.WithContext(ctx).First(rec, id).Error; err != nil {
			return nil, err
		}
		return rec, nil
	})
}

// Names returns the registered content type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.resolvers))
	for name := range r.resolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sync makes sure every registered name has a content_types row and caches
// the row ids. Safe to call again after more registrations.
func (r *Registry) Sync(ctx context.Context, db *gorm.DB) error {
	names := r.Names()

	ids := make(map[string]uint, len(names))
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			ct := models.ContentType{Name: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ct).Error; err != nil {
				return fmt.Errorf("creating content type %q: %w", name, err)
			}
			var row models.ContentType
			if err := tx.Where("name = ?", name).First(&row).Error; err != nil {
				return fmt.Errorf("loading content type %q: %w", name, err)
			}
			ids[name] = row.ID
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, id := range ids {
		r.ids[name] = id
		r.names[id] = name
	}
	return nil
}

// ID returns the content_types id for name.
func (r *Registry) ID(name string) (uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.resolvers[name]; !ok {
		return 0, domainerrors.NotFoundf("content type %q is not registered", name)
	}
	id, ok := r.ids[name]
	if !ok {
		return 0, domainerrors.Validationf("content type %q has not been synced", name)
	}
	return id, nil
}

// Name returns the content type name stored under id.
func (r *Registry) Name(id uint) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.names[id]
	if !ok {
		return "", domainerrors.NotFoundf("content type %d is not registered", id)
	}
	return name, nil
}

// Resolve loads the record a (content type id, object id) pair points at.
func (r *Registry) Resolve(ctx context.Context, db *gorm.DB, contentTypeID, objectID uint) (Target, error) {
	name, err := r.Name(contentTypeID)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	fn := r.resolvers[name]
	r.mu.RUnlock()

	target, err := fn(ctx, db, objectID)
	if err != nil {
		if domainerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NotFoundf("%s %d not found", name, objectID)
		}
		return nil, domainerrors.ErrInternal.WithCause(fmt.Errorf("resolving %s %d: %w", name, objectID, err))
	}
	return target, nil
}
