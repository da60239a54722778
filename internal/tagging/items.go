package tagging

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"usertags/backend/internal/contenttype"
	domainerrors "usertags/backend/internal/errors"
	"usertags/backend/internal/models"
)

var errTargetRequired = domainerrors.Validationf("target is required")

func orderTags(db *gorm.DB) *gorm.DB {
	return db.Order("user_tags.text").Order("user_tags.id")
}

// CreateTaggedItem records that target carries the given tags. Tags may come
// from any group. Repeated tag ids are linked once.
//
// Each call creates a new item, even when target is already tagged; use
// ItemsForTarget first to extend an existing one.
func (s *Service) CreateTaggedItem(ctx context.Context, target contenttype.Target, tagIDs ...uint) (*models.TaggedItem, error) {
	if target == nil {
		return nil, errTargetRequired
	}

	contentTypeID, err := s.registry.ID(target.ContentTypeName())
	if err != nil {
		return nil, err
	}

	item := models.TaggedItem{ContentTypeID: contentTypeID, ObjectID: target.TargetID()}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
			return err
		}
		return linkTags(tx, item.ID, tagIDs)
	})
	if err != nil {
		return nil, translate(err, "tagging %s %d", target.ContentTypeName(), target.TargetID())
	}

	s.log.Debug("item tagged",
		"item_id", item.ID,
		"content_type", target.ContentTypeName(),
		"object_id", target.TargetID(),
		"tags", len(tagIDs),
	)
	return s.GetTaggedItem(ctx, item.ID)
}

// GetTaggedItem loads an item with its tags ordered by text.
func (s *Service) GetTaggedItem(ctx context.Context, id uint) (*models.TaggedItem, error) {
	var item models.TaggedItem
	err := s.db.WithContext(ctx).
		Preload("ContentType").
		Preload("UserTags", orderTags).
		First(&item, id).Error
	if err != nil {
		return nil, translate(err, "tagged item %d", id)
	}
	return &item, nil
}

// ItemsForTarget returns every tagged item pointing at target, oldest first.
func (s *Service) ItemsForTarget(ctx context.Context, target contenttype.Target) ([]models.TaggedItem, error) {
	if target == nil {
		return nil, errTargetRequired
	}

	contentTypeID, err := s.registry.ID(target.ContentTypeName())
	if err != nil {
		return nil, err
	}

	var items []models.TaggedItem
	err = s.db.WithContext(ctx).
		Where("content_type_id = ? AND object_id = ?", contentTypeID, target.TargetID()).
		Preload("ContentType").
		Preload("UserTags", orderTags).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "listing items for %s %d", target.ContentTypeName(), target.TargetID())
	}
	return items, nil
}

// AddTags links more tags to an item. Tags already linked are left alone.
func (s *Service) AddTags(ctx context.Context, itemID uint, tagIDs ...uint) (*models.TaggedItem, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.TaggedItem{}, itemID).Error; err != nil {
			return err
		}
		return linkTags(tx, itemID, tagIDs)
	})
	if err != nil {
		return nil, translate(err, "adding tags to item %d", itemID)
	}
	return s.GetTaggedItem(ctx, itemID)
}

// RemoveTags unlinks tags from an item. Ids that are not linked are ignored.
func (s *Service) RemoveTags(ctx context.Context, itemID uint, tagIDs ...uint) (*models.TaggedItem, error) {
	ids := uniqueIDs(tagIDs)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.TaggedItem{}, itemID).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Where("tagged_item_id = ? AND user_tag_id IN ?", itemID, ids).
			Delete(&models.TaggedItemUserTag{}).Error
	})
	if err != nil {
		return nil, translate(err, "removing tags from item %d", itemID)
	}
	return s.GetTaggedItem(ctx, itemID)
}

// SetTags replaces an item's tags with exactly tagIDs.
func (s *Service) SetTags(ctx context.Context, itemID uint, tagIDs ...uint) (*models.TaggedItem, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.TaggedItem{}, itemID).Error; err != nil {
			return err
		}
		if err := tx.Where("tagged_item_id = ?", itemID).Delete(&models.TaggedItemUserTag{}).Error; err != nil {
			return err
		}
		return linkTags(tx, itemID, tagIDs)
	})
	if err != nil {
		return nil, translate(err, "setting tags of item %d", itemID)
	}
	return s.GetTaggedItem(ctx, itemID)
}

// DeleteTaggedItem removes an item and its tag links. Tags are untouched.
func (s *Service) DeleteTaggedItem(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.TaggedItem{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("tagged_item_id = ?", id).Delete(&models.TaggedItemUserTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TaggedItem{}, id).Error
	})
	if err != nil {
		return translate(err, "deleting tagged item %d", id)
	}

	s.log.Debug("tagged item deleted", "item_id", id)
	return nil
}

// ContentObject loads the host record an item points at.
func (s *Service) ContentObject(ctx context.Context, item *models.TaggedItem) (contenttype.Target, error) {
	return s.registry.Resolve(ctx, s.db, item.ContentTypeID, item.ObjectID)
}

// linkTags inserts join rows for tagIDs, skipping ones already present.
// Every id must name an existing tag.
func linkTags(tx *gorm.DB, itemID uint, tagIDs []uint) error {
	ids := uniqueIDs(tagIDs)
	if len(ids) == 0 {
		return nil
	}

	var found int64
	if err := tx.Model(&models.UserTag{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
		return err
	}
	if int(found) != len(ids) {
		return domainerrors.NotFoundf("one or more of user tags %v not found", ids)
	}

	rows := make([]models.TaggedItemUserTag, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, models.TaggedItemUserTag{TaggedItemID: itemID, UserTagID: id})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&rows).Error
}
