package tagging

import (
	"context"

	"gorm.io/gorm"

	domainerrors "usertags/backend/internal/errors"
	"usertags/backend/internal/models"
)

// CreateTag adds a tag to a group. A second tag with the same text in the
// same group fails with ErrAlreadyExists.
func (s *Service) CreateTag(ctx context.Context, groupID uint, text string) (*models.UserTag, error) {
	tag := models.UserTag{UserTagGroupID: groupID, Text: text}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, translate(err, "creating tag %q in group %d", text, groupID)
	}

	s.log.Debug("tag created", "tag_id", tag.ID, "group_id", groupID)
	return &tag, nil
}

// GetTag loads a tag by id.
func (s *Service) GetTag(ctx context.Context, id uint) (*models.UserTag, error) {
	var tag models.UserTag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, translate(err, "user tag %d", id)
	}
	return &tag, nil
}

// GetOrCreateTag returns the group's tag with this text, creating it if needed.
// A concurrent insert of the same text is resolved by re-reading the winner.
func (s *Service) GetOrCreateTag(ctx context.Context, groupID uint, text string) (*models.UserTag, error) {
	tag, err := s.findTag(ctx, groupID, text)
	if err == nil || !domainerrors.Is(err, domainerrors.ErrNotFound) {
		return tag, err
	}

	tag, err = s.CreateTag(ctx, groupID, text)
	if domainerrors.Is(err, domainerrors.ErrAlreadyExists) {
		return s.findTag(ctx, groupID, text)
	}
	return tag, err
}

func (s *Service) findTag(ctx context.Context, groupID uint, text string) (*models.UserTag, error) {
	var tag models.UserTag
	err := s.db.WithContext(ctx).
		Where("user_tag_group_id = ? AND text = ?", groupID, text).
		First(&tag).Error
	if err != nil {
		return nil, translate(err, "tag %q in group %d", text, groupID)
	}
	return &tag, nil
}

// ListTags returns a group's tags ordered by text.
func (s *Service) ListTags(ctx context.Context, groupID uint) ([]models.UserTag, error) {
	var tags []models.UserTag
	err := s.db.WithContext(ctx).
		Where("user_tag_group_id = ?", groupID).
		Order("text").Order("id").
		Find(&tags).Error
	if err != nil {
		return nil, translate(err, "listing tags of group %d", groupID)
	}
	return tags, nil
}

// RenameTag changes a tag's text in place. Every tagged item linked to the
// tag sees the new text.
func (s *Service) RenameTag(ctx context.Context, id uint, text string) (*models.UserTag, error) {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}

	tag.Text = text
	if err := s.db.WithContext(ctx).Save(tag).Error; err != nil {
		return nil, translate(err, "renaming tag %d to %q", id, text)
	}

	s.log.Debug("tag renamed", "tag_id", id)
	return tag, nil
}

// DeleteTag removes a tag and unlinks it from every tagged item.
func (s *Service) DeleteTag(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.UserTag{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_tag_id = ?", id).Delete(&models.TaggedItemUserTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserTag{}, id).Error
	})
	if err != nil {
		return translate(err, "deleting tag %d", id)
	}

	s.log.Debug("tag deleted", "tag_id", id)
	return nil
}

// ItemsWithTag returns one page (1-based) of the tagged items linked to the
// tag, oldest first, with their tags loaded.
func (s *Service) ItemsWithTag(ctx context.Context, tagID uint, page, limit int) (*Page[models.TaggedItem], error) {
	if _, err := s.GetTag(ctx, tagID); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	linked := db.Model(&models.TaggedItemUserTag{}).Select("tagged_item_id").Where("user_tag_id = ?", tagID)

	query := db.Model(&models.TaggedItem{}).Where("id IN (?)", linked)

	items, err := paginate[models.TaggedItem](query, page, limit, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("ContentType").Preload("UserTags", orderTags).Order("id")
	})
	if err != nil {
		return nil, translate(err, "listing items tagged %d", tagID)
	}
	return items, nil
}
