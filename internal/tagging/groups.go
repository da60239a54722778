package tagging

import (
	"context"

	"gorm.io/gorm"

	domainerrors "usertags/backend/internal/errors"
	"usertags/backend/internal/models"
)

// CreateGroup creates a tag group owned by userID. Group names need not be
// unique per user.
func (s *Service) CreateGroup(ctx context.Context, userID uint, name string) (*models.UserTagGroup, error) {
	group := models.UserTagGroup{UserID: userID, Name: name}
	if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
		return nil, translate(err, "creating tag group %q for user %d", name, userID)
	}

	s.log.Debug("tag group created", "group_id", group.ID, "user_id", userID)
	return &group, nil
}

// GetGroup loads a tag group by id.
func (s *Service) GetGroup(ctx context.Context, id uint) (*models.UserTagGroup, error) {
	var group models.UserTagGroup
	if err := s.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, translate(err, "tag group %d", id)
	}
	return &group, nil
}

// GetOrCreateGroup returns the user's oldest group called name, creating one
// if there is none.
func (s *Service) GetOrCreateGroup(ctx context.Context, userID uint, name string) (*models.UserTagGroup, error) {
	var group models.UserTagGroup
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Order("id").
		First(&group).Error
	if err == nil {
		return &group, nil
	}
	if !domainerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, translate(err, "looking up tag group %q for user %d", name, userID)
	}
	return s.CreateGroup(ctx, userID, name)
}

// ListGroups returns the user's groups in creation order.
func (s *Service) ListGroups(ctx context.Context, userID uint) ([]models.UserTagGroup, error) {
	var groups []models.UserTagGroup
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&groups).Error; err != nil {
		return nil, translate(err, "listing tag groups for user %d", userID)
	}
	return groups, nil
}

// RenameGroup changes a group's name.
func (s *Service) RenameGroup(ctx context.Context, id uint, name string) (*models.UserTagGroup, error) {
	group, err := s.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	group.Name = name
	if err := s.db.WithContext(ctx).Save(group).Error; err != nil {
		return nil, translate(err, "renaming tag group %d", id)
	}

	s.log.Debug("tag group renamed", "group_id", id)
	return group, nil
}

// DeleteGroup removes a group together with its tags and their links to
// tagged items. The tagged items themselves are kept.
func (s *Service) DeleteGroup(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.UserTagGroup{}, id).Error; err != nil {
			return err
		}

		tagIDs := tx.Model(&models.UserTag{}).Select("id").Where("user_tag_group_id = ?", id)
		if err := tx.Where("user_tag_id IN (?)", tagIDs).Delete(&models.TaggedItemUserTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_tag_group_id = ?", id).Delete(&models.UserTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserTagGroup{}, id).Error
	})
	if err != nil {
		return translate(err, "deleting tag group %d", id)
	}

	s.log.Debug("tag group deleted", "group_id", id)
	return nil
}
