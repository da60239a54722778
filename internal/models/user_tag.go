package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxTextLength bounds UserTag.Text and UserTagGroup.Name.
const MaxTextLength = 256

// UserTag is one tag inside a UserTagGroup. Text is unique within the group,
// so renaming a tag (to fix a typo, say) is seen by every TaggedItem that
// references it.
type UserTag struct {
	ID             uint `gorm:"primarykey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	UserTagGroupID uint   `gorm:"not null;uniqueIndex:idx_user_tag_group_text" validate:"required"`
	Text           string `gorm:"size:256;not null;uniqueIndex:idx_user_tag_group_text" validate:"required,max=256"`

	TaggedItems []TaggedItem `gorm:"many2many:tagged_item_user_tags;" validate:"-"`
}

func (t *UserTag) BeforeSave(*gorm.DB) error {
	return validate.Validate(t)
}
