package models

import (
	"time"

	"gorm.io/gorm"
)

// TaggedItem links a set of UserTags to one record anywhere in the host
// application, located by (ContentTypeID, ObjectID).
//
// Nothing stops two TaggedItems from pointing at the same record, and the
// linked tags may come from unrelated groups or users.
type TaggedItem struct {
	ID            uint `gorm:"primarykey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ContentTypeID uint `gorm:"not null;index:idx_tagged_item_target,priority:1" validate:"required"`
	ObjectID      uint `gorm:"not null;index:idx_tagged_item_target,priority:2"`

	ContentType ContentType `gorm:"foreignKey:ContentTypeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
	UserTags    []UserTag   `gorm:"many2many:tagged_item_user_tags;" validate:"-"`
}

func (i *TaggedItem) BeforeSave(*gorm.DB) error {
	return validate.Validate(i)
}

// TaggedItemUserTag is one row of the TaggedItem <-> UserTag link. The
// composite primary key makes a tag appear at most once per item, and the row
// goes away with either end.
type TaggedItemUserTag struct {
	TaggedItemID uint `gorm:"primaryKey;autoIncrement:false"`
	UserTagID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt    time.Time

	TaggedItem TaggedItem `gorm:"foreignKey:TaggedItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserTag    UserTag    `gorm:"foreignKey:UserTagID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (TaggedItemUserTag) TableName() string {
	return "tagged_item_user_tags"
}
