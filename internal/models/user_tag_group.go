package models

import (
	"time"

	"gorm.io/gorm"
)

// UserTagGroup is a named bucket of tags owned by a user, e.g. "weather"
// holding "sunny" and "rainy". A user may own several groups with the same name.
type UserTagGroup struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint   `gorm:"not null;index" validate:"required"`
	Name      string `gorm:"size:256;not null" validate:"required,max=256"`

	User     User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
	UserTags []UserTag `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
}

func (g *UserTagGroup) BeforeSave(*gorm.DB) error {
	return validate.Validate(g)
}
