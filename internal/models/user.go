package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the account that owns tag groups. Authentication and profile data
// belong to the host application; only the identity is kept here.
type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string `gorm:"size:150;unique;not null" validate:"required,max=150"`
}

func (u *User) BeforeSave(*gorm.DB) error {
	return validate.Validate(u)
}
