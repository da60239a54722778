package models

import "gorm.io/gorm"

// ContentType names a kind of record that can be tagged, e.g. "WeatherEntry".
// Rows are created from the in-process registry; see package contenttype.
type ContentType struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"size:100;unique;not null" validate:"required,max=100"`
}

func (c *ContentType) BeforeSave(*gorm.DB) error {
	return validate.Validate(c)
}
