// Package models declares the user tagging schema: tag groups, tags, tagged
// items and the content types tagged items point at.
package models

import (
	"fmt"

	"gorm.io/gorm"
)

// All lists every model in migration order.
func All() []any {
	return []any{
		&User{},
		&UserTagGroup{},
		&UserTag{},
		&ContentType{},
		&TaggedItem{},
		&TaggedItemUserTag{},
	}
}

// Setup registers TaggedItemUserTag as the join table for both sides of the
// TaggedItem <-> UserTag relation. It must run on every *gorm.DB before the
// relation is used or migrated.
func Setup(db *gorm.DB) error {
	if err := db.SetupJoinTable(&TaggedItem{}, "UserTags", &TaggedItemUserTag{}); err != nil {
		return fmt.Errorf("setting up tagged item join table: %w", err)
	}
	if err := db.SetupJoinTable(&UserTag{}, "TaggedItems", &TaggedItemUserTag{}); err != nil {
		return fmt.Errorf("setting up user tag join table: %w", err)
	}
	return nil
}
