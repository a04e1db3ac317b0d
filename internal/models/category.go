package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a single category within a group.
//
// The group reference is nullable: when a group is deleted with a detach
// action, categories that transactions still reference survive the group
// and keep existing without one.
type Category struct {
	DefaultModel
	Name    string     `gorm:"uniqueIndex:category_group_name"`
	GroupID *uuid.UUID `gorm:"uniqueIndex:category_group_name"`
	Group   *Group     `json:"-"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrNameEmpty
	}

	return nil
}

// InUse reports whether any transaction references the category.
func (c Category) InUse(db *gorm.DB) (bool, error) {
	var count int64

	err := db.Model(&Transaction{}).Where("category_id = ?", c.ID).Count(&count).Error
	return count > 0, err
}
