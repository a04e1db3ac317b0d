package models

import (
	"strings"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Group represents a group of categories, e.g. "Living expenses".
type Group struct {
	DefaultModel
	Name       string     `gorm:"uniqueIndex:group_name"`
	Categories []Category `json:"-"`
}

// BeforeSave trims whitespace and verifies the group name.
func (g *Group) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return ErrNameEmpty
	}

	return nil
}

// TransactionCount returns the number of transactions that reference this
// group. It is a read-only probe, the destructive deletion paths re-derive
// the dependents themselves.
func (g Group) TransactionCount(db *gorm.DB) (int64, error) {
	var count int64

	err := db.Model(&Transaction{}).Where("group_id = ?", g.ID).Count(&count).Error
	return count, err
}

// CategoryNames returns the names of all categories of the group, sorted
// alphabetically.
func (g Group) CategoryNames(db *gorm.DB) ([]string, error) {
	var categories []Category

	err := db.Where("group_id = ?", g.ID).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}

	return names, nil
}

// ReplaceCategories reconciles the categories of the group with the
// submitted list of names.
//
// Names not yet present are created. Categories absent from the list are only
// deleted when no transaction references them, categories still in use are
// always preserved. Re-running the same replacement is a no-op for categories
// that are already absent.
func (g *Group) ReplaceCategories(db *gorm.DB, names []string) error {
	submitted := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(submitted, name) {
			continue
		}

		submitted = append(submitted, name)
	}

	var existing []Category
	err := db.Where("group_id = ?", g.ID).Find(&existing).Error
	if err != nil {
		return err
	}

	existingNames := make([]string, 0, len(existing))
	for _, category := range existing {
		existingNames = append(existingNames, category.Name)
	}

	for _, name := range submitted {
		if slices.Contains(existingNames, name) {
			continue
		}

		err = db.Create(&Category{Name: name, GroupID: &g.ID}).Error
		if err != nil {
			return err
		}
	}

	for _, category := range existing {
		if slices.Contains(submitted, category.Name) {
			continue
		}

		inUse, err := category.InUse(db)
		if err != nil {
			return err
		}

		// Categories that transactions still reference are preserved even
		// when they are missing from the submitted list
		if inUse {
			continue
		}

		// Unscoped so that a pruned name can be re-added later, the unique
		// index also covers soft deleted rows
		err = db.Unscoped().Delete(&category).Error
		if err != nil {
			return err
		}
	}

	return nil
}
