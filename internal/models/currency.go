package models

import (
	"strings"

	iso "golang.org/x/text/currency"
	"gorm.io/gorm"
)

// Currency represents a currency transactions can be recorded in.
type Currency struct {
	DefaultModel
	Code     string    `gorm:"uniqueIndex:currency_code"`
	Name     string
	Accounts []Account `gorm:"many2many:account_currencies"`
}

// NormalizeCode returns the canonical spelling of a currency code.
//
// Codes are always stored uppercase. When the code is a well-known ISO 4217
// code, the canonical spelling from the ISO data is used.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))

	if unit, err := iso.ParseISO(code); err == nil {
		code = unit.String()
	}

	return code
}

// BeforeSave normalizes the currency code.
func (c *Currency) BeforeSave(_ *gorm.DB) error {
	c.Code = NormalizeCode(c.Code)
	if c.Code == "" {
		return ErrCurrencyCodeEmpty
	}

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrNameEmpty
	}

	return nil
}

// TransactionCount returns the number of transactions that reference this
// currency.
func (c Currency) TransactionCount(db *gorm.DB) (int64, error) {
	var count int64

	err := db.Model(&Transaction{}).Where("currency_id = ?", c.ID).Count(&count).Error
	return count, err
}
