package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountType is the type of an account.
type AccountType string

const (
	AccountTypeCredit     AccountType = "credit"
	AccountTypeDebit      AccountType = "debit"
	AccountTypeInvestment AccountType = "investment"
)

// Valid reports whether the account type is one of the supported values.
func (t AccountType) Valid() bool {
	return t == AccountTypeCredit || t == AccountTypeDebit || t == AccountTypeInvestment
}

// Account represents an account transactions are recorded against,
// e.g. a bank account or a credit card.
type Account struct {
	DefaultModel
	Name       string      `gorm:"uniqueIndex:account_name"`
	Type       AccountType `gorm:"type:string"`
	Currencies []Currency  `gorm:"many2many:account_currencies"`
}

// BeforeSave trims whitespace and verifies the account fields.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return ErrNameEmpty
	}

	if !a.Type.Valid() {
		return ErrAccountTypeInvalid
	}

	return nil
}

// Transactions returns all transactions that reference this account.
func (a Account) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.Where("account_id = ?", a.ID).Find(&transactions).Error
	return transactions, err
}

// TransactionCount returns the number of transactions that reference this
// account. It is a read-only probe, the destructive deletion paths re-derive
// the dependents themselves.
func (a Account) TransactionCount(db *gorm.DB) (int64, error) {
	var count int64

	err := db.Model(&Transaction{}).Where("account_id = ?", a.ID).Count(&count).Error
	return count, err
}

// CurrencyIDs returns the IDs of all currencies associated with the account.
func (a Account) CurrencyIDs(db *gorm.DB) ([]uuid.UUID, error) {
	var currencies []Currency

	err := db.Model(&a).Order("code ASC").Association("Currencies").Find(&currencies)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(currencies))
	for _, currency := range currencies {
		ids = append(ids, currency.ID)
	}

	return ids, nil
}

// SetCurrencies replaces the set of currencies associated with the account.
//
// Every referenced currency has to exist. The previous associations are
// removed, matching the behavior of an account edit replacing the full set.
func (a *Account) SetCurrencies(db *gorm.DB, ids []uuid.UUID) error {
	currencies := make([]Currency, 0, len(ids))
	for _, id := range ids {
		var currency Currency
		err := db.First(&currency, "id = ?", id).Error
		if err != nil {
			return err
		}

		currencies = append(currencies, currency)
	}

	return db.Model(a).Association("Currencies").Replace(currencies)
}
