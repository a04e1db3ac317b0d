package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether the transaction type is one of the supported values.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single entry in the ledger.
//
// All references are optional. A transaction whose account, category, group
// or currency has been deleted with a detach action keeps existing with the
// reference set to null.
type Transaction struct {
	DefaultModel
	EntryDate   time.Time       // Day the transaction was entered for
	Type        TransactionType `gorm:"type:string"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(10,2)"`
	Description string
	CategoryID  *uuid.UUID
	Category    Category `json:"-"`
	AccountID   *uuid.UUID
	Account     Account `json:"-"`
	CurrencyID  *uuid.UUID
	Currency    Currency `json:"-"`
	GroupID     *uuid.UUID
	Group       Group `json:"-"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.EntryDate = t.EntryDate.In(time.UTC)
	return
}

// BeforeSave
//   - sets the timezone for the EntryDate to UTC
//   - normalizes unset references to null
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Description = strings.TrimSpace(t.Description)

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if t.EntryDate.IsZero() {
		t.EntryDate = time.Now().In(time.UTC)
	} else {
		t.EntryDate = t.EntryDate.In(time.UTC)
	}

	// Ensure that references are nil and not a pointer to a nil UUID
	// when they are unset
	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}
	if t.AccountID != nil && *t.AccountID == uuid.Nil {
		t.AccountID = nil
	}
	if t.CurrencyID != nil && *t.CurrencyID == uuid.Nil {
		t.CurrencyID = nil
	}
	if t.GroupID != nil && *t.GroupID == uuid.Nil {
		t.GroupID = nil
	}

	return
}
