package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Uniqueness violations, translated from the database constraints
// in createUpdateCallback.
var (
	ErrAccountNameNotUnique  = errors.New("the account name must be unique")
	ErrCurrencyCodeNotUnique = errors.New("the currency code must be unique")
	ErrGroupNameNotUnique    = errors.New("the group name must be unique")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique for the group")
)

// Validation errors raised by model hooks.
var (
	ErrAccountTypeInvalid     = errors.New("the account type must be one of 'credit', 'debit' or 'investment'")
	ErrTransactionTypeInvalid = errors.New("the transaction type must be one of 'income' or 'expense'")
	ErrNameEmpty              = errors.New("the name must not be empty")
	ErrCurrencyCodeEmpty      = errors.New("the currency code must not be empty")
)

// Deletion resolver errors.
var (
	ErrDeletionActionInvalid     = errors.New("the deletion action must be one of 'cancel', 'setNull' or 'deleteAll'")
	ErrDeletionActionNotAllowed  = errors.New("this deletion action is not supported for the resource")
	ErrDeletionNeedsConfirmation = errors.New("transactions reference this resource, the deletion action must be specified explicitly")
)
