package v1

import (
	"fmt"
	"time"

	"github.com/centavo/backend/internal/models"
	ct_uuid "github.com/centavo/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	EntryDate   time.Time              `json:"entryDate" example:"2024-03-17T00:00:00Z"`                    // Day the transaction was entered for. Defaults to the current day
	Type        models.TransactionType `json:"type" example:"expense" default:""`                           // Type of the transaction. One of "income", "expense"
	Amount      decimal.Decimal        `json:"amount" example:"23.17"`                                      // Amount of the transaction
	Description string                 `json:"description" example:"Groceries at the market" default:""`    // Description of the transaction
	AccountID   *uuid.UUID             `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`    // ID of the account, optional
	CurrencyID  *uuid.UUID             `json:"currencyId" example:"d1b8fdb7-1b2a-4cd5-b7f3-71fb6c0c4f33"`   // ID of the currency, optional
	GroupID     *uuid.UUID             `json:"groupId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`      // ID of the group, optional
	CategoryID  *uuid.UUID             `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`   // ID of the category, optional
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		EntryDate:   editable.EntryDate,
		Type:        editable.Type,
		Amount:      editable.Amount,
		Description: editable.Description,
		AccountID:   editable.AccountID,
		CurrencyID:  editable.CurrencyID,
		GroupID:     editable.GroupID,
		CategoryID:  editable.CategoryID,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`

	// These fields are computed from the referenced resources
	AccountName  *string `json:"accountName" example:"Checking"` // Name of the account, null when no account is referenced
	CurrencyCode *string `json:"currencyCode" example:"EUR"`     // Code of the currency, null when no currency is referenced
	GroupName    *string `json:"groupName" example:"Food"`       // Name of the group, null when no group is referenced
	CategoryName *string `json:"categoryName" example:"Groceries"` // Name of the category, null when no category is referenced
}

func newTransaction(c *gin.Context, db *gorm.DB, model models.Transaction) (Transaction, error) {
	url := c.GetString(string(models.DBContextURL))

	transaction := Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			EntryDate:   model.EntryDate,
			Type:        model.Type,
			Amount:      model.Amount,
			Description: model.Description,
			AccountID:   model.AccountID,
			CurrencyID:  model.CurrencyID,
			GroupID:     model.GroupID,
			CategoryID:  model.CategoryID,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}

	if model.AccountID != nil {
		var account models.Account
		err := db.First(&account, model.AccountID).Error
		if err != nil {
			return Transaction{}, err
		}
		transaction.AccountName = &account.Name
	}

	if model.CurrencyID != nil {
		var currency models.Currency
		err := db.First(&currency, model.CurrencyID).Error
		if err != nil {
			return Transaction{}, err
		}
		transaction.CurrencyCode = &currency.Code
	}

	if model.GroupID != nil {
		var group models.Group
		err := db.First(&group, model.GroupID).Error
		if err != nil {
			return Transaction{}, err
		}
		transaction.GroupName = &group.Name
	}

	if model.CategoryID != nil {
		var category models.Category
		err := db.First(&category, model.CategoryID).Error
		if err != nil {
			return Transaction{}, err
		}
		transaction.CategoryName = &category.Name
	}

	return transaction, nil
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of Transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of the created Transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the Transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// TransactionDeleteRequest is the body for bulk deletion of transactions.
type TransactionDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"` // IDs of the transactions to delete
}

type TransactionQueryFilter struct {
	AccountID   ct_uuid.UUID `form:"account" filterField:"false"`   // By ID of the account
	CurrencyID  ct_uuid.UUID `form:"currency" filterField:"false"`  // By ID of the currency
	GroupID     ct_uuid.UUID `form:"group" filterField:"false"`     // By ID of the group
	CategoryID  ct_uuid.UUID `form:"category" filterField:"false"`  // By ID of the category
	Type        string       `form:"type"`                          // By transaction type
	Description string       `form:"description" filterField:"false"` // By description
	Search      string       `form:"search" filterField:"false"`    // By string in the description
	FromDate    time.Time    `form:"fromDate" filterField:"false" time_format:"2006-01-02" time_utc:"1"`  // Only transactions entered on or after this date
	UntilDate   time.Time    `form:"untilDate" filterField:"false" time_format:"2006-01-02" time_utc:"1"` // Only transactions entered on or before this date
	Offset      uint         `form:"offset" filterField:"false"`    // The offset of the first Transaction returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`     // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	if f.Type != "" && !models.TransactionType(f.Type).Valid() {
		return models.Transaction{}, models.ErrTransactionTypeInvalid
	}

	return models.Transaction{
		Type: models.TransactionType(f.Type),
	}, nil
}

// referenceFilters applies the reference ID filters. An explicitly empty
// parameter filters for transactions without that reference.
func (f TransactionQueryFilter) referenceFilters(q *gorm.DB, setFields []string) *gorm.DB {
	references := []struct {
		field  string
		column string
		id     ct_uuid.UUID
	}{
		{"AccountID", "account_id", f.AccountID},
		{"CurrencyID", "currency_id", f.CurrencyID},
		{"GroupID", "group_id", f.GroupID},
		{"CategoryID", "category_id", f.CategoryID},
	}

	for _, reference := range references {
		if !slices.Contains(setFields, reference.field) {
			continue
		}

		if reference.id.UUID == uuid.Nil {
			q = q.Where(fmt.Sprintf("%s IS NULL", reference.column))
		} else {
			q = q.Where(fmt.Sprintf("%s = ?", reference.column), reference.id.UUID)
		}
	}

	return q
}
