package v1

import (
	"fmt"

	"github.com/centavo/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name        string             `json:"name" example:"Checking" default:""`                       // Name of the account
	Type        models.AccountType `json:"type" example:"debit" default:""`                          // Type of the account. One of "credit", "debit", "investment"
	CurrencyIDs []uuid.UUID        `json:"currencyIds" example:"d1b8fdb7-1b2a-4cd5-b7f3-71fb6c0c4f33"` // IDs of the currencies the account holds. At least one is required
}

func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name: editable.Name,
		Type: editable.Type,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`              // The account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/transactions"` // Number of transactions referencing the account
}

type Account struct {
	models.DefaultModel
	AccountEditable
	Links AccountLinks `json:"links"`
}

func newAccount(c *gin.Context, db *gorm.DB, model models.Account) (Account, error) {
	url := c.GetString(string(models.DBContextURL))

	currencyIDs, err := model.CurrencyIDs(db)
	if err != nil {
		return Account{}, err
	}

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:        model.Name,
			Type:        model.Type,
			CurrencyIDs: currencyIDs,
		},
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/accounts/%s/transactions", url, model.ID),
		},
	}, nil
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of Accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Data  []AccountResponse `json:"data"`                                                          // List of the created Accounts or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the Account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Type   string `form:"type"`                       // By account type
	Search string `form:"search" filterField:"false"` // By string in the name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Account returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() (models.Account, error) {
	if f.Type != "" && !models.AccountType(f.Type).Valid() {
		return models.Account{}, models.ErrAccountTypeInvalid
	}

	return models.Account{
		Type: models.AccountType(f.Type),
	}, nil
}
