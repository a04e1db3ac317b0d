package v1

import (
	"fmt"

	"github.com/centavo/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// CurrencyEditable represents all user configurable parameters
type CurrencyEditable struct {
	Code string `json:"code" example:"EUR" default:""`  // Code of the currency, stored uppercase
	Name string `json:"name" example:"Euro" default:""` // Name of the currency
}

func (editable CurrencyEditable) model() models.Currency {
	return models.Currency{
		Code: editable.Code,
		Name: editable.Name,
	}
}

type CurrencyLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/currencies/d1b8fdb7-1b2a-4cd5-b7f3-71fb6c0c4f33"`                      // The currency itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/currencies/d1b8fdb7-1b2a-4cd5-b7f3-71fb6c0c4f33/transactions"` // Number of transactions referencing the currency
}

type Currency struct {
	models.DefaultModel
	CurrencyEditable
	Links CurrencyLinks `json:"links"`
}

func newCurrency(c *gin.Context, model models.Currency) Currency {
	url := c.GetString(string(models.DBContextURL))

	return Currency{
		DefaultModel: model.DefaultModel,
		CurrencyEditable: CurrencyEditable{
			Code: model.Code,
			Name: model.Name,
		},
		Links: CurrencyLinks{
			Self:         fmt.Sprintf("%s/v1/currencies/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/currencies/%s/transactions", url, model.ID),
		},
	}
}

type CurrencyListResponse struct {
	Data       []Currency  `json:"data"`                                                          // List of Currencies
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CurrencyCreateResponse struct {
	Data  []CurrencyResponse `json:"data"`                                                          // List of the created Currencies or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CurrencyCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CurrencyResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CurrencyResponse struct {
	Data  *Currency `json:"data"`                                                          // Data for the Currency
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CurrencyQueryFilter struct {
	Code   string `form:"code"`                       // By code
	Name   string `form:"name" filterField:"false"`   // By name
	Search string `form:"search" filterField:"false"` // By string in the name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Currency returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Currencies to return. Defaults to 50.
}

func (f CurrencyQueryFilter) model() models.Currency {
	return models.Currency{
		Code: f.Code,
	}
}
