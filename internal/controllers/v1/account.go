package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/centavo/backend/internal/httputil"
	"github.com/centavo/backend/internal/metrics"
	"github.com/centavo/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAccountList)
		r.GET("", GetAccounts)
		r.POST("", CreateAccounts)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", OptionsAccountDetail)
		r.GET("/:id", GetAccount)
		r.PATCH("/:id", UpdateAccount)
		r.DELETE("/:id", DeleteAccount)

		r.OPTIONS("/:id/transactions", OptionsAccountTransactions)
		r.GET("/:id/transactions", GetAccountTransactions)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Router			/v1/accounts [options]
func OptionsAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the account"
// @Router			/v1/accounts/{id} [options]
func OptionsAccountDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Account{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Param			id	path	URIID	true	"ID of the account"
// @Router			/v1/accounts/{id}/transactions [options]
func OptionsAccountTransactions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Create accounts
// @Description	Creates new accounts
// @Tags			Accounts
// @Produce		json
// @Success		201			{object}	AccountCreateResponse
// @Failure		400			{object}	AccountCreateResponse
// @Failure		404			{object}	AccountCreateResponse
// @Failure		500			{object}	AccountCreateResponse
// @Param			accounts	body		[]AccountEditable	true	"Accounts"
// @Router			/v1/accounts [post]
func CreateAccounts(c *gin.Context) {
	var editables []AccountEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AccountCreateResponse{}

	for _, editable := range editables {
		if len(editable.CurrencyIDs) == 0 {
			status = r.appendError(errAccountNeedsCurrency, status)
			continue
		}

		account := editable.model()

		err = models.DB.Create(&account).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		err = account.SetCurrencies(models.DB, editable.CurrencyIDs)
		if err != nil {
			// The account has been created, remove it again so that the
			// request has no effect. Unscoped, a soft deleted row would
			// still block the name
			_ = models.DB.Unscoped().Delete(&account).Error
			status = r.appendError(err, status)
			continue
		}

		data, err := newAccount(c, models.DB, account)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, AccountResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get accounts
// @Description	Returns a list of accounts
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountListResponse
// @Failure		400	{object}	AccountListResponse
// @Failure		500	{object}	AccountListResponse
// @Router			/v1/accounts [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			type	query	string	false	"Filter by account type"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first Account returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Accounts to return. Defaults to 50."
func GetAccounts(c *gin.Context) {
	var filter AccountQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a model struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = nameFilters(q, setFields, filter.Name, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Accounts and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var accounts []models.Account
	err = q.Find(&accounts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Account, 0)
	for _, account := range accounts {
		apiResource, err := newAccount(c, models.DB, account)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AccountListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, AccountListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get account
// @Description	Returns a specific account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountResponse
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Failure		500	{object}	AccountResponse
// @Param			id	path		URIID	true	"ID of the account"
// @Router			/v1/accounts/{id} [get]
func GetAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	var account models.Account
	err = models.DB.First(&account, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	data, err := newAccount(c, models.DB, account)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

// @Summary		Get dependent transactions
// @Description	Returns the number of transactions that reference the account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	TransactionCountResponse
// @Failure		400	{object}	TransactionCountResponse
// @Failure		404	{object}	TransactionCountResponse
// @Failure		500	{object}	TransactionCountResponse
// @Param			id	path		URIID	true	"ID of the account"
// @Router			/v1/accounts/{id}/transactions [get]
func GetAccountTransactions(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionCountResponse{
			Error: &s,
		})
		return
	}

	var account models.Account
	err = models.DB.First(&account, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionCountResponse{
			Error: &s,
		})
		return
	}

	count, err := account.TransactionCount(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionCountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TransactionCountResponse{Data: &TransactionCount{Count: count}})
}

// @Summary		Update account
// @Description	Update an existing account. Only values to be updated need to be specified.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		200		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		404		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			id		path		URIID			true	"ID of the account"
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts/{id} [patch]
func UpdateAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	var account models.Account
	err = models.DB.First(&account, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AccountEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	var data AccountEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	// Validate the changed fields here. The model hooks run against the
	// loaded account, not against the partial update
	if slices.Contains(updateFields, any("Name")) {
		data.Name = strings.TrimSpace(data.Name)
		if data.Name == "" {
			s := models.ErrNameEmpty.Error()
			c.JSON(http.StatusBadRequest, AccountResponse{
				Error: &s,
			})
			return
		}
	}

	if slices.Contains(updateFields, any("Type")) && !data.Type.Valid() {
		s := models.ErrAccountTypeInvalid.Error()
		c.JSON(http.StatusBadRequest, AccountResponse{
			Error: &s,
		})
		return
	}

	// The currency associations are not a column on the account, they are
	// updated explicitly below
	if idx := slices.Index(updateFields, any("CurrencyIDs")); idx >= 0 {
		if len(data.CurrencyIDs) == 0 {
			s := errAccountNeedsCurrency.Error()
			c.JSON(http.StatusBadRequest, AccountResponse{
				Error: &s,
			})
			return
		}

		err = account.SetCurrencies(models.DB, data.CurrencyIDs)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AccountResponse{
				Error: &s,
			})
			return
		}

		updateFields = slices.Delete(updateFields, idx, idx+1)
	}

	if len(updateFields) > 0 {
		err = models.DB.Model(&account).Select("", updateFields...).Updates(data.model()).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AccountResponse{
				Error: &s,
			})
			return
		}
	}

	r, err := newAccount(c, models.DB, account)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &r})
}

// @Summary		Delete account
// @Description	Deletes an account. When transactions reference the account, the action query parameter decides what happens to them.
// @Tags			Accounts
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		409		{object}	DeletionBlockedResponse
// @Failure		500		{object}	httpError
// @Param			id		path		URIID	true	"ID of the account"
// @Param			action	query		string	false	"What happens to referencing transactions. One of 'cancel', 'deleteAll'."
// @Router			/v1/accounts/{id} [delete]
func DeleteAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	action, err := models.ParseDeletionAction(c.Query("action"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var account models.Account
	err = models.DB.First(&account, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if action == models.DeletionCancel {
		metrics.DeletionsResolved.WithLabelValues("accounts", string(action)).Inc()
		c.Status(http.StatusOK)
		return
	}

	err = account.Resolve(models.DB, action)
	if err != nil {
		if errors.Is(err, models.ErrDeletionNeedsConfirmation) {
			deletionBlocked(c, account.TransactionCount, []string{string(models.DeletionCancel), string(models.DeletionDeleteAll)})
			return
		}

		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	metrics.DeletionsResolved.WithLabelValues("accounts", string(models.DeletionDeleteAll)).Inc()
	c.JSON(http.StatusNoContent, nil)
}
