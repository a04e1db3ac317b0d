package v1

import (
	"net/http"
	"strings"

	"github.com/centavo/backend/internal/httputil"
	"github.com/centavo/backend/internal/metrics"
	"github.com/centavo/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterCurrencyRoutes registers the routes for currencies with
// the RouterGroup that is passed.
func RegisterCurrencyRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCurrencyList)
		r.GET("", GetCurrencies)
		r.POST("", CreateCurrencies)
	}

	// Currency with ID
	{
		r.OPTIONS("/:id", OptionsCurrencyDetail)
		r.GET("/:id", GetCurrency)
		r.PATCH("/:id", UpdateCurrency)
		r.DELETE("/:id", DeleteCurrency)

		r.OPTIONS("/:id/transactions", OptionsCurrencyTransactions)
		r.GET("/:id/transactions", GetCurrencyTransactions)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Currencies
// @Success		204
// @Router			/v1/currencies [options]
func OptionsCurrencyList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Currencies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the currency"
// @Router			/v1/currencies/{id} [options]
func OptionsCurrencyDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Currency{}, uri.ID).Error
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
// @Tags			Currencies
// @Success		204
// @Param			id	path	URIID	true	"ID of the currency"
// @Router			/v1/currencies/{id}/transactions [options]
func OptionsCurrencyTransactions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dependent transactions
// @Description	Returns the number of transactions that reference the currency
// @Tags			Currencies
// @Produce		json
// @Success		200	{object}	TransactionCountResponse
// @Failure		400	{object}	TransactionCountResponse
// @Failure		404	{object}	TransactionCountResponse
// @Failure		500	{object}	TransactionCountResponse
// @Param			id	path		URIID	true	"ID of the currency"
// @Router			/v1/currencies/{id}/transactions [get]
func GetCurrencyTransactions(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionCountResponse{
			Error: &s,
		})
		return
	}

	var currency models.Currency
	err = models.DB.First(&currency, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionCountResponse{
			Error: &s,
		})
		return
	}

	count, err := currency.TransactionCount(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionCountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TransactionCountResponse{Data: &TransactionCount{Count: count}})
}

// @Summary		Create currencies
// @Description	Creates new currencies
// @Tags			Currencies
// @Produce		json
// @Success		201			{object}	CurrencyCreateResponse
// @Failure		400			{object}	CurrencyCreateResponse
// @Failure		500			{object}	CurrencyCreateResponse
// @Param			currencies	body		[]CurrencyEditable	true	"Currencies"
// @Router			/v1/currencies [post]
func CreateCurrencies(c *gin.Context) {
	var editables []CurrencyEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CurrencyCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CurrencyCreateResponse{}

	for _, editable := range editables {
		currency := editable.model()

		err = models.DB.Create(&currency).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCurrency(c, currency)
		r.Data = append(r.Data, CurrencyResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get currencies
// @Description	Returns a list of currencies
// @Tags			Currencies
// @Produce		json
// @Success		200	{object}	CurrencyListResponse
// @Failure		400	{object}	CurrencyListResponse
// @Failure		500	{object}	CurrencyListResponse
// @Router			/v1/currencies [get]
// @Param			code	query	string	false	"Filter by code"
// @Param			name	query	string	false	"Filter by name"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first Currency returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Currencies to return. Defaults to 50."
func GetCurrencies(c *gin.Context) {
	var filter CurrencyQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("code ASC").
		Where(&filterModel, queryFields...)

	q = nameFilters(q, setFields, filter.Name, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Currencies and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var currencies []models.Currency
	err := q.Find(&currencies).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CurrencyListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Currency, 0)
	for _, currency := range currencies {
		data = append(data, newCurrency(c, currency))
	}

	c.JSON(http.StatusOK, CurrencyListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get currency
// @Description	Returns a specific currency
// @Tags			Currencies
// @Produce		json
// @Success		200	{object}	CurrencyResponse
// @Failure		400	{object}	CurrencyResponse
// @Failure		404	{object}	CurrencyResponse
// @Failure		500	{object}	CurrencyResponse
// @Param			id	path		URIID	true	"ID of the currency"
// @Router			/v1/currencies/{id} [get]
func GetCurrency(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	var currency models.Currency
	err = models.DB.First(&currency, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	data := newCurrency(c, currency)
	c.JSON(http.StatusOK, CurrencyResponse{Data: &data})
}

// @Summary		Update currency
// @Description	Update an existing currency. Only values to be updated need to be specified.
// @Tags			Currencies
// @Accept			json
// @Produce		json
// @Success		200			{object}	CurrencyResponse
// @Failure		400			{object}	CurrencyResponse
// @Failure		404			{object}	CurrencyResponse
// @Failure		500			{object}	CurrencyResponse
// @Param			id			path		URIID				true	"ID of the currency"
// @Param			currency	body		CurrencyEditable	true	"Currency"
// @Router			/v1/currencies/{id} [patch]
func UpdateCurrency(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	var currency models.Currency
	err = models.DB.First(&currency, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CurrencyEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	var data CurrencyEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	// Normalize and validate the changed fields here. The model hooks run
	// against the loaded currency, not against the partial update
	if slices.Contains(updateFields, any("Code")) {
		data.Code = models.NormalizeCode(data.Code)
		if data.Code == "" {
			s := models.ErrCurrencyCodeEmpty.Error()
			c.JSON(http.StatusBadRequest, CurrencyResponse{
				Error: &s,
			})
			return
		}
	}

	if slices.Contains(updateFields, any("Name")) {
		data.Name = strings.TrimSpace(data.Name)
		if data.Name == "" {
			s := models.ErrNameEmpty.Error()
			c.JSON(http.StatusBadRequest, CurrencyResponse{
				Error: &s,
			})
			return
		}
	}

	err = models.DB.Model(&currency).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	r := newCurrency(c, currency)
	c.JSON(http.StatusOK, CurrencyResponse{Data: &r})
}

// @Summary		Delete currency
// @Description	Deletes a currency. Transactions that reference the currency are kept, their currency reference is cleared.
// @Tags			Currencies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id		path	URIID	true	"ID of the currency"
// @Param			action	query	string	false	"Only 'cancel' is supported, currencies always detach their transactions"
// @Router			/v1/currencies/{id} [delete]
func DeleteCurrency(c *gin.Context) {
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

	var currency models.Currency
	err = models.DB.First(&currency, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	switch action {
	case models.DeletionCancel:
		metrics.DeletionsResolved.WithLabelValues("currencies", string(action)).Inc()
		c.Status(http.StatusOK)
		return

	case models.DeletionUnspecified:
		// Currencies always detach, no explicit action is needed

	default:
		c.JSON(http.StatusBadRequest, httpError{
			Error: models.ErrDeletionActionNotAllowed.Error(),
		})
		return
	}

	err = currency.Resolve(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	metrics.DeletionsResolved.WithLabelValues("currencies", string(models.DeletionSetNull)).Inc()
	c.JSON(http.StatusNoContent, nil)
}
