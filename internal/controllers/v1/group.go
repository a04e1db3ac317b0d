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

// RegisterGroupRoutes registers the routes for groups with
// the RouterGroup that is passed.
func RegisterGroupRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGroupList)
		r.GET("", GetGroups)
		r.POST("", CreateGroups)
	}

	// Group with ID
	{
		r.OPTIONS("/:id", OptionsGroupDetail)
		r.GET("/:id", GetGroup)
		r.PATCH("/:id", UpdateGroup)
		r.DELETE("/:id", DeleteGroup)

		r.OPTIONS("/:id/transactions", OptionsGroupTransactions)
		r.GET("/:id/transactions", GetGroupTransactions)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Router			/v1/groups [options]
func OptionsGroupList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the group"
// @Router			/v1/groups/{id} [options]
func OptionsGroupDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Group{}, uri.ID).Error
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
// @Tags			Groups
// @Success		204
// @Param			id	path	URIID	true	"ID of the group"
// @Router			/v1/groups/{id}/transactions [options]
func OptionsGroupTransactions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Create groups
// @Description	Creates new groups with their categories
// @Tags			Groups
// @Produce		json
// @Success		201		{object}	GroupCreateResponse
// @Failure		400		{object}	GroupCreateResponse
// @Failure		500		{object}	GroupCreateResponse
// @Param			groups	body		[]GroupEditable	true	"Groups"
// @Router			/v1/groups [post]
func CreateGroups(c *gin.Context) {
	var editables []GroupEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := GroupCreateResponse{}

	for _, editable := range editables {
		if len(editable.Categories) == 0 {
			status = r.appendError(errGroupNeedsCategory, status)
			continue
		}

		group := editable.model()

		err = models.DB.Create(&group).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		err = group.ReplaceCategories(models.DB, editable.Categories)
		if err != nil {
			// The group has been created, remove it again so that the
			// request has no effect. Unscoped, a soft deleted row would
			// still block the name
			_ = models.DB.Unscoped().Delete(&group).Error
			status = r.appendError(err, status)
			continue
		}

		data, err := newGroup(c, models.DB, group)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, GroupResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get groups
// @Description	Returns a list of groups
// @Tags			Groups
// @Produce		json
// @Success		200	{object}	GroupListResponse
// @Failure		400	{object}	GroupListResponse
// @Failure		500	{object}	GroupListResponse
// @Router			/v1/groups [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first Group returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Groups to return. Defaults to 50."
func GetGroups(c *gin.Context) {
	var filter GroupQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("name ASC")
	q = nameFilters(q, setFields, filter.Name, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Groups and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var groups []models.Group
	err := q.Find(&groups).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Group, 0)
	for _, group := range groups {
		apiResource, err := newGroup(c, models.DB, group)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), GroupListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, GroupListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get group
// @Description	Returns a specific group
// @Tags			Groups
// @Produce		json
// @Success		200	{object}	GroupResponse
// @Failure		400	{object}	GroupResponse
// @Failure		404	{object}	GroupResponse
// @Failure		500	{object}	GroupResponse
// @Param			id	path		URIID	true	"ID of the group"
// @Router			/v1/groups/{id} [get]
func GetGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	var group models.Group
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	data, err := newGroup(c, models.DB, group)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, GroupResponse{Data: &data})
}

// @Summary		Get dependent transactions
// @Description	Returns the number of transactions that reference the group
// @Tags			Groups
// @Produce		json
// @Success		200	{object}	TransactionCountResponse
// @Failure		400	{object}	TransactionCountResponse
// @Failure		404	{object}	TransactionCountResponse
// @Failure		500	{object}	TransactionCountResponse
// @Param			id	path		URIID	true	"ID of the group"
// @Router			/v1/groups/{id}/transactions [get]
func GetGroupTransactions(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionCountResponse{
			Error: &s,
		})
		return
	}

	var group models.Group
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionCountResponse{
			Error: &s,
		})
		return
	}

	count, err := group.TransactionCount(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionCountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TransactionCountResponse{Data: &TransactionCount{Count: count}})
}

// @Summary		Update group
// @Description	Update an existing group. Only values to be updated need to be specified. When categories are specified, the full list replaces the current categories, categories still referenced by transactions are preserved.
// @Tags			Groups
// @Accept			json
// @Produce		json
// @Success		200		{object}	GroupResponse
// @Failure		400		{object}	GroupResponse
// @Failure		404		{object}	GroupResponse
// @Failure		500		{object}	GroupResponse
// @Param			id		path		URIID			true	"ID of the group"
// @Param			group	body		GroupEditable	true	"Group"
// @Router			/v1/groups/{id} [patch]
func UpdateGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	var group models.Group
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GroupEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	var data GroupEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	// Validate the changed fields here. The model hooks run against the
	// loaded group, not against the partial update
	if slices.Contains(updateFields, any("Name")) {
		data.Name = strings.TrimSpace(data.Name)
		if data.Name == "" {
			s := models.ErrNameEmpty.Error()
			c.JSON(http.StatusBadRequest, GroupResponse{
				Error: &s,
			})
			return
		}
	}

	// The categories are not a column on the group, they are reconciled
	// explicitly below
	if idx := slices.Index(updateFields, any("Categories")); idx >= 0 {
		if len(data.Categories) == 0 {
			s := errGroupNeedsCategory.Error()
			c.JSON(http.StatusBadRequest, GroupResponse{
				Error: &s,
			})
			return
		}

		err = group.ReplaceCategories(models.DB, data.Categories)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), GroupResponse{
				Error: &s,
			})
			return
		}

		updateFields = slices.Delete(updateFields, idx, idx+1)
	}

	if len(updateFields) > 0 {
		err = models.DB.Model(&group).Select("", updateFields...).Updates(data.model()).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), GroupResponse{
				Error: &s,
			})
			return
		}
	}

	r, err := newGroup(c, models.DB, group)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, GroupResponse{Data: &r})
}

// @Summary		Delete group
// @Description	Deletes a group with its categories. When transactions reference the group, the action query parameter decides what happens to them.
// @Tags			Groups
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		409		{object}	DeletionBlockedResponse
// @Failure		500		{object}	httpError
// @Param			id		path		URIID	true	"ID of the group"
// @Param			action	query		string	false	"What happens to referencing transactions. One of 'cancel', 'setNull', 'deleteAll'."
// @Router			/v1/groups/{id} [delete]
func DeleteGroup(c *gin.Context) {
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

	var group models.Group
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if action == models.DeletionCancel {
		metrics.DeletionsResolved.WithLabelValues("groups", string(action)).Inc()
		c.Status(http.StatusOK)
		return
	}

	err = group.Resolve(models.DB, action)
	if err != nil {
		if errors.Is(err, models.ErrDeletionNeedsConfirmation) {
			deletionBlocked(c, group.TransactionCount, []string{
				string(models.DeletionCancel),
				string(models.DeletionSetNull),
				string(models.DeletionDeleteAll),
			})
			return
		}

		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// A delete without an explicit action only succeeds when no transactions
	// reference the group, it behaves like a cascade
	if action == models.DeletionUnspecified {
		action = models.DeletionDeleteAll
	}

	metrics.DeletionsResolved.WithLabelValues("groups", string(action)).Inc()
	c.JSON(http.StatusNoContent, nil)
}
