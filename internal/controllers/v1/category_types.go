package v1

import (
	"fmt"

	"github.com/centavo/backend/internal/models"
	ct_uuid "github.com/centavo/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type CategoryLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"` // The category itself
	Group string `json:"group" example:"https://example.com/api/v1/groups/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`   // The group the category belongs to
}

type Category struct {
	models.DefaultModel
	Name    string        `json:"name" example:"Groceries"`                                // Name of the category
	GroupID *uuid.UUID    `json:"groupId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the group the category belongs to, null when the category survived its group
	Links   CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	category := Category{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		GroupID:      model.GroupID,
		Links: CategoryLinks{
			Self: fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
		},
	}

	if model.GroupID != nil {
		category.Links.Group = fmt.Sprintf("%s/v1/groups/%s", url, model.GroupID)
	}

	return category
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	GroupID ct_uuid.UUID `form:"group" filterField:"false"`  // By ID of the group
	Name    string       `form:"name" filterField:"false"`   // By name
	Search  string       `form:"search" filterField:"false"` // By string in the name
	Offset  uint         `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit   int          `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

// groupFilter applies the group ID filter. An explicitly empty parameter
// filters for categories that survived their group.
func (f CategoryQueryFilter) groupFilter(q *gorm.DB, setFields []string) *gorm.DB {
	if !slices.Contains(setFields, "GroupID") {
		return q
	}

	if f.GroupID.UUID == uuid.Nil {
		return q.Where("group_id IS NULL")
	}

	return q.Where("group_id = ?", f.GroupID.UUID)
}
