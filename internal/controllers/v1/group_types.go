package v1

import (
	"fmt"

	"github.com/centavo/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GroupEditable represents all user configurable parameters
type GroupEditable struct {
	Name       string   `json:"name" example:"Living expenses" default:""`  // Name of the group
	Categories []string `json:"categories" example:"Rent,Electricity"`      // Names of the categories of the group. At least one is required
}

func (editable GroupEditable) model() models.Group {
	return models.Group{
		Name: editable.Name,
	}
}

type GroupLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/groups/3b1ea324-d438-4419-882a-2fc91d71772f"`                      // The group itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/groups/3b1ea324-d438-4419-882a-2fc91d71772f/transactions"` // Number of transactions referencing the group
}

type Group struct {
	models.DefaultModel
	GroupEditable
	Links GroupLinks `json:"links"`
}

func newGroup(c *gin.Context, db *gorm.DB, model models.Group) (Group, error) {
	url := c.GetString(string(models.DBContextURL))

	names, err := model.CategoryNames(db)
	if err != nil {
		return Group{}, err
	}

	return Group{
		DefaultModel: model.DefaultModel,
		GroupEditable: GroupEditable{
			Name:       model.Name,
			Categories: names,
		},
		Links: GroupLinks{
			Self:         fmt.Sprintf("%s/v1/groups/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/groups/%s/transactions", url, model.ID),
		},
	}, nil
}

type GroupListResponse struct {
	Data       []Group     `json:"data"`                                                          // List of Groups
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GroupCreateResponse struct {
	Data  []GroupResponse `json:"data"`                                                          // List of the created Groups or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (g *GroupCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, GroupResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GroupResponse struct {
	Data  *Group  `json:"data"`                                                          // Data for the Group
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GroupQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Search string `form:"search" filterField:"false"` // By string in the name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Group returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Groups to return. Defaults to 50.
}
