package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/centavo/backend/internal/controllers/v1"
	"github.com/centavo/backend/internal/models"
	"github.com/centavo/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestCategoriesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestCategoriesDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}

// TestCategoriesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestCategoriesOptions() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Categories: []string{"One"}})
	id := categoryIDByName(suite.T(), group.Data.ID, "One")

	tests := []struct {
		name   string
		id     string // path at the Categories endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Category with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Category exists", id.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/categories", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET", r.Header().Get("allow"))
			}
		})
	}
}

// TestCategoriesGetSingle verifies that requests for the resource endpoints
// are handled correctly.
func (suite *TestSuiteStandard) TestCategoriesGetSingle() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Categories: []string{"Groceries"}})
	id := categoryIDByName(suite.T(), group.Data.ID, "Groceries")

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"GET Existing Category", id.String(), http.StatusOK},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound},
		{"GET No Category with this ID", uuid.New().String(), http.StatusNotFound},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", tt.id), "")

			var category v1.CategoryResponse
			test.DecodeResponse(t, &r, &category)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusOK {
				assert.Equal(t, "Groceries", category.Data.Name)
				assert.Equal(t, &group.Data.ID, category.Data.GroupID)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesGetFilter() {
	food := createTestGroup(suite.T(), v1.GroupEditable{
		Name:       "Food",
		Categories: []string{"Groceries", "Restaurants"},
	})
	_ = createTestGroup(suite.T(), v1.GroupEditable{
		Name:       "Leisure",
		Categories: []string{"Cinema"},
	})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"No filter", "", 3},
		{"Filter by group", "group=" + food.Data.ID.String(), 2},
		{"Filter by name", "name=Cinema", 1},
		{"Search", "search=rest", 1},
		{"Group and name", "group=" + food.Data.ID.String() + "&name=Cinema", 0},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2&limit=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.count, len(response.Data))
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesGetFilterInvalid() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories?group=NotAUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
