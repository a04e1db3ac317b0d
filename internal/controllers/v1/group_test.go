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

// TestGroupsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestGroupsDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestGroup(t, v1.GroupEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/groups", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.GroupListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestGroupsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestGroupsOptions() {
	tests := []struct {
		name   string
		id     string // path at the Groups endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Group with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Group exists", createTestGroup(suite.T(), v1.GroupEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/groups", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestGroupsCreate() {
	group := createTestGroup(suite.T(), v1.GroupEditable{
		Name:       "Food",
		Categories: []string{"Restaurants", "Groceries"},
	})

	assert.Equal(suite.T(), "Food", group.Data.Name)

	// Category names are sorted alphabetically
	assert.Equal(suite.T(), []string{"Groceries", "Restaurants"}, group.Data.Categories)
}

func (suite *TestSuiteStandard) TestGroupsCreateInvalid() {
	tests := []struct {
		name  string
		group v1.GroupEditable
		err   string
	}{
		{
			"No categories",
			v1.GroupEditable{Name: "No categories"},
			"a group must contain at least one category",
		},
		{
			"Empty name",
			v1.GroupEditable{Name: "   ", Categories: []string{"One"}},
			models.ErrNameEmpty.Error(),
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/groups", []v1.GroupEditable{tt.group})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.GroupCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Data[0].Error, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestGroupsCreateDuplicateName() {
	_ = createTestGroup(suite.T(), v1.GroupEditable{Name: "Unique Group"})

	r := createTestGroup(suite.T(), v1.GroupEditable{Name: "Unique Group"}, http.StatusBadRequest)
	assert.Nil(suite.T(), r.Data)
}

// TestGroupsGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestGroupsGetSingle() {
	g := createTestGroup(suite.T(), v1.GroupEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Group", g.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No Group with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/groups/%s", tt.id), "")

			var group v1.GroupResponse
			test.DecodeResponse(t, &r, &group)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestGroupsUpdateCategories verifies that replacing the category list
// preserves categories that transactions still reference.
func (suite *TestSuiteStandard) TestGroupsUpdateCategories() {
	group := createTestGroup(suite.T(), v1.GroupEditable{
		Name:       "Food",
		Categories: []string{"Groceries", "Restaurants"},
	})

	groceriesID := categoryIDByName(suite.T(), group.Data.ID, "Groceries")
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		GroupID:    &group.Data.ID,
		CategoryID: &groceriesID,
	})

	// Submit a list without Groceries. Groceries is still referenced by a
	// transaction and must be preserved
	r := test.Request(suite.T(), http.MethodPatch, group.Data.Links.Self, map[string]any{
		"categories": []string{"Restaurants", "Takeout"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.GroupResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), []string{"Groceries", "Restaurants", "Takeout"}, updated.Data.Categories)
}

func (suite *TestSuiteStandard) TestGroupsUpdateInvalid() {
	group := createTestGroup(suite.T(), v1.GroupEditable{})

	tests := []struct {
		name string
		body any
	}{
		{"Empty name", map[string]any{"name": "   "}},
		{"Empty category list", map[string]any{"categories": []string{}}},
		{"Broken JSON", `{ "name": `},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, group.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestGroupsDelete() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Categories: []string{"One", "Two"}})

	// Without dependent transactions no action is needed, the group is
	// deleted with its categories
	r := test.Request(suite.T(), http.MethodDelete, group.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, group.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var categories v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &categories)
	assert.Empty(suite.T(), categories.Data)
}

func (suite *TestSuiteStandard) TestGroupsDeleteBlocked() {
	group := createTestGroup(suite.T(), v1.GroupEditable{})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{GroupID: &group.Data.ID})

	// The probe announces the dependents
	r := test.Request(suite.T(), http.MethodGet, group.Data.Links.Transactions, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var probe v1.TransactionCountResponse
	test.DecodeResponse(suite.T(), &r, &probe)
	assert.Equal(suite.T(), int64(1), probe.Data.Count)

	// Without an action the deletion is refused
	r = test.Request(suite.T(), http.MethodDelete, group.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	var blocked v1.DeletionBlockedResponse
	test.DecodeResponse(suite.T(), &r, &blocked)
	assert.Equal(suite.T(), int64(1), blocked.Transactions)
	assert.Contains(suite.T(), blocked.Actions, "setNull")
	assert.Contains(suite.T(), blocked.Actions, "deleteAll")

	r = test.Request(suite.T(), http.MethodGet, group.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

// TestGroupsDeleteDetach verifies the setNull action: transactions survive
// with cleared group and category references, categories that are still
// referenced from outside the group survive.
func (suite *TestSuiteStandard) TestGroupsDeleteDetach() {
	group := createTestGroup(suite.T(), v1.GroupEditable{
		Name:       "Food",
		Categories: []string{"Groceries", "Restaurants"},
	})
	groceriesID := categoryIDByName(suite.T(), group.Data.ID, "Groceries")

	inGroup := createTestTransaction(suite.T(), v1.TransactionEditable{
		GroupID:    &group.Data.ID,
		CategoryID: &groceriesID,
	})

	// A transaction referencing the category without the group keeps the
	// category row alive
	outsideGroup := createTestTransaction(suite.T(), v1.TransactionEditable{
		CategoryID: &groceriesID,
	})

	r := test.Request(suite.T(), http.MethodDelete, group.Data.Links.Self+"?action=setNull", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, group.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The transaction in the group is fully declassified
	r = test.Request(suite.T(), http.MethodGet, inGroup.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var survived v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &survived)
	assert.Nil(suite.T(), survived.Data.GroupID)
	assert.Nil(suite.T(), survived.Data.CategoryID)

	// The transaction outside the group keeps its category
	r = test.Request(suite.T(), http.MethodGet, outsideGroup.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &survived)
	assert.Equal(suite.T(), &groceriesID, survived.Data.CategoryID)

	// Groceries survives, Restaurants does not
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var categories v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &categories)
	assert.Len(suite.T(), categories.Data, 1)
	assert.Equal(suite.T(), "Groceries", categories.Data[0].Name)
	assert.Nil(suite.T(), categories.Data[0].GroupID, "A category surviving its group keeps existing without one")
}

// TestGroupsDeleteCascade verifies the deleteAll action: the group's
// transactions and categories are deleted, transactions that only reference
// one of the categories lose that reference.
func (suite *TestSuiteStandard) TestGroupsDeleteCascade() {
	group := createTestGroup(suite.T(), v1.GroupEditable{
		Name:       "Food",
		Categories: []string{"Groceries"},
	})
	groceriesID := categoryIDByName(suite.T(), group.Data.ID, "Groceries")

	inGroup := createTestTransaction(suite.T(), v1.TransactionEditable{
		GroupID:    &group.Data.ID,
		CategoryID: &groceriesID,
	})
	outsideGroup := createTestTransaction(suite.T(), v1.TransactionEditable{
		CategoryID: &groceriesID,
	})

	r := test.Request(suite.T(), http.MethodDelete, group.Data.Links.Self+"?action=deleteAll", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The transaction in the group is deleted
	r = test.Request(suite.T(), http.MethodGet, inGroup.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The transaction outside the group survives without its category
	r = test.Request(suite.T(), http.MethodGet, outsideGroup.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var survived v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &survived)
	assert.Nil(suite.T(), survived.Data.CategoryID)
}

func (suite *TestSuiteStandard) TestGroupsDeleteCancel() {
	group := createTestGroup(suite.T(), v1.GroupEditable{})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{GroupID: &group.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, group.Data.Links.Self+"?action=cancel", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, group.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestGroupsDeleteInvalidAction() {
	group := createTestGroup(suite.T(), v1.GroupEditable{})

	r := test.Request(suite.T(), http.MethodDelete, group.Data.Links.Self+"?action=explode", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
