package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/centavo/backend/internal/controllers/v1"
	"github.com/centavo/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})
	group := createTestGroup(suite.T(), v1.GroupEditable{})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID: &account.Data.ID,
		GroupID:   &group.Data.ID,
	})

	tests := []string{
		"/v1/accounts",
		"/v1/categories",
		"/v1/currencies",
		"/v1/groups",
		"/v1/transactions",
	}

	// Delete it all
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify that all resources are deleted
	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, "http://example.com"+tt, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for type %s", tt)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"Missing confirmation", ""},
		{"Wrong confirmation", "?confirm=2"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, "http://example.com/v1"+tt.path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
