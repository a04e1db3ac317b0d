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

// TestAccountsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestAccountsDBClosed() {
	currency := createTestCurrency(suite.T(), v1.CurrencyEditable{})

	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestAccount(t, v1.AccountEditable{CurrencyIDs: []uuid.UUID{currency.Data.ID}}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/accounts", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.AccountListResponse
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

// TestAccountsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestAccountsOptions() {
	tests := []struct {
		name   string
		id     string // path at the Accounts endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Account with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Account exists", createTestAccount(suite.T(), v1.AccountEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/accounts", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsCreate() {
	eur := createTestCurrency(suite.T(), v1.CurrencyEditable{Code: "EUR", Name: "Euro"})
	usd := createTestCurrency(suite.T(), v1.CurrencyEditable{Code: "USD", Name: "US Dollar"})

	account := createTestAccount(suite.T(), v1.AccountEditable{
		Name:        "Checking",
		Type:        models.AccountTypeDebit,
		CurrencyIDs: []uuid.UUID{usd.Data.ID, eur.Data.ID},
	})

	assert.Equal(suite.T(), "Checking", account.Data.Name)
	assert.Equal(suite.T(), models.AccountTypeDebit, account.Data.Type)

	// Currency IDs are ordered by currency code
	assert.Equal(suite.T(), []uuid.UUID{eur.Data.ID, usd.Data.ID}, account.Data.CurrencyIDs)
}

func (suite *TestSuiteStandard) TestAccountsCreateInvalid() {
	currency := createTestCurrency(suite.T(), v1.CurrencyEditable{})

	tests := []struct {
		name    string
		account v1.AccountEditable
		err     string
	}{
		{
			"No currencies",
			v1.AccountEditable{Name: "No currencies", Type: models.AccountTypeDebit},
			"an account must reference at least one currency",
		},
		{
			"Unknown currency",
			v1.AccountEditable{Name: "Unknown currency", Type: models.AccountTypeDebit, CurrencyIDs: []uuid.UUID{uuid.New()}},
			"there is no",
		},
		{
			"Invalid type",
			v1.AccountEditable{Name: "Invalid type", Type: "checking", CurrencyIDs: []uuid.UUID{currency.Data.ID}},
			models.ErrAccountTypeInvalid.Error(),
		},
		{
			"Empty name",
			v1.AccountEditable{Name: "   ", Type: models.AccountTypeDebit, CurrencyIDs: []uuid.UUID{currency.Data.ID}},
			models.ErrNameEmpty.Error(),
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body := []v1.AccountEditable{tt.account}

			r := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest, http.StatusNotFound)

			var response v1.AccountCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Data[0].Error, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsCreateDuplicateName() {
	_ = createTestAccount(suite.T(), v1.AccountEditable{Name: "Unique Account"})

	r := createTestAccount(suite.T(), v1.AccountEditable{Name: "Unique Account"}, http.StatusBadRequest)
	assert.Nil(suite.T(), r.Data)
}

// TestAccountsGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestAccountsGetSingle() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Account", a.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No Account with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/accounts/%s", tt.id), "")

			var account v1.AccountResponse
			test.DecodeResponse(t, &r, &account)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsGetFilter() {
	_ = createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", Type: models.AccountTypeDebit})
	_ = createTestAccount(suite.T(), v1.AccountEditable{Name: "Visa", Type: models.AccountTypeCredit})
	_ = createTestAccount(suite.T(), v1.AccountEditable{Name: "Broker", Type: models.AccountTypeInvestment})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"No filter", "", 3},
		{"Type debit", "type=debit", 1},
		{"Type credit", "type=credit", 1},
		{"Name partial match", "name=Check", 1},
		{"Search", "search=vis", 1},
		{"No matches", "name=DoesNotExist", 0},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AccountListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.count, len(response.Data))
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsGetFilterInvalidType() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts?type=checking", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountsUpdate() {
	account := createTestAccount(suite.T(), v1.AccountEditable{Name: "Old name"})

	r := test.Request(suite.T(), http.MethodPatch, account.Data.Links.Self, map[string]any{
		"name": "New name",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "New name", updated.Data.Name)
}

func (suite *TestSuiteStandard) TestAccountsUpdateCurrencies() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})
	chf := createTestCurrency(suite.T(), v1.CurrencyEditable{Code: "CHF", Name: "Swiss Franc"})

	r := test.Request(suite.T(), http.MethodPatch, account.Data.Links.Self, map[string]any{
		"currencyIds": []string{chf.Data.ID.String()},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), []uuid.UUID{chf.Data.ID}, updated.Data.CurrencyIDs)
}

func (suite *TestSuiteStandard) TestAccountsUpdateInvalid() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Invalid type", map[string]any{"type": "checking"}, http.StatusBadRequest},
		{"Empty name", map[string]any{"name": "   "}, http.StatusBadRequest},
		{"Empty currency list", map[string]any{"currencyIds": []string{}}, http.StatusBadRequest},
		{"Broken JSON", `{ "name": `, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, account.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsDelete() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})

	r := test.Request(suite.T(), http.MethodDelete, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountsDeleteBlocked() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: &account.Data.ID})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: &account.Data.ID})

	// The probe announces the dependents
	r := test.Request(suite.T(), http.MethodGet, account.Data.Links.Transactions, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var probe v1.TransactionCountResponse
	test.DecodeResponse(suite.T(), &r, &probe)
	assert.Equal(suite.T(), int64(2), probe.Data.Count)

	// Without an action the deletion is refused
	r = test.Request(suite.T(), http.MethodDelete, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	var blocked v1.DeletionBlockedResponse
	test.DecodeResponse(suite.T(), &r, &blocked)
	assert.Equal(suite.T(), int64(2), blocked.Transactions)
	assert.Contains(suite.T(), blocked.Actions, "deleteAll")
	assert.NotContains(suite.T(), blocked.Actions, "setNull")

	// The account and its transactions still exist
	r = test.Request(suite.T(), http.MethodGet, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestAccountsDeleteCascade() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: &account.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, account.Data.Links.Self+"?action=deleteAll", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountsDeleteNameReusable() {
	account := createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking"})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: &account.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, account.Data.Links.Self+"?action=deleteAll", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The deletion is permanent, the name is available again
	_ = createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking"})
}

func (suite *TestSuiteStandard) TestAccountsCreateFailureFreesName() {
	// The account is created before its currencies are set, a failure rolls
	// the creation back
	body := []v1.AccountEditable{{Name: "Savings", Type: models.AccountTypeDebit, CurrencyIDs: []uuid.UUID{uuid.New()}}}
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	_ = createTestAccount(suite.T(), v1.AccountEditable{Name: "Savings"})
}

func (suite *TestSuiteStandard) TestAccountsDeleteCancel() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: &account.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, account.Data.Links.Self+"?action=cancel", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestAccountsDeleteInvalidAction() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name   string
		action string
	}{
		{"setNull is not allowed for accounts", "setNull"},
		{"Unknown action", "explode"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodDelete, account.Data.Links.Self+"?action="+tt.action, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}
