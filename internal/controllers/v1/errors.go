package v1

import (
	"errors"
	"net/http"

	"github.com/centavo/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrDeletionNeedsConfirmation) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

// deletionBlocked responds with 409 and the number of dependent transactions
// when a deletion cannot proceed without an explicit action.
func deletionBlocked(c *gin.Context, count func(*gorm.DB) (int64, error), actions []string) {
	transactions, err := count(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusConflict, DeletionBlockedResponse{
		Error:        models.ErrDeletionNeedsConfirmation.Error(),
		Transactions: transactions,
		Actions:      actions,
	})
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Account errors
var (
	errAccountNeedsCurrency = errors.New("an account must reference at least one currency")
)

// Group errors
var (
	errGroupNeedsCategory = errors.New("a group must contain at least one category")
)

// Transaction errors
var (
	errNoTransactionIDs = errors.New("you must specify at least one transaction ID")
)
