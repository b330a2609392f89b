package model

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogModel "library-backend/internal/domains/catalog/model"
	patronModel "library-backend/internal/domains/patron/model"
	"library-backend/internal/shared/response"
)

var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrAlreadyReturned     = errors.New("loan is already returned")
	ErrBorrowLimitExceeded = errors.New("patron has reached the maximum number of active loans")
	ErrItemUnavailable     = errors.New("no copies available for borrowing")
)

var circulationErrorMap = map[error]struct {
	Status  int
	Title   string
	Message string
}{
	ErrLoanNotFound: {
		Status:  http.StatusNotFound,
		Title:   "Loan not found",
		Message: "The specified loan does not exist",
	},
	ErrAlreadyReturned: {
		Status:  http.StatusConflict,
		Title:   "Already returned",
		Message: "This loan has already been returned",
	},
	ErrBorrowLimitExceeded: {
		Status:  http.StatusConflict,
		Title:   "Borrow limit exceeded",
		Message: "The patron already holds the maximum number of active loans",
	},
	ErrItemUnavailable: {
		Status:  http.StatusConflict,
		Title:   "Item unavailable",
		Message: "No copies of this item are currently available",
	},
	patronModel.ErrPatronNotFound: {
		Status:  http.StatusNotFound,
		Title:   "Patron not found",
		Message: "The specified patron does not exist",
	},
	catalogModel.ErrItemNotFound: {
		Status:  http.StatusNotFound,
		Title:   "Item not found",
		Message: "The specified catalog item does not exist",
	},
}

// HandleCirculationError maps domain errors to HTTP responses, including
// the patron and catalog lookups a borrow performs. Returns true if an
// error was written.
func HandleCirculationError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, config := range circulationErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, config.Status, config.Title, config.Message)
			return true
		}
	}

	log.Printf("[Handler] Circulation error: %v", err)
	response.ErrorResponse(c, http.StatusInternalServerError, "Internal error", "Internal server error")
	return true
}
