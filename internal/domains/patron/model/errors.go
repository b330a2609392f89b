package model

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/response"
)

var (
	ErrPatronNotFound = errors.New("patron not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrLoanCountBounds means a conditional loan-count update would have
	// left the counter outside [0, MaxActiveLoans]. A concurrent borrow
	// losing the race for the last free slot ends up here.
	ErrLoanCountBounds = errors.New("active loan count adjustment out of bounds")
)

var patronErrorMap = map[error]struct {
	Status  int
	Title   string
	Message string
}{
	ErrPatronNotFound: {
		Status:  http.StatusNotFound,
		Title:   "Patron not found",
		Message: "The specified patron does not exist",
	},
	ErrDuplicateEmail: {
		Status:  http.StatusConflict,
		Title:   "Email already registered",
		Message: "A patron with this email already exists",
	},
	ErrLoanCountBounds: {
		Status:  http.StatusConflict,
		Title:   "Loan count conflict",
		Message: "Patron loan count changed concurrently. Please retry",
	},
}

// HandlePatronError maps domain errors to HTTP responses. Returns true if
// an error was written.
func HandlePatronError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, config := range patronErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, config.Status, config.Title, config.Message)
			return true
		}
	}

	log.Printf("[Handler] Patron error: %v", err)
	response.ErrorResponse(c, http.StatusInternalServerError, "Internal error", "Internal server error")
	return true
}
