package model

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/response"
)

var (
	ErrItemNotFound  = errors.New("catalog item not found")
	ErrDuplicateISBN = errors.New("ISBN already exists")

	// ErrAvailabilityBounds means a conditional availability update would
	// have driven the counter outside [0, quantity]. It signals a race that
	// was correctly rejected, not corruption.
	ErrAvailabilityBounds = errors.New("availability adjustment out of bounds")
)

var catalogErrorMap = map[error]struct {
	Status  int
	Title   string
	Message string
}{
	ErrItemNotFound: {
		Status:  http.StatusNotFound,
		Title:   "Item not found",
		Message: "The specified catalog item does not exist",
	},
	ErrDuplicateISBN: {
		Status:  http.StatusConflict,
		Title:   "ISBN already exists",
		Message: "An item with this ISBN is already registered",
	},
	ErrAvailabilityBounds: {
		Status:  http.StatusConflict,
		Title:   "Availability conflict",
		Message: "Item availability changed concurrently. Please retry",
	},
}

// HandleCatalogError maps domain errors to HTTP responses. Returns true if
// an error was written.
func HandleCatalogError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, config := range catalogErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, config.Status, config.Title, config.Message)
			return true
		}
	}

	log.Printf("[Handler] Catalog error: %v", err)
	response.ErrorResponse(c, http.StatusInternalServerError, "Internal error", "Internal server error")
	return true
}
