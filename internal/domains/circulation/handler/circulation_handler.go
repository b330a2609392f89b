package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/circulation/model"
	"library-backend/internal/domains/circulation/service"
	"library-backend/internal/shared/response"
)

type CirculationHandler struct {
	service service.ServiceInterface
}

func NewCirculationHandler(service service.ServiceInterface) *CirculationHandler {
	return &CirculationHandler{service: service}
}

// Borrow handles POST /loans.
func (h *CirculationHandler) Borrow(c *gin.Context) {
	var req model.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid request", "Request body is not valid JSON")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", "Request validation failed", err)
		return
	}

	loan, err := h.service.Borrow(c.Request.Context(), req.PatronID, req.ItemID, req.DurationDays)
	if err != nil {
		model.HandleCirculationError(c, err)
		return
	}

	c.Header("Location", "/api/v1/loans/"+loan.ID.String())
	response.Success(c, http.StatusCreated, loan)
}

// Return handles POST /loans/:id/return.
func (h *CirculationHandler) Return(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid id", "Loan id must be a UUID")
		return
	}

	loan, err := h.service.Return(c.Request.Context(), id)
	if err != nil {
		model.HandleCirculationError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// GetLoan handles GET /loans/:id.
func (h *CirculationHandler) GetLoan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid id", "Loan id must be a UUID")
		return
	}

	loan, err := h.service.GetLoan(c.Request.Context(), id)
	if err != nil {
		model.HandleCirculationError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}
