package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/patron/model"
	"library-backend/internal/domains/patron/service"
	"library-backend/internal/shared/response"
)

type PatronHandler struct {
	service service.ServiceInterface
}

func NewPatronHandler(service service.ServiceInterface) *PatronHandler {
	return &PatronHandler{service: service}
}

// Register handles POST /patrons.
func (h *PatronHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid request", "Request body is not valid JSON")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", "Request validation failed", err)
		return
	}

	patron, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		model.HandlePatronError(c, err)
		return
	}

	c.Header("Location", "/api/v1/patrons/"+patron.ID.String())
	response.Success(c, http.StatusCreated, patron)
}

// GetPatron handles GET /patrons/:id.
func (h *PatronHandler) GetPatron(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid id", "Patron id must be a UUID")
		return
	}

	patron, err := h.service.GetPatron(c.Request.Context(), id)
	if err != nil {
		model.HandlePatronError(c, err)
		return
	}

	response.Success(c, http.StatusOK, patron)
}
