package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/catalog/service"
	"library-backend/internal/shared/response"
)

type CatalogHandler struct {
	service service.ServiceInterface
}

func NewCatalogHandler(service service.ServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// AddItem handles POST /items.
func (h *CatalogHandler) AddItem(c *gin.Context) {
	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid request", "Request body is not valid JSON")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", "Request validation failed", err)
		return
	}

	item, err := h.service.AddItem(c.Request.Context(), req)
	if err != nil {
		model.HandleCatalogError(c, err)
		return
	}

	c.Header("Location", "/api/v1/items/"+item.ID.String())
	response.Success(c, http.StatusCreated, item)
}

// GetItem handles GET /items/:id.
func (h *CatalogHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid id", "Item id must be a UUID")
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		model.HandleCatalogError(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}
