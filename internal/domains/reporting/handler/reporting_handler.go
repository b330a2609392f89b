package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogModel "library-backend/internal/domains/catalog/model"
	patronModel "library-backend/internal/domains/patron/model"
	"library-backend/internal/domains/reporting/service"
	"library-backend/internal/shared/response"
)

type ReportingHandler struct {
	service service.ServiceInterface
}

func NewReportingHandler(service service.ServiceInterface) *ReportingHandler {
	return &ReportingHandler{service: service}
}

// ListAvailable handles GET /items.
func (h *ReportingHandler) ListAvailable(c *gin.Context) {
	var req catalogModel.ListItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid query", "Query parameters are not valid")
		return
	}

	items, err := h.service.ListAvailable(c.Request.Context(), req.ToFilter())
	if err != nil {
		log.Printf("[Handler] Availability listing error: %v", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "Internal error", "Internal server error")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{Count: len(items)})
}

// GetPatronHistory handles GET /patrons/:id/history.
func (h *ReportingHandler) GetPatronHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid id", "Patron id must be a UUID")
		return
	}

	entries, err := h.service.GetPatronHistory(c.Request.Context(), id)
	if err != nil {
		patronModel.HandlePatronError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, entries, &response.Meta{Count: len(entries)})
}

// GetOverdueLoans handles GET /reports/overdue.
func (h *ReportingHandler) GetOverdueLoans(c *gin.Context) {
	entries, err := h.service.GetOverdueLoans(c.Request.Context(), time.Now())
	if err != nil {
		log.Printf("[Handler] Overdue report error: %v", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "Internal error", "Internal server error")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, entries, &response.Meta{Count: len(entries)})
}
