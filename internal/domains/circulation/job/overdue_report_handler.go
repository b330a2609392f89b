package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	reportingService "library-backend/internal/domains/reporting/service"
	"library-backend/internal/shared"
	"library-backend/pkg/logger"
)

// OverdueReportHandler refreshes the cached overdue listing so API reads
// are served from a warm snapshot.
type OverdueReportHandler struct {
	reporting reportingService.ServiceInterface
}

func NewOverdueReportHandler(reporting reportingService.ServiceInterface) *OverdueReportHandler {
	return &OverdueReportHandler{reporting: reporting}
}

func (h *OverdueReportHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.RefreshOverdueReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// A corrupt payload will not get better on retry.
		return fmt.Errorf("unmarshal RefreshOverdueReport payload: %w", err)
	}

	count, err := h.reporting.RefreshOverdueReport(ctx, time.Now())
	if err != nil {
		logger.Error("OverdueReport: refresh failed", err)
		return err
	}

	logger.Info("overdue report refreshed", map[string]interface{}{
		"overdue_count": count,
	})

	return nil
}
