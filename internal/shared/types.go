package shared

import "time"

// Task types handled by cmd/worker.
const (
	TypeRefreshOverdueReport = "reports:refresh_overdue"
)

// Asynq queue names.
const (
	QueueReports = "reports"
)

// Cache keys shared between the API services and the worker.
// OverdueReportEpochKey holds a token that re-keys the overdue snapshot:
// returns bump it, writers suffix OverdueReportCacheKey with it, so a
// snapshot computed before a return commits is written under a key no
// later reader consults.
const (
	OverdueReportCacheKey     = "reports:overdue"
	OverdueReportEpochKey     = "reports:overdue:epoch"
	AvailableItemsCachePrefix = "items:available:"
)

// RefreshOverdueReportPayload is the payload for TypeRefreshOverdueReport.
type RefreshOverdueReportPayload struct {
	RequestedAt time.Time `json:"requestedAt"`
}
