package main

import (
	"github.com/hibiken/asynq"

	"library-backend/internal/domains/circulation/job"
	"library-backend/internal/shared"
	"library-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	overdueReport *job.OverdueReportHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		overdueReport: job.NewOverdueReportHandler(c.ReportingService),
	}
}

// RegisterHandlers binds task types to their handlers.
func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(shared.TypeRefreshOverdueReport, r.overdueReport)
}
