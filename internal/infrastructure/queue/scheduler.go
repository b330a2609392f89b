package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"library-backend/internal/shared"
	"library-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterReportJobs wires up the periodic reporting tasks.
func (s *Scheduler) RegisterReportJobs() error {
	return s.registerRefreshOverdueReportJob()
}

// The overdue snapshot is cached with a two minute TTL, so a refresh every
// minute keeps API reads on a warm cache.
func (s *Scheduler) registerRefreshOverdueReportJob() error {
	payload, err := json.Marshal(shared.RefreshOverdueReportPayload{RequestedAt: time.Now()})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRefreshOverdueReport, payload)

	_, err = s.scheduler.Register(
		"* * * * *", // every minute
		task,
		asynq.Queue(shared.QueueReports),
		asynq.MaxRetry(1),
		asynq.Timeout(30*time.Second),
	)

	if err != nil {
		logger.Error("Failed to register RefreshOverdueReport job", err)
		return err
	}

	logger.Info("Registered RefreshOverdueReport: every minute", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
