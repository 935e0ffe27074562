package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PointerRepairJob periodically re-derives and persists the current-stage
// pointer. The same repair runs once at startup; the job covers pointers
// lost while the process is up.
type PointerRepairJob struct {
	handler commands.RepairPointerCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPointerRepairJob creates a new pointer repair job running every minute.
func NewPointerRepairJob(handler commands.RepairPointerCommandHandler, logger *slog.Logger) *PointerRepairJob {
	return &PointerRepairJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "pointer_repair_job"),
	}
}

// Start begins the pointer repair job.
func (j *PointerRepairJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewRepairPointerCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Pointer repair command construction failed", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Pointer repair job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pointer repair job started (running every minute)")
	return nil
}

// Stop stops the pointer repair job.
func (j *PointerRepairJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pointer repair job stopped")
}
