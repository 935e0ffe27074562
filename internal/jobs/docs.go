// Package jobs provides scheduled background tasks for the fulfillment
// stepper.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PointerRepairJob - Runs every minute to re-derive the current-stage
// pointer from persisted outcomes and write it back, so a pointer lost to a
// partial write never survives longer than one interval.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(repairPointerHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Repair failures are logged and retried on the next tick; the job never
// aborts the process.
package jobs
