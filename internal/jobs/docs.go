// Package jobs provides scheduled background tasks for the order lifecycle engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the commerce service.
//
// # Available Jobs
//
// 1. StaleOrderCancellationJob - Runs every minute to cancel pending orders
// that have gone unpaid past the configured TTL.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cancelOrderHandler, listOrdersHandler, ttl, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The sweep treats a lost race against a concurrent payment or cancel as
// an expected outcome and moves on.
// - Other per-order failures are logged and do not abort the sweep.
package jobs
