package jobs

import (
	"context"
	"time"

	"docintake-backend/internal/logger"
)

// ExpireStaleRequests is the expiry sweep: one set-based update flipping every
// ACTIVE request past its expiry date to EXPIRED, across all tenants.
// Re-running with no newly expired rows is a no-op.
func (jr *JobRunner) ExpireStaleRequests() {
	jr.runWithRecovery("ExpireStaleRequests", func() {
		ctx := context.Background()

		count, err := jr.store.RequestRepository.BulkExpire(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to expire stale requests", "error", err)
			return
		}
		logger.Info("Expired stale requests", "count", count)
	})
}

// DispatchPendingEvents retries outbox rows whose subscriber delivery never
// completed, oldest first.
func (jr *JobRunner) DispatchPendingEvents() {
	jr.runWithRecovery("DispatchPendingEvents", func() {
		ctx := context.Background()

		pending, err := jr.store.EventRepository.ListPending(ctx, 100)
		if err != nil {
			logger.Error("Failed to list pending events", "error", err)
			return
		}
		for _, event := range pending {
			jr.events.Dispatch(ctx, event)
		}
		if len(pending) > 0 {
			logger.Info("Re-dispatched pending events", "count", len(pending))
		}
	})
}
