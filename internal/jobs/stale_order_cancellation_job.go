package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// sweepBatchLimit caps how many stale orders one sweep cancels; anything
// beyond the cap is picked up by the next run.
const sweepBatchLimit = 100

// StaleOrderCancellationJob cancels pending orders that have gone unpaid for
// longer than the configured TTL. Runs every minute.
type StaleOrderCancellationJob struct {
	cancelHandler commands.CancelOrderCommandHandler
	listHandler   queries.ListOrdersQueryHandler
	ttl           time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewStaleOrderCancellationJob creates a job that sweeps stale pending orders.
// ttl is how long an unpaid pending order may live before cancellation.
func NewStaleOrderCancellationJob(
	cancelHandler commands.CancelOrderCommandHandler,
	listHandler queries.ListOrdersQueryHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *StaleOrderCancellationJob {
	return &StaleOrderCancellationJob{
		cancelHandler: cancelHandler,
		listHandler:   listHandler,
		ttl:           ttl,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "stale_order_cancellation_job"),
	}
}

// Start begins the sweep, running at the top of every minute.
func (j *StaleOrderCancellationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale order sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job started (running every minute)", "ttl", j.ttl)
	return nil
}

// Stop stops the job.
func (j *StaleOrderCancellationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job stopped")
}

func (j *StaleOrderCancellationJob) sweep(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.ttl)

	query, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{
		Status:        order.StatusPending.String(),
		PaymentStatus: order.PaymentPending.String(),
		DateTo:        &cutoff,
		SortBy:        "created_at",
		Limit:         sweepBatchLimit,
	})
	if err != nil {
		return err
	}

	page, err := j.listHandler.Handle(ctx, query)
	if err != nil {
		return err
	}

	for _, stale := range page.Orders {
		id, idErr := kernel.UUIDFromString(stale.ID)
		if idErr != nil {
			j.logger.ErrorContext(ctx, "Skipping stale order with bad ID", "id", stale.ID, "error", idErr)
			continue
		}

		cmd, cmdErr := commands.NewCancelOrderCommand(id, "payment not received in time", "system")
		if cmdErr != nil {
			return cmdErr
		}

		if _, cancelErr := j.cancelHandler.Handle(ctx, cmd); cancelErr != nil {
			// A concurrent payment or cancellation between the listing and
			// the cancel is an expected race, not a job failure.
			if errors.Is(cancelErr, order.ErrInvalidTransition) {
				continue
			}
			j.logger.ErrorContext(ctx, "Failed to cancel stale order",
				"order_number", stale.OrderNumber, "error", cancelErr)
			continue
		}

		j.logger.InfoContext(ctx, "Cancelled stale order", "order_number", stale.OrderNumber)
	}

	return nil
}
