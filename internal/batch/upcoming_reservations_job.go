package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"restaurant-reservations/internal/domain/reservation"
	"restaurant-reservations/internal/infrastructure/monitoring"
)

// UpcomingReservationsJob counts reservations starting within the next day
// and exposes the figure as a gauge so the kitchen can plan staffing.
type UpcomingReservationsJob struct {
	reservationRepo reservation.ReservationRepository
	logger          *slog.Logger
}

func NewUpcomingReservationsJob(reservationRepo reservation.ReservationRepository, logger *slog.Logger) *UpcomingReservationsJob {
	if reservationRepo == nil || logger == nil {
		panic("UpcomingReservationsJob dependencies cannot be nil")
	}
	return &UpcomingReservationsJob{
		reservationRepo: reservationRepo,
		logger:          logger.With("job", "UpcomingReservations"),
	}
}

func (j *UpcomingReservationsJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting daily upcoming reservations report job.")

	from := time.Now()
	to := from.Add(24 * time.Hour)

	count, err := j.reservationRepo.CountStartingBetween(ctx, from, to)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to count upcoming reservations, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to count upcoming reservations: %w", err)
	}

	monitoring.Business.UpcomingReservations.Set(float64(count))

	j.logger.InfoContext(ctx, "Upcoming reservations report job finished.",
		slog.Int64("upcoming", count),
		slog.Duration("duration", time.Since(startTime)))
	return nil
}
