package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"restaurant-reservations/internal/event"
)

type ReservationService interface {
	// CreateReservation books a table for the customer. The owning customer
	// is fixed at creation and can never be changed afterwards.
	CreateReservation(ctx context.Context, customerID int64, numGuests int, startAt time.Time, notes *string) (*Reservation, error)

	// UpdateReservation changes guest count, start time and notes of an
	// existing reservation. The owning customer is left untouched.
	UpdateReservation(ctx context.Context, reservationID int64, numGuests int, startAt time.Time, notes *string) (*Reservation, error)

	GetReservation(ctx context.Context, reservationID int64) (*Reservation, error)

	ListForCustomer(ctx context.Context, customerID int64) ([]*Reservation, error)
}

var _ ReservationService = (*reservationService)(nil)

type reservationService struct {
	repo   ReservationRepository
	pub    event.Publisher
	logger *slog.Logger
}

func NewReservationService(repo ReservationRepository, pub event.Publisher, logger *slog.Logger) ReservationService {
	if repo == nil {
		panic("reservation repository cannot be nil")
	}
	if pub == nil {
		pub = event.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewReservationService, using default stderr handler")
	}

	return &reservationService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "reservationService")),
	}
}

func newReservationEventPayload(res *Reservation) event.ReservationEventPayload {
	if res == nil {
		return event.ReservationEventPayload{}
	}
	return event.ReservationEventPayload{
		ReservationID: res.ID(),
		CustomerID:    res.CustomerID(),
		NumGuests:     res.NumGuests(),
		StartAt:       res.StartAt(),
		Notes:         res.Notes(),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, customerID int64, numGuests int, startAt time.Time, notes *string) (*Reservation, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to create reservation")

	res, err := New(customerID, numGuests, startAt, notes)
	if err != nil {
		logCtx.WarnContext(ctx, "Reservation validation failed", slog.Any("error", err))
		return nil, err
	}

	if err := s.repo.Save(ctx, res); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save new reservation", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new reservation: %w", err)
	}

	logCtx.InfoContext(ctx, "Reservation created successfully", slog.Int64("reservationID", res.ID()))
	createdEvent := event.ReservationCreatedEvent{
		Timestamp: time.Now(),
		Payload:   newReservationEventPayload(res),
	}
	if pubErr := s.pub.PublishReservationCreated(ctx, createdEvent); pubErr != nil {
		logCtx.ErrorContext(ctx, "Reservation created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	return res, nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, reservationID int64, numGuests int, startAt time.Time, notes *string) (*Reservation, error) {
	logCtx := s.logger.With(slog.Int64("reservationID", reservationID))
	logCtx.InfoContext(ctx, "Attempting to update reservation")

	res, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		logCtx.WarnContext(ctx, "Reservation lookup failed before update", slog.Any("error", err))
		return nil, err
	}

	if err := res.SetNumGuests(numGuests); err != nil {
		return nil, err
	}
	if err := res.SetStartAt(startAt); err != nil {
		return nil, err
	}
	res.SetNotes(notes)

	if err := s.repo.Save(ctx, res); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to update reservation", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	logCtx.InfoContext(ctx, "Reservation updated successfully")
	return res, nil
}

func (s *reservationService) GetReservation(ctx context.Context, reservationID int64) (*Reservation, error) {
	s.logger.DebugContext(ctx, "Fetching reservation", slog.Int64("reservationID", reservationID))
	return s.repo.FindByID(ctx, reservationID)
}

func (s *reservationService) ListForCustomer(ctx context.Context, customerID int64) ([]*Reservation, error) {
	s.logger.DebugContext(ctx, "Listing reservations for customer", slog.Int64("customerID", customerID))
	return s.repo.FindByCustomer(ctx, customerID)
}
