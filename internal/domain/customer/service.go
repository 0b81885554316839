package customer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"restaurant-reservations/internal/domain/reservation"
	"restaurant-reservations/internal/event"
)

// CreateCustomerParams carries caller-supplied customer fields. MiddleName and
// Notes are pointers so an absent value can be told apart from an empty one;
// both are normalized before they reach the entity.
type CreateCustomerParams struct {
	FirstName  string
	MiddleName *string
	LastName   string
	Phone      string
	Notes      *string
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, params CreateCustomerParams) (*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, params CreateCustomerParams) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	SearchCustomers(ctx context.Context, keyword string) ([]*Customer, error)
	TopCustomers(ctx context.Context) ([]*Customer, error)
	ListReservations(ctx context.Context, customerID int64) ([]*reservation.Reservation, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo            CustomerRepository
	reservationRepo reservation.ReservationRepository
	pub             event.Publisher
	logger          *slog.Logger
}

func NewCustomerService(repo CustomerRepository, reservationRepo reservation.ReservationRepository, pub event.Publisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if reservationRepo == nil {
		panic("reservation repository cannot be nil")
	}
	if pub == nil {
		pub = event.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:            repo,
		reservationRepo: reservationRepo,
		pub:             pub,
		logger:          logger.With(slog.String("component", "customerService")),
	}
}

func newCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID: cust.CustomerID,
		FirstName:  cust.FirstName,
		MiddleName: cust.MiddleName,
		LastName:   cust.LastName,
		Phone:      cust.Phone,
		Notes:      cust.Notes,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, params CreateCustomerParams) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	cust, err := NewCustomer(params.FirstName, params.LastName, params.Phone, params.MiddleName, params.Notes)
	if err != nil {
		s.logger.WarnContext(ctx, "Customer validation failed", slog.Any("error", err))
		return nil, err
	}

	if err := s.repo.Save(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully saved new customer, publishing creation event", slog.Int64("customerID", cust.CustomerID))
	createdEvent := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload:   newCustomerEventPayload(cust),
	}
	if pubErr := s.pub.PublishCustomerCreated(ctx, createdEvent); pubErr != nil {
		s.logger.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	return cust, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, params CreateCustomerParams) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	existing, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		logCtx.WarnContext(ctx, "Customer lookup failed before update", slog.Any("error", err))
		return nil, err
	}

	updated, err := NewCustomer(params.FirstName, params.LastName, params.Phone, params.MiddleName, params.Notes)
	if err != nil {
		logCtx.WarnContext(ctx, "Customer validation failed", slog.Any("error", err))
		return nil, err
	}
	updated.CustomerID = existing.CustomerID

	if err := s.repo.Save(ctx, updated); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to update customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	logCtx.InfoContext(ctx, "Customer updated successfully")
	return updated, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	s.logger.DebugContext(ctx, "Fetching customer", slog.Int64("customerID", customerID))
	return s.repo.FindByID(ctx, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.DebugContext(ctx, "Listing all customers")
	return s.repo.FindAll(ctx)
}

func (s *customerService) SearchCustomers(ctx context.Context, keyword string) ([]*Customer, error) {
	keyword = strings.TrimSpace(keyword)
	s.logger.DebugContext(ctx, "Searching customers", slog.String("keyword", keyword))
	return s.repo.Search(ctx, keyword)
}

func (s *customerService) TopCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.DebugContext(ctx, "Fetching top customers by reservation count")
	return s.repo.FindTopTen(ctx)
}

// ListReservations resolves the relationship by id through the reservation
// repository; the customer entity never holds live reservation references.
func (s *customerService) ListReservations(ctx context.Context, customerID int64) ([]*reservation.Reservation, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.DebugContext(ctx, "Listing reservations for customer")

	if _, err := s.repo.FindByID(ctx, customerID); err != nil {
		logCtx.WarnContext(ctx, "Customer lookup failed before listing reservations", slog.Any("error", err))
		return nil, err
	}
	return s.reservationRepo.FindByCustomer(ctx, customerID)
}
