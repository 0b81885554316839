package event

import (
	"context"
	"time"
)

type CustomerEventPayload struct {
	CustomerID int64   `json:"customerId"`
	FirstName  string  `json:"firstName"`
	MiddleName *string `json:"middleName,omitempty"`
	LastName   string  `json:"lastName"`
	Phone      string  `json:"phone"`
	Notes      string  `json:"notes"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type ReservationEventPayload struct {
	ReservationID int64     `json:"reservationId"`
	CustomerID    int64     `json:"customerId"`
	NumGuests     int       `json:"numGuests"`
	StartAt       time.Time `json:"startAt"`
	Notes         string    `json:"notes"`
}

type ReservationCreatedEvent struct {
	Timestamp time.Time               `json:"timestamp"`
	Payload   ReservationEventPayload `json:"payload"`
}

type Publisher interface {
	PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error
	PublishReservationCreated(ctx context.Context, event ReservationCreatedEvent) error
}

// NoopPublisher satisfies Publisher when eventing is disabled in config.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	return nil
}

func (NoopPublisher) PublishReservationCreated(ctx context.Context, event ReservationCreatedEvent) error {
	return nil
}
