package reservation

import (
	"context"
	"time"
)

type ReservationRepository interface {
	// Save inserts when the reservation is transient, assigning the id from
	// the store, and updates numGuests, startAt and notes otherwise. The
	// owning customer is never updated.
	Save(ctx context.Context, reservation *Reservation) error

	FindByID(ctx context.Context, reservationID int64) (*Reservation, error)

	// FindByCustomer returns every reservation owned by the customer, in
	// primary-key order.
	FindByCustomer(ctx context.Context, customerID int64) ([]*Reservation, error)

	// CountStartingBetween counts reservations whose start time falls in
	// [from, to). Used by the daily report job.
	CountStartingBetween(ctx context.Context, from, to time.Time) (int64, error)
}
