package reservation

import (
	"fmt"
	"strings"
	"time"

	"restaurant-reservations/internal/pkg/apperrors"
)

// Reservation is one row of the reservations table. Fields are unexported so
// every mutation goes through an accessor and is validated at assignment time,
// before the store is ever reached.
type Reservation struct {
	id         int64
	customerID int64
	numGuests  int
	startAt    time.Time
	notes      string
}

// Snapshot mirrors the reservations table columns. It is the only shape the
// repository layer exchanges with this package.
type Snapshot struct {
	ID         int64
	CustomerID int64
	NumGuests  int
	StartAt    time.Time
	Notes      string
}

// New builds a transient reservation for the given customer. A zero
// customerID leaves the reservation unassigned; AssignCustomer may then be
// called exactly once.
func New(customerID int64, numGuests int, startAt time.Time, notes *string) (*Reservation, error) {
	r := &Reservation{notes: NormalizeNotes(notes)}
	if err := r.SetNumGuests(numGuests); err != nil {
		return nil, err
	}
	if err := r.SetStartAt(startAt); err != nil {
		return nil, err
	}
	if customerID != 0 {
		if err := r.AssignCustomer(customerID); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// FromSnapshot rehydrates a persisted reservation from a store row. The row
// must satisfy the same invariants New enforces.
func FromSnapshot(s Snapshot) (*Reservation, error) {
	r, err := New(s.CustomerID, s.NumGuests, s.StartAt, &s.Notes)
	if err != nil {
		return nil, err
	}
	r.id = s.ID
	return r, nil
}

// NormalizeNotes collapses an absent notes value to the empty string.
func NormalizeNotes(notes *string) string {
	if notes == nil {
		return ""
	}
	return *notes
}

func (r *Reservation) ID() int64 { return r.id }

func (r *Reservation) CustomerID() int64 { return r.customerID }

func (r *Reservation) NumGuests() int { return r.numGuests }

func (r *Reservation) StartAt() time.Time { return r.startAt }

func (r *Reservation) Notes() string { return r.notes }

func (r *Reservation) Persisted() bool { return r.id != 0 }

func (r *Reservation) Assigned() bool { return r.customerID != 0 }

// AssignCustomer sets the owning customer exactly once. Any later call fails,
// even with the value already held, and leaves the field untouched.
func (r *Reservation) AssignCustomer(customerID int64) error {
	if r.customerID != 0 {
		return apperrors.NewValidationError("customerId", "reservation cannot be reassigned to a different customer")
	}
	if customerID <= 0 {
		return apperrors.NewValidationError("customerId", "customer id must be a positive number")
	}
	r.customerID = customerID
	return nil
}

func (r *Reservation) SetNumGuests(numGuests int) error {
	if numGuests < 1 {
		return apperrors.NewValidationError("numGuests", "number of guests must be greater than 0")
	}
	r.numGuests = numGuests
	return nil
}

func (r *Reservation) SetStartAt(startAt time.Time) error {
	if startAt.IsZero() {
		return apperrors.NewValidationError("startAt", "you must enter a valid date")
	}
	r.startAt = startAt
	return nil
}

func (r *Reservation) SetNotes(notes *string) {
	r.notes = NormalizeNotes(notes)
}

// MarkPersisted records the store-assigned id after the first insert.
func (r *Reservation) MarkPersisted(id int64) error {
	if r.id != 0 {
		return apperrors.NewValidationError("id", "reservation already has an id")
	}
	if id <= 0 {
		return apperrors.NewValidationError("id", "id must be a positive number")
	}
	r.id = id
	return nil
}

// Snapshot projects the reservation back into its row shape for persistence.
func (r *Reservation) Snapshot() Snapshot {
	return Snapshot{
		ID:         r.id,
		CustomerID: r.customerID,
		NumGuests:  r.numGuests,
		StartAt:    r.startAt,
		Notes:      r.notes,
	}
}

// FormattedStartAt renders the start time for display, e.g.
// "April 3rd 2024, 2:30 pm". Presentation only, never persisted.
func (r *Reservation) FormattedStartAt() string {
	t := r.startAt
	return fmt.Sprintf("%s %s %d, %s",
		t.Format("January"),
		ordinal(t.Day()),
		t.Year(),
		strings.ToLower(t.Format("3:04 PM")),
	)
}

func ordinal(day int) string {
	suffix := "th"
	switch day % 100 {
	case 11, 12, 13:
	default:
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", day, suffix)
}
