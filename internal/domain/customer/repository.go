package customer

import (
	"context"
)

type CustomerRepository interface {
	// Save inserts when the customer is transient, assigning CustomerID from
	// the store, and updates in place otherwise. One statement per call.
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	// FindAll returns every customer ordered by last name then first name.
	FindAll(ctx context.Context) ([]*Customer, error)

	// Search matches keyword case-insensitively as a substring of the
	// space-joined full name. An empty keyword matches every row.
	Search(ctx context.Context, keyword string) ([]*Customer, error)

	// FindTopTen returns at most ten customers ranked by descending
	// reservation count. Customers with no reservations never appear.
	FindTopTen(ctx context.Context) ([]*Customer, error)
}
