package customer

import (
	"strings"

	"restaurant-reservations/internal/pkg/apperrors"
)

// Customer is one row of the customers table. A zero CustomerID marks the
// entity as transient; Save assigns the store-generated id on first insert.
type Customer struct {
	CustomerID int64   `json:"customerId"`
	FirstName  string  `json:"firstName"`
	MiddleName *string `json:"middleName,omitempty"`
	LastName   string  `json:"lastName"`
	Phone      string  `json:"phone"`
	Notes      string  `json:"notes"`
}

// NewCustomer builds a transient customer. Notes are normalized at
// construction: an absent value is stored as the empty string, never nil.
func NewCustomer(firstName, lastName, phone string, middleName, notes *string) (*Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, apperrors.NewValidationError("firstName", "first name cannot be empty")
	}
	if lastName == "" {
		return nil, apperrors.NewValidationError("lastName", "last name cannot be empty")
	}

	var middle *string
	if middleName != nil && strings.TrimSpace(*middleName) != "" {
		m := strings.TrimSpace(*middleName)
		middle = &m
	}

	return &Customer{
		FirstName:  firstName,
		MiddleName: middle,
		LastName:   lastName,
		Phone:      strings.TrimSpace(phone),
		Notes:      NormalizeNotes(notes),
	}, nil
}

// NormalizeNotes collapses an absent notes value to the empty string so the
// entity never carries a nil. Present text is kept unchanged.
func NormalizeNotes(notes *string) string {
	if notes == nil {
		return ""
	}
	return *notes
}

// FullName joins first, middle (when present) and last name with single spaces.
func (c *Customer) FullName() string {
	if c.MiddleName != nil && *c.MiddleName != "" {
		return c.FirstName + " " + *c.MiddleName + " " + c.LastName
	}
	return c.FirstName + " " + c.LastName
}

// Persisted reports whether the customer has a store-assigned identity.
func (c *Customer) Persisted() bool {
	return c.CustomerID != 0
}
