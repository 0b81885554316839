package dto

import (
	"fmt"
	"strconv"
	"strings"

	"restaurant-reservations/internal/domain/customer"
)

type CreateCustomerRequest struct {
	FirstName  string  `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName   string  `json:"lastName"`
	Phone      string  `json:"phone"`
	Notes      *string `json:"notes"`
}

func (r *CreateCustomerRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return fmt.Errorf("firstName cannot be empty")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return fmt.Errorf("lastName cannot be empty")
	}
	return nil
}

func (r *CreateCustomerRequest) ToParams() customer.CreateCustomerParams {
	return customer.CreateCustomerParams{
		FirstName:  r.FirstName,
		MiddleName: r.MiddleName,
		LastName:   r.LastName,
		Phone:      r.Phone,
		Notes:      r.Notes,
	}
}

type CustomerResponse struct {
	CustomerID string  `json:"customerId"`
	FirstName  string  `json:"firstName"`
	MiddleName *string `json:"middleName,omitempty"`
	LastName   string  `json:"lastName"`
	FullName   string  `json:"fullName"`
	Phone      string  `json:"phone"`
	Notes      string  `json:"notes"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		CustomerID: strconv.FormatInt(cust.CustomerID, 10),
		FirstName:  cust.FirstName,
		MiddleName: cust.MiddleName,
		LastName:   cust.LastName,
		FullName:   cust.FullName(),
		Phone:      cust.Phone,
		Notes:      cust.Notes,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		responses = append(responses, NewCustomerResponse(cust))
	}
	return responses
}
