package dto

import (
	"fmt"
	"strconv"
	"time"

	"restaurant-reservations/internal/domain/reservation"
)

type CreateReservationRequest struct {
	NumGuests int     `json:"numGuests"`
	StartAt   string  `json:"startAt"`
	Notes     *string `json:"notes"`
}

func (r *CreateReservationRequest) Validate() error {
	if r.NumGuests < 1 {
		return fmt.Errorf("numGuests must be greater than 0")
	}
	if _, err := time.Parse(time.RFC3339, r.StartAt); err != nil || r.StartAt == "" {
		return fmt.Errorf("invalid startAt format (use RFC 3339): %w", err)
	}
	return nil
}

func (r *CreateReservationRequest) ParseStartAt() time.Time {
	t, _ := time.Parse(time.RFC3339, r.StartAt)
	return t
}

type UpdateReservationRequest struct {
	NumGuests int     `json:"numGuests"`
	StartAt   string  `json:"startAt"`
	Notes     *string `json:"notes"`
}

func (r *UpdateReservationRequest) Validate() error {
	if r.NumGuests < 1 {
		return fmt.Errorf("numGuests must be greater than 0")
	}
	if _, err := time.Parse(time.RFC3339, r.StartAt); err != nil || r.StartAt == "" {
		return fmt.Errorf("invalid startAt format (use RFC 3339): %w", err)
	}
	return nil
}

func (r *UpdateReservationRequest) ParseStartAt() time.Time {
	t, _ := time.Parse(time.RFC3339, r.StartAt)
	return t
}

type ReservationResponse struct {
	ReservationID    string    `json:"reservationId"`
	CustomerID       string    `json:"customerId"`
	NumGuests        int       `json:"numGuests"`
	StartAt          time.Time `json:"startAt"`
	FormattedStartAt string    `json:"formattedStartAt"`
	Notes            string    `json:"notes"`
}

func NewReservationResponse(res *reservation.Reservation) ReservationResponse {
	if res == nil {
		return ReservationResponse{}
	}

	return ReservationResponse{
		ReservationID:    strconv.FormatInt(res.ID(), 10),
		CustomerID:       strconv.FormatInt(res.CustomerID(), 10),
		NumGuests:        res.NumGuests(),
		StartAt:          res.StartAt(),
		FormattedStartAt: res.FormattedStartAt(),
		Notes:            res.Notes(),
	}
}

func NewReservationListResponse(reservations []*reservation.Reservation) []ReservationResponse {
	responses := make([]ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		responses = append(responses, NewReservationResponse(res))
	}
	return responses
}
