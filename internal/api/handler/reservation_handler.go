package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"restaurant-reservations/internal/api/handler/dto"
	"restaurant-reservations/internal/domain/customer"
	"restaurant-reservations/internal/domain/reservation"
	"restaurant-reservations/internal/infrastructure/monitoring"
	"restaurant-reservations/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type ReservationHandler struct {
	service         reservation.ReservationService
	customerService customer.CustomerService
	logger          *slog.Logger
}

func NewReservationHandler(s reservation.ReservationService, cs customer.CustomerService, l *slog.Logger) *ReservationHandler {
	if s == nil {
		panic("reservation service cannot be nil")
	}
	if cs == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &ReservationHandler{
		service:         s,
		customerService: cs,
		logger:          l.With("component", "ReservationHandler"),
	}
}

func getReservationIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "reservationID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: reservationID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid reservationID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateReservation handles POST /customers/{customerID}/reservations
// @Summary Book a table for a customer
// @Description Creates a reservation owned by the customer in the path. The owning customer is
// @Description fixed at creation and can never be reassigned.
// @Tags Reservations
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param request body dto.CreateReservationRequest true "Reservation creation request"
// @Success 201 {object} dto.ReservationResponse "Reservation successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/reservations [post]
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.CreateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	// Resolve the customer first so a missing owner surfaces as 404, not as
	// a foreign key failure from the store.
	if _, err := h.customerService.GetCustomer(r.Context(), customerID); err != nil {
		h.logger.WarnContext(r.Context(), "Customer lookup failed before creating reservation", slog.Any("error", err))
		respondError(w, err)
		return
	}

	createdReservation, err := h.service.CreateReservation(r.Context(), customerID, req.NumGuests, req.ParseStartAt(), req.Notes)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create reservation", slog.Any("error", err))
		respondError(w, err)
		return
	}
	monitoring.Business.ReservationsCreatedTotal.Inc()

	resp := dto.NewReservationResponse(createdReservation)
	h.logger.InfoContext(r.Context(), "Reservation created successfully", slog.String("reservationID", resp.ReservationID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetReservation handles GET /reservations/{reservationID}
// @Summary Retrieve reservation details
// @Tags Reservations
// @Produce json
// @Param reservationID path int true "Reservation ID" Minimum(1)
// @Success 200 {object} dto.ReservationResponse "Reservation details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid reservation ID format"
// @Failure 404 {object} dto.ErrorResponse "Reservation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reservations/{reservationID} [get]
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := getReservationIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get reservation ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	res, err := h.service.GetReservation(r.Context(), reservationID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get reservation", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewReservationResponse(res))
}

// UpdateReservation handles PATCH /reservations/{reservationID}
// @Summary Update a reservation
// @Description Changes guest count, start time and notes. The owning customer never changes.
// @Tags Reservations
// @Accept json
// @Produce json
// @Param reservationID path int true "Reservation ID" Minimum(1)
// @Param request body dto.UpdateReservationRequest true "Reservation update request"
// @Success 200 {object} dto.ReservationResponse "Reservation updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 404 {object} dto.ErrorResponse "Reservation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reservations/{reservationID} [patch]
func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := getReservationIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get reservation ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.UpdateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	updatedReservation, err := h.service.UpdateReservation(r.Context(), reservationID, req.NumGuests, req.ParseStartAt(), req.Notes)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to update reservation", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewReservationResponse(updatedReservation))
}
