package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"restaurant-reservations/internal/domain/reservation"
	"restaurant-reservations/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

// reservationRow mirrors the reservations table columns.
type reservationRow struct {
	ID         int64
	CustomerID int64
	NumGuests  int
	StartAt    time.Time
	Notes      string
}

func (row reservationRow) toEntity() (*reservation.Reservation, error) {
	return reservation.FromSnapshot(reservation.Snapshot{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		NumGuests:  row.NumGuests,
		StartAt:    row.StartAt,
		Notes:      row.Notes,
	})
}

type ReservationRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ reservation.ReservationRepository = (*ReservationRepository)(nil)

func NewReservationRepository(db DBPool, logger *slog.Logger) *ReservationRepository {
	if db == nil {
		panic("DBPool cannot be nil for ReservationRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewReservationRepository, using default stderr handler")
	}
	return &ReservationRepository{
		db:     db,
		logger: logger.With("component", "ReservationRepository"),
	}
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	if res == nil {
		return fmt.Errorf("%w: reservation cannot be nil", apperrors.ErrInvalidArgument)
	}

	if !res.Persisted() {
		return r.createReservation(ctx, res)
	}
	return r.updateReservation(ctx, res)
}

func (r *ReservationRepository) createReservation(ctx context.Context, res *reservation.Reservation) error {
	if !res.Assigned() {
		return apperrors.NewValidationError("customerId", "reservation must be assigned to a customer before saving")
	}

	snap := res.Snapshot()
	r.logger.InfoContext(ctx, "Attempting to insert new reservation", slog.Int64("customerID", snap.CustomerID))

	query := `
        INSERT INTO reservations (customer_id, num_guests, start_at, notes)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		snap.CustomerID,
		snap.NumGuests,
		snap.StartAt,
		snap.Notes,
	).Scan(&id)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert reservation", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	if err := res.MarkPersisted(id); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "Reservation inserted successfully", slog.Int64("reservationID", id))
	return nil
}

// updateReservation never touches customer_id; the owning customer is fixed
// for the lifetime of the reservation.
func (r *ReservationRepository) updateReservation(ctx context.Context, res *reservation.Reservation) error {
	snap := res.Snapshot()
	r.logger.InfoContext(ctx, "Attempting to update reservation", slog.Int64("reservationID", snap.ID))

	query := `
        UPDATE reservations
        SET num_guests = $1,
            start_at = $2,
            notes = $3
        WHERE id = $4`

	cmdTag, err := r.db.Exec(ctx, query,
		snap.NumGuests,
		snap.StartAt,
		snap.Notes,
		snap.ID,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update reservation", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, reservation likely not found")
		return apperrors.NewNotFoundError("reservation", snap.ID)
	}

	r.logger.InfoContext(ctx, "Reservation updated successfully")
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, reservationID int64) (*reservation.Reservation, error) {
	r.logger.DebugContext(ctx, "Attempting to find reservation by ID", slog.Int64("reservationID", reservationID))

	query := `
        SELECT id, customer_id, num_guests, start_at, notes
        FROM reservations
        WHERE id = $1`

	var row reservationRow
	err := r.db.QueryRow(ctx, query, reservationID).Scan(
		&row.ID,
		&row.CustomerID,
		&row.NumGuests,
		&row.StartAt,
		&row.Notes,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Reservation not found", slog.Int64("reservationID", reservationID))
			return nil, apperrors.NewNotFoundError("reservation", reservationID)
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan reservation by ID", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	res, err := row.toEntity()
	if err != nil {
		r.logger.ErrorContext(ctx, "Stored reservation row violates entity invariants", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return res, nil
}

// FindByCustomer returns the customer's reservations in primary-key order.
func (r *ReservationRepository) FindByCustomer(ctx context.Context, customerID int64) ([]*reservation.Reservation, error) {
	r.logger.DebugContext(ctx, "Attempting to find reservations for customer", slog.Int64("customerID", customerID))

	query := `
        SELECT id, customer_id, num_guests, start_at, notes
        FROM reservations
        WHERE customer_id = $1
        ORDER BY id`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query reservations", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	reservations := make([]*reservation.Reservation, 0)
	for rows.Next() {
		var row reservationRow
		err := rows.Scan(
			&row.ID,
			&row.CustomerID,
			&row.NumGuests,
			&row.StartAt,
			&row.Notes,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan reservation row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan reservation row: %w", apperrors.ErrDatabase, err)
		}

		res, err := row.toEntity()
		if err != nil {
			r.logger.ErrorContext(ctx, "Stored reservation row violates entity invariants", slog.Any("error", err))
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		reservations = append(reservations, res)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating reservation rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating reservation rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.DebugContext(ctx, "Finished finding reservations", slog.Int("count", len(reservations)))
	return reservations, nil
}

func (r *ReservationRepository) CountStartingBetween(ctx context.Context, from, to time.Time) (int64, error) {
	r.logger.DebugContext(ctx, "Counting reservations in window", slog.Time("from", from), slog.Time("to", to))

	query := `
        SELECT COUNT(*)
        FROM reservations
        WHERE start_at >= $1 AND start_at < $2`

	var count int64
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count reservations", slog.Any("error", err))
		return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return count, nil
}
