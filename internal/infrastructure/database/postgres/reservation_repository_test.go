package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"restaurant-reservations/internal/domain/reservation"
	"restaurant-reservations/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

var reservationStartAt = time.Date(2024, time.April, 3, 19, 0, 0, 0, time.UTC)

func reservationTestRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "customer_id", "num_guests", "start_at", "notes"})
}

func setupReservationRepo(t *testing.T) (context.Context, *ReservationRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewReservationRepository(mockPool, logger)

	return ctx, repo, mockPool
}

func TestSaveNewReservationInsertsAndAssignsID(t *testing.T) {
	ctx, repo, mockPool := setupReservationRepo(t)
	defer mockPool.Close()

	notes := "window seat"
	res, err := reservation.New(1, 4, reservationStartAt, &notes)
	assert.NoError(t, err)

	query := `
        INSERT INTO reservations (customer_id, num_guests, start_at, notes)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		int64(1),
		4,
		reservationStartAt,
		"window seat",
	).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))

	err = repo.Save(ctx, res)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), res.ID())
	assert.True(t, res.Persisted())
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveNewReservationRejectsUnassigned(t *testing.T) {
	ctx, repo, mockPool := setupReservationRepo(t)
	defer mockPool.Close()

	res, err := reservation.New(0, 2, reservationStartAt, nil)
	assert.NoError(t, err)

	err = repo.Save(ctx, res)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveExistingReservationUpdatesWithoutCustomerID(t *testing.T) {
	ctx, repo, mockPool := setupReservationRepo(t)
	defer mockPool.Close()

	res, err := reservation.FromSnapshot(reservation.Snapshot{
		ID:         10,
		CustomerID: 1,
		NumGuests:  6,
		StartAt:    reservationStartAt,
		Notes:      "birthday",
	})
	assert.NoError(t, err)

	query := `
        UPDATE reservations
        SET num_guests = $1,
            start_at = $2,
            notes = $3
        WHERE id = $4`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(
		6,
		reservationStartAt,
		"birthday",
		int64(10),
	).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.Save(ctx, res)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveExistingReservationNotFound(t *testing.T) {
	ctx, repo, mockPool := setupReservationRepo(t)
	defer mockPool.Close()

	res, err := reservation.FromSnapshot(reservation.Snapshot{
		ID:         999,
		CustomerID: 1,
		NumGuests:  2,
		StartAt:    reservationStartAt,
	})
	assert.NoError(t, err)

	query := `
        UPDATE reservations
        SET num_guests = $1,
            start_at = $2,
            notes = $3
        WHERE id = $4`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(
		2,
		reservationStartAt,
		"",
		int64(999),
	).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Save(ctx, res)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorContains(t, err, "999")
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindReservationByIDReturnOne(t *testing.T) {
	ctx, repo, mockPool := setupReservationRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, customer_id, num_guests, start_at, notes
        FROM reservations
        WHERE id = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(10)).
		WillReturnRows(reservationTestRows().
			AddRow(int64(10), int64(1), 4, reservationStartAt, "window seat"))

	res, err := repo.FindByID(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), res.ID())
	assert.Equal(t, int64(1), res.CustomerID())
	assert.Equal(t, 4, res.NumGuests())
	assert.Equal(t, "window seat", res.Notes())
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindReservationByIDReturnNone(t *testing.T) {
	ctx, repo, mockPool := setupReservationRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, customer_id, num_guests, start_at, notes
        FROM reservations
        WHERE id = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(404)).WillReturnError(pgx.ErrNoRows)

	res, err := repo.FindByID(ctx, 404)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorContains(t, err, "no such reservation: 404")
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindReservationByIDRejectsCorruptRow(t *testing.T) {
	ctx, repo, mockPool := setupReservationRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, customer_id, num_guests, start_at, notes
        FROM reservations
        WHERE id = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(10)).
		WillReturnRows(reservationTestRows().
			AddRow(int64(10), int64(1), 0, reservationStartAt, ""))

	res, err := repo.FindByID(ctx, 10)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindReservationsByCustomerInInsertionOrder(t *testing.T) {
	ctx, repo, mockPool := setupReservationRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, customer_id, num_guests, start_at, notes
        FROM reservations
        WHERE customer_id = $1
        ORDER BY id`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(1)).
		WillReturnRows(reservationTestRows().
			AddRow(int64(10), int64(1), 4, reservationStartAt, "").
			AddRow(int64(12), int64(1), 2, reservationStartAt.Add(48*time.Hour), "anniversary"))

	reservations, err := repo.FindByCustomer(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, reservations, 2)
	assert.Equal(t, int64(10), reservations[0].ID())
	assert.Equal(t, int64(12), reservations[1].ID())
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindReservationsByCustomerReturnsEmptySlice(t *testing.T) {
	ctx, repo, mockPool := setupReservationRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, customer_id, num_guests, start_at, notes
        FROM reservations
        WHERE customer_id = $1
        ORDER BY id`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(2)).
		WillReturnRows(reservationTestRows())

	reservations, err := repo.FindByCustomer(ctx, 2)
	assert.NoError(t, err)
	assert.NotNil(t, reservations)
	assert.Len(t, reservations, 0)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCountStartingBetween(t *testing.T) {
	ctx, repo, mockPool := setupReservationRepo(t)
	defer mockPool.Close()

	query := `
        SELECT COUNT(*)
        FROM reservations
        WHERE start_at >= $1 AND start_at < $2`

	from := reservationStartAt
	to := from.Add(24 * time.Hour)

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := repo.CountStartingBetween(ctx, from, to)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
