package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"restaurant-reservations/internal/domain/customer"
	"restaurant-reservations/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

// customerRow mirrors the customers table columns. Rows are scanned into this
// shape and mapped to the entity exactly once, at the repository boundary.
type customerRow struct {
	ID         int64
	FirstName  string
	MiddleName *string
	LastName   string
	Phone      *string
	Notes      string
}

func (row customerRow) toEntity() *customer.Customer {
	phone := ""
	if row.Phone != nil {
		phone = *row.Phone
	}
	return &customer.Customer{
		CustomerID: row.ID,
		FirstName:  row.FirstName,
		MiddleName: row.MiddleName,
		LastName:   row.LastName,
		Phone:      phone,
		Notes:      row.Notes,
	}
}

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	if cust.CustomerID == 0 {
		return r.createCustomer(ctx, cust)
	}
	return r.updateCustomer(ctx, cust)
}

func (r *CustomerRepository) createCustomer(ctx context.Context, cust *customer.Customer) error {
	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("lastName", cust.LastName))

	query := `
        INSERT INTO customers (first_name, middle_name, last_name, phone, notes)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	err := r.db.QueryRow(ctx, query,
		cust.FirstName,
		cust.MiddleName,
		cust.LastName,
		cust.Phone,
		cust.Notes,
	).Scan(&cust.CustomerID)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.CustomerID))
	return nil
}

func (r *CustomerRepository) updateCustomer(ctx context.Context, cust *customer.Customer) error {
	r.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", cust.CustomerID))

	query := `
        UPDATE customers
        SET first_name = $1,
            middle_name = $2,
            last_name = $3,
            phone = $4,
            notes = $5
        WHERE id = $6`

	cmdTag, err := r.db.Exec(ctx, query,
		cust.FirstName,
		cust.MiddleName,
		cust.LastName,
		cust.Phone,
		cust.Notes,
		cust.CustomerID,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return apperrors.NewNotFoundError("customer", cust.CustomerID)
	}

	r.logger.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	r.logger.DebugContext(ctx, "Attempting to find customer by ID", slog.Int64("customerID", customerID))

	query := `
        SELECT id, first_name, middle_name, last_name, phone, notes
        FROM customers
        WHERE id = $1`

	var row customerRow
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&row.ID,
		&row.FirstName,
		&row.MiddleName,
		&row.LastName,
		&row.Phone,
		&row.Notes,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found", slog.Int64("customerID", customerID))
			return nil, apperrors.NewNotFoundError("customer", customerID)
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return row.toEntity(), nil
}

// FindAll returns every customer ordered by last name then first name. No
// pagination; the result is unbounded.
func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	r.logger.DebugContext(ctx, "Attempting to find all customers")

	query := `
        SELECT id, first_name, middle_name, last_name, phone, notes
        FROM customers
        ORDER BY last_name, first_name`

	return r.queryCustomers(ctx, query)
}

// Search matches the keyword case-insensitively against the space-joined full
// name. An empty keyword produces the pattern "%%", which matches every row;
// the search box doubles as "show everything", so this is kept on purpose.
func (r *CustomerRepository) Search(ctx context.Context, keyword string) ([]*customer.Customer, error) {
	r.logger.DebugContext(ctx, "Attempting to search customers", slog.String("keyword", keyword))

	query := `
        SELECT id, first_name, middle_name, last_name, phone, notes
        FROM customers
        WHERE CONCAT_WS(' ', first_name, middle_name, last_name) ILIKE $1
        ORDER BY last_name, first_name`

	return r.queryCustomers(ctx, query, "%"+keyword+"%")
}

// FindTopTen ranks customers by descending reservation count. The join
// excludes customers with no reservations; equal counts are ordered by last
// name then first name so output is stable.
func (r *CustomerRepository) FindTopTen(ctx context.Context) ([]*customer.Customer, error) {
	r.logger.DebugContext(ctx, "Attempting to find top ten customers by reservation count")

	query := `
        SELECT c.id, c.first_name, c.middle_name, c.last_name, c.phone, c.notes
        FROM customers AS c
            JOIN reservations AS r ON c.id = r.customer_id
        GROUP BY c.id
        ORDER BY COUNT(c.id) DESC, c.last_name, c.first_name
        LIMIT 10`

	return r.queryCustomers(ctx, query)
}

func (r *CustomerRepository) queryCustomers(ctx context.Context, query string, args ...any) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var row customerRow
		err := rows.Scan(
			&row.ID,
			&row.FirstName,
			&row.MiddleName,
			&row.LastName,
			&row.Phone,
			&row.Notes,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, row.toEntity())
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.DebugContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}
		if pgErr.Code == "23503" {
			contextLogger.Warn("Database foreign key violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidArgument, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
