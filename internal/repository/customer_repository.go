package repository

import (
	"context"
	"database/sql"

	"github.com/lukaswerth/business-number-service/internal/model"
)

// CustomerRepo provides access to the customers table.  Rows are created
// right after a customer number is issued and are append-only from the
// application's point of view.
type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

// Create inserts a customer row for an issued number and returns its ID.
// The unique index on customer_number turns a double insert into
// ErrDuplicateNumber.
func (r *CustomerRepo) Create(ctx context.Context, number string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO customers (customer_number) VALUES (?)", number)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateNumber
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// FindByNumber returns the customer carrying the given number, or
// ErrNotFound.  A missing row is an expected outcome, never a failure.
func (r *CustomerRepo) FindByNumber(ctx context.Context, number string) (model.Customer, error) {
	var (
		c     model.Customer
		name  sql.NullString
		email sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, customer_number, name, email, created_at FROM customers WHERE customer_number=? LIMIT 1",
		number).Scan(&c.ID, &c.CustomerNumber, &name, &email, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Customer{}, ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	if name.Valid {
		c.Name = &name.String
	}
	if email.Valid {
		c.Email = &email.String
	}
	return c, nil
}

// ListRecent returns the newest customers, most recent first.
func (r *CustomerRepo) ListRecent(ctx context.Context, limit int) ([]model.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, customer_number, name, email, created_at FROM customers ORDER BY id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Customer
	for rows.Next() {
		var (
			c     model.Customer
			name  sql.NullString
			email sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.CustomerNumber, &name, &email, &c.CreatedAt); err != nil {
			return nil, err
		}
		if name.Valid {
			c.Name = &name.String
		}
		if email.Valid {
			c.Email = &email.String
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
