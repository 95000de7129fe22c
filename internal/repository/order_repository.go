package repository

import (
	"context"
	"database/sql"

	"github.com/lukaswerth/business-number-service/internal/model"
)

// OrderRepo provides access to the orders table.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// Create inserts an order row for an issued number and returns its ID.
func (r *OrderRepo) Create(ctx context.Context, number string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO orders (order_number) VALUES (?)", number)
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

// FindByNumber returns the order carrying the given number, or ErrNotFound.
func (r *OrderRepo) FindByNumber(ctx context.Context, number string) (model.Order, error) {
	var (
		o       model.Order
		custNum sql.NullString
		details []byte
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, order_number, customer_number, order_details, created_at FROM orders WHERE order_number=? LIMIT 1",
		number).Scan(&o.ID, &o.OrderNumber, &custNum, &details, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Order{}, ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	if custNum.Valid {
		o.CustomerNumber = &custNum.String
	}
	o.OrderDetails = details
	return o, nil
}

// ListByCustomer returns every order linked to a customer number, newest
// first.  An empty result is not an error.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerNumber string) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, order_number, customer_number, order_details, created_at FROM orders WHERE customer_number=? ORDER BY id DESC",
		customerNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var (
			o       model.Order
			custNum sql.NullString
			details []byte
		)
		if err := rows.Scan(&o.ID, &o.OrderNumber, &custNum, &details, &o.CreatedAt); err != nil {
			return nil, err
		}
		if custNum.Valid {
			o.CustomerNumber = &custNum.String
		}
		o.OrderDetails = details
		out = append(out, o)
	}
	return out, rows.Err()
}
