package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	// Create writes the order and its items in one transaction: either
	// everything lands or nothing does.
	Create(ctx context.Context, o *Order, items []OrderItem) error
	GetByNumber(ctx context.Context, orderNumber string) (*Order, []OrderItem, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order, items []OrderItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO orders (id, order_number, customer_name, customer_email, customer_phone,
                        shipping_address, city, postal_code, total_amount, status,
                        payment_method, notes, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,''),$9,$10,$11,NULLIF($12,''),NOW(),NOW())
  `, o.ID, o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.ShippingAddress, o.City, o.PostalCode, o.TotalAmount, o.Status,
		o.PaymentMethod, o.Notes); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, product_name, product_price, quantity, subtotal, created_at)
      VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())
    `, it.ID, o.ID, it.ProductID, it.ProductName, it.ProductPrice, it.Quantity, it.Subtotal); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByNumber(ctx context.Context, orderNumber string) (*Order, []OrderItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	if err := r.db.QueryRow(ctx, `
    SELECT id, order_number, customer_name, customer_email, customer_phone,
           shipping_address, city, COALESCE(postal_code,''), total_amount::text, status,
           payment_method, COALESCE(notes,''), created_at, updated_at
    FROM orders WHERE order_number=$1
  `, orderNumber).Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.ShippingAddress, &o.City, &o.PostalCode, &o.TotalAmount, &o.Status,
		&o.PaymentMethod, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		// A failing read must surface as retryable, not as a missing order.
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, COALESCE(product_id::text,''), product_name, product_price::text, quantity, subtotal::text
    FROM order_items WHERE order_id=$1
  `, o.ID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductPrice, &it.Quantity, &it.Subtotal); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}
	return &o, items, rows.Err()
}
