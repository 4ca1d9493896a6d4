package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, o *Order, items []Item) error
	GetByNumber(ctx context.Context, orderNumber string) (*Order, []Item, error)
	GetByID(ctx context.Context, id string) (*Order, []Item, error)
	ListByUser(ctx context.Context, userID string, page, limit int) ([]Order, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Create persists the order header, its line items and the stock decrements in
// one transaction. The decrement is conditional on remaining stock, so a
// concurrent placement that would drive stock negative rolls everything back
// and surfaces InsufficientStockError even though the earlier validation read
// passed.
func (r *PGRepo) Create(ctx context.Context, o *Order, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO orders (id, order_number, user_id, customer_name, customer_email,
                        customer_phone, customer_address, customer_city, customer_postal_code,
                        notes, total_amount, status, payment_method, created_at, updated_at)
    VALUES ($1,$2,NULLIF($3,''),$4,$5,NULLIF($6,''),$7,$8,NULLIF($9,''),
            NULLIF($10,''),$11::numeric,$12,$13,NOW(),NOW())
  `, o.ID, o.OrderNumber, o.UserID, o.CustomerName, o.CustomerEmail,
		o.CustomerPhone, o.CustomerAddress, o.CustomerCity, o.CustomerPostalCode,
		o.Notes, o.TotalAmount, o.Status, o.PaymentMethod); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, total_price)
      VALUES ($1,$2,$3,$4,$5::numeric,$6::numeric)
    `, it.ID, o.ID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
      UPDATE products
      SET stock = stock - $2, updated_at = NOW()
      WHERE id = $1 AND is_active AND stock >= $2
    `, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return &InsufficientStockError{Product: it.ProductName}
		}
	}
	return tx.Commit(ctx)
}

const orderCols = `
	o.id, o.order_number, COALESCE(o.user_id,''), o.customer_name, o.customer_email,
	COALESCE(o.customer_phone,''), o.customer_address, o.customer_city,
	COALESCE(o.customer_postal_code,''), COALESCE(o.notes,''),
	o.total_amount::text, o.status, o.payment_method, o.created_at, o.updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }, o *Order, extra ...any) error {
	dest := []any{&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerName, &o.CustomerEmail,
		&o.CustomerPhone, &o.CustomerAddress, &o.CustomerCity,
		&o.CustomerPostalCode, &o.Notes,
		&o.TotalAmount, &o.Status, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt}
	return row.Scan(append(dest, extra...)...)
}

func (r *PGRepo) GetByNumber(ctx context.Context, orderNumber string) (*Order, []Item, error) {
	return r.get(ctx, "o.order_number", orderNumber)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, []Item, error) {
	return r.get(ctx, "o.id", id)
}

func (r *PGRepo) get(ctx context.Context, col, val string) (*Order, []Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	err := scanOrder(r.db.QueryRow(ctx, `
    SELECT `+orderCols+`,
           COALESCE(u.first_name,''), COALESCE(u.last_name,''), COALESCE(u.email,'')
    FROM orders o
    LEFT JOIN users u ON o.user_id = u.id
    WHERE `+col+` = $1
  `, val), &o, &o.UserFirstName, &o.UserLastName, &o.UserEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `
    SELECT oi.id, oi.order_id, oi.product_id, oi.quantity,
           oi.unit_price::text, oi.total_price::text,
           p.name, COALESCE(p.image1,'')
    FROM order_items oi
    JOIN products p ON oi.product_id = p.id
    WHERE oi.order_id = $1
  `, o.ID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.TotalPrice, &it.ProductName, &it.ProductImage); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}
	return &o, items, rows.Err()
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, page, limit int) ([]Order, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
    SELECT `+orderCols+`, COUNT(oi.id)
    FROM orders o
    LEFT JOIN order_items oi ON o.id = oi.order_id
    WHERE o.user_id = $1
    GROUP BY o.id
    ORDER BY o.created_at DESC
    LIMIT $2 OFFSET $3
  `, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o, &o.TotalItems); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders
    SET status = $2, updated_at = NOW()
    WHERE id = $1
  `, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
