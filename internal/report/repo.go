// Package report provides the admin-facing aggregate read queries over orders
// and products.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sahra-perfumes/storefront/internal/catalog"
	"github.com/sahra-perfumes/storefront/internal/order"
)

type SalesStats struct {
	TotalOrders     int    `json:"total_orders"`
	TotalRevenue    string `json:"total_revenue"`
	AvgOrderValue   string `json:"avg_order_value"`
	PendingOrders   int    `json:"pending_orders"`
	CompletedOrders int    `json:"completed_orders"`
}

type DailySale struct {
	Date    string `json:"date"`
	Orders  int    `json:"orders"`
	Revenue string `json:"revenue"`
}

type TopProduct struct {
	Name         string `json:"name"`
	Image        string `json:"image1,omitempty"`
	TotalSold    int    `json:"total_sold"`
	TotalRevenue string `json:"total_revenue"`
}

type Dashboard struct {
	SalesStats  SalesStats        `json:"salesStats"`
	DailySales  []DailySale       `json:"dailySales"`
	TopProducts []TopProduct      `json:"topProducts"`
	LowStock    []catalog.Product `json:"lowStock"`
}

type SalesRow struct {
	Period   string `json:"period"`
	Orders   int    `json:"orders"`
	Revenue  string `json:"revenue"`
	AvgOrder string `json:"avg_order"`
}

type Repository interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Orders(ctx context.Context, page, limit int, status, search string) ([]order.Order, int, error)
	Sales(ctx context.Context, start, end time.Time, groupBy string) ([]SalesRow, error)
}

type PGRepo struct {
	db      *pgxpool.Pool
	catalog catalog.Repository
}

func NewPGRepo(db *pgxpool.Pool, cat catalog.Repository) *PGRepo {
	return &PGRepo{db: db, catalog: cat}
}

func (r *PGRepo) Dashboard(ctx context.Context) (*Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var d Dashboard
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(total_amount),0)::text,
		       COALESCE(ROUND(AVG(total_amount),2),0)::text,
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'delivered')
		FROM orders
		WHERE created_at >= NOW() - INTERVAL '30 days'
	`).Scan(&d.SalesStats.TotalOrders, &d.SalesStats.TotalRevenue,
		&d.SalesStats.AvgOrderValue, &d.SalesStats.PendingOrders,
		&d.SalesStats.CompletedOrders); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT to_char(created_at::date, 'YYYY-MM-DD'),
		       COUNT(*),
		       COALESCE(SUM(total_amount),0)::text
		FROM orders
		WHERE created_at >= NOW() - INTERVAL '7 days'
		GROUP BY created_at::date
		ORDER BY created_at::date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ds DailySale
		if err := rows.Scan(&ds.Date, &ds.Orders, &ds.Revenue); err != nil {
			return nil, err
		}
		d.DailySales = append(d.DailySales, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `
		SELECT p.name, COALESCE(p.image1,''),
		       SUM(oi.quantity), SUM(oi.total_price)::text
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		JOIN orders o ON oi.order_id = o.id
		WHERE o.created_at >= NOW() - INTERVAL '30 days'
		GROUP BY p.id, p.name, p.image1
		ORDER BY SUM(oi.quantity) DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var tp TopProduct
		if err := rows.Scan(&tp.Name, &tp.Image, &tp.TotalSold, &tp.TotalRevenue); err != nil {
			return nil, err
		}
		d.TopProducts = append(d.TopProducts, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	low, err := r.catalog.LowStock(ctx, 5, 10)
	if err != nil {
		return nil, err
	}
	d.LowStock = low
	return &d, nil
}

func (r *PGRepo) Orders(ctx context.Context, page, limit int, status, search string) ([]order.Order, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	where := ""
	args := []any{}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		where += fmt.Sprintf(" AND (o.order_number ILIKE $%d OR o.customer_name ILIKE $%d OR o.customer_email ILIKE $%d)",
			len(args), len(args), len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders o WHERE TRUE`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT o.id, o.order_number, COALESCE(o.user_id,''), o.customer_name, o.customer_email,
		       COALESCE(o.customer_phone,''), o.customer_address, o.customer_city,
		       COALESCE(o.customer_postal_code,''), COALESCE(o.notes,''),
		       o.total_amount::text, o.status, o.payment_method, o.created_at, o.updated_at,
		       COALESCE(u.first_name,''), COALESCE(u.last_name,''), COALESCE(u.email,''),
		       COUNT(oi.id)
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		LEFT JOIN order_items oi ON o.id = oi.order_id
		WHERE TRUE%s
		GROUP BY o.id, u.first_name, u.last_name, u.email
		ORDER BY o.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerName, &o.CustomerEmail,
			&o.CustomerPhone, &o.CustomerAddress, &o.CustomerCity,
			&o.CustomerPostalCode, &o.Notes,
			&o.TotalAmount, &o.Status, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt,
			&o.UserFirstName, &o.UserLastName, &o.UserEmail, &o.TotalItems); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

var groupFormats = map[string]string{
	"day":   "YYYY-MM-DD",
	"month": "YYYY-MM",
	"year":  "YYYY",
}

func (r *PGRepo) Sales(ctx context.Context, start, end time.Time, groupBy string) ([]SalesRow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	format, ok := groupFormats[groupBy]
	if !ok {
		format = groupFormats["day"]
	}

	rows, err := r.db.Query(ctx, `
		SELECT to_char(created_at, $1),
		       COUNT(*),
		       COALESCE(SUM(total_amount),0)::text,
		       COALESCE(ROUND(AVG(total_amount),2),0)::text
		FROM orders
		WHERE created_at BETWEEN $2 AND $3
		GROUP BY to_char(created_at, $1)
		ORDER BY to_char(created_at, $1) DESC
	`, format, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SalesRow
	for rows.Next() {
		var sr SalesRow
		if err := rows.Scan(&sr.Period, &sr.Orders, &sr.Revenue, &sr.AvgOrder); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}
