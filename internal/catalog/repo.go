// Package catalog provides the repository interface and PostgreSQL implementation
// for the product/category catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Query struct {
	Category string
	Gender   string
	Type     string
	MinPrice string
	MaxPrice string
	Search   string
	Sort     string
	Order    string
	Page     int
	Limit    int
}

type Repository interface {
	List(ctx context.Context, q Query) ([]Product, int, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Categories(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product, updatePrice, updateStock bool) (bool, error)
	Deactivate(ctx context.Context, id string) (bool, error)
	LowStock(ctx context.Context, threshold, limit int) ([]Product, error)
	Stats(ctx context.Context) (*Stats, []CategoryCount, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const productCols = `
	p.id, p.name, COALESCE(p.description,''), p.price::text, p.stock,
	COALESCE(p.category_id,''), COALESCE(c.name,''), p.gender, p.type,
	COALESCE(p.image1,''), COALESCE(p.image2,''), COALESCE(p.image3,''), COALESCE(p.image4,''),
	p.is_active, p.created_at, p.updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }, p *Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.CategoryID, &p.CategoryName, &p.Gender, &p.Type,
		&p.Image1, &p.Image2, &p.Image3, &p.Image4,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

// filterClause builds the WHERE tail shared by List and its count query.
func filterClause(q Query, args *[]any) string {
	var b strings.Builder
	add := func(cond string, val any) {
		*args = append(*args, val)
		fmt.Fprintf(&b, " AND "+cond, len(*args))
	}
	if q.Category != "" {
		add("p.category_id = $%d", q.Category)
	}
	if q.Gender != "" {
		add("p.gender = $%d", q.Gender)
	}
	if q.Type != "" {
		add("p.type = $%d", q.Type)
	}
	if q.MinPrice != "" {
		add("p.price >= $%d::numeric", q.MinPrice)
	}
	if q.MaxPrice != "" {
		add("p.price <= $%d::numeric", q.MaxPrice)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		*args = append(*args, "%"+s+"%")
		fmt.Fprintf(&b, " AND (p.name ILIKE $%d OR p.description ILIKE $%d)", len(*args), len(*args))
	}
	return b.String()
}

var allowedSorts = map[string]string{"name": "p.name", "price": "p.price", "created_at": "p.created_at"}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 12
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	sortCol, ok := allowedSorts[q.Sort]
	if !ok {
		sortCol = "p.name"
	}
	dir := "ASC"
	if strings.EqualFold(q.Order, "DESC") {
		dir = "DESC"
	}

	var args []any
	where := filterClause(q, &args)

	var total int
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM products p WHERE p.is_active`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.is_active%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, productCols, where, sortCol, dir, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Product
	err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+productCols+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id=$1 AND p.is_active
	`, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) Categories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, COALESCE(description,''), created_at
		FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, price, stock, category_id, gender, type,
		                      image1, image2, image3, image4, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4::numeric,$5,NULLIF($6,''),$7,$8,
		        NULLIF($9,''),NULLIF($10,''),NULLIF($11,''),NULLIF($12,''),TRUE,NOW(),NOW())
	`, p.ID, p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.Gender, p.Type,
		p.Image1, p.Image2, p.Image3, p.Image4)
	return err
}

func (r *PGRepo) Update(ctx context.Context, p *Product, updatePrice, updateStock bool) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name        = COALESCE(NULLIF($2,''), name),
		    description = COALESCE(NULLIF($3,''), description),
		    price       = CASE WHEN $4 THEN $5::numeric ELSE price END,
		    stock       = CASE WHEN $6 THEN $7 ELSE stock END,
		    category_id = COALESCE(NULLIF($8,''), category_id),
		    gender      = COALESCE(NULLIF($9,''), gender),
		    type        = COALESCE(NULLIF($10,''), type),
		    image1      = COALESCE(NULLIF($11,''), image1),
		    image2      = COALESCE(NULLIF($12,''), image2),
		    image3      = COALESCE(NULLIF($13,''), image3),
		    image4      = COALESCE(NULLIF($14,''), image4),
		    updated_at  = NOW()
		WHERE id = $1
	`, p.ID, p.Name, p.Description, updatePrice, nullIfEmpty(p.Price), updateStock, p.Stock,
		p.CategoryID, p.Gender, p.Type, p.Image1, p.Image2, p.Image3, p.Image4)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// The price placeholder still needs a castable value when updatePrice is false.
func nullIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// Deactivate soft-deletes: orders keep referencing the row, catalog reads skip it.
func (r *PGRepo) Deactivate(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGRepo) LowStock(ctx context.Context, threshold, limit int) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+productCols+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.stock <= $1 AND p.is_active
		ORDER BY p.stock ASC
		LIMIT $2
	`, threshold, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Stats(ctx context.Context) (*Stats, []CategoryCount, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s Stats
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE stock = 0),
		       COUNT(*) FILTER (WHERE stock <= 5),
		       COALESCE(ROUND(AVG(price),2),0)::text,
		       COALESCE(SUM(stock),0)
		FROM products WHERE is_active
	`).Scan(&s.TotalProducts, &s.OutOfStock, &s.LowStock, &s.AvgPrice, &s.TotalStock); err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT c.name, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON c.id = p.category_id AND p.is_active
		GROUP BY c.id, c.name
		ORDER BY COUNT(p.id) DESC
	`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var byCat []CategoryCount
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Name, &cc.Count); err != nil {
			return nil, nil, err
		}
		byCat = append(byCat, cc)
	}
	return &s, byCat, rows.Err()
}
