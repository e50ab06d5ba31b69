package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("not found")
)

// Sort selects the data-layer ordering of a product read.
type Sort string

const (
	SortNewest Sort = "newest" // created_at DESC
	SortName   Sort = "name"   // name ASC
)

type Repository interface {
	List(ctx context.Context, sort Sort) ([]Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]Product, error)
	ListByBrand(ctx context.Context, brand string) ([]Product, error)
	ListFeatured(ctx context.Context, limit int) ([]Product, error)
	ListPromotions(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, q string) ([]Product, error)
	ListBrands(ctx context.Context) ([]string, error)

	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const productCols = `id, name, slug, COALESCE(description,''), price::text, original_price::text,
	COALESCE(image_url,''), COALESCE(images,'{}'), COALESCE(category_id::text,''), COALESCE(brand,''),
	in_stock, stock_quantity, featured, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.OriginalPrice,
		&p.ImageURL, &p.Images, &p.CategoryID, &p.Brand,
		&p.InStock, &p.StockQuantity, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	defer rows.Close()
	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PGRepo) List(ctx context.Context, sort Sort) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	order := `created_at DESC`
	if sort == SortName {
		order = `name ASC`
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		ORDER BY `+order)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+productCols+`
		FROM products WHERE slug=$1
	`, slug))
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (r *PGRepo) ListByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		WHERE category_id=$1
		ORDER BY created_at DESC
	`, categoryID)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *PGRepo) ListByBrand(ctx context.Context, brand string) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		WHERE brand ILIKE '%'||$1||'%'
		ORDER BY created_at DESC
	`, strings.TrimSpace(brand))
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *PGRepo) ListFeatured(ctx context.Context, limit int) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 8
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		WHERE featured
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *PGRepo) ListPromotions(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		WHERE original_price IS NOT NULL
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *PGRepo) Search(ctx context.Context, q string) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	search := strings.TrimSpace(q)
	rows, err := r.db.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		WHERE name ILIKE '%'||$1||'%' OR description ILIKE '%'||$1||'%' OR brand ILIKE '%'||$1||'%'
		ORDER BY created_at DESC
	`, search)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *PGRepo) ListBrands(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT brand FROM products
		WHERE brand IS NOT NULL AND brand <> ''
		ORDER BY brand
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListCategories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, slug, COALESCE(description,''), COALESCE(image_url,''), created_at, updated_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Category
	err := r.db.QueryRow(ctx, `
		SELECT id, name, slug, COALESCE(description,''), COALESCE(image_url,''), created_at, updated_at
		FROM categories WHERE slug=$1
	`, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &c, nil
}
