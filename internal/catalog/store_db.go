package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	pgUniqueCode = "23505"
)

// products.brand_id carries no foreign key: a product may outlive its brand.
const schema = `
CREATE TABLE IF NOT EXISTS brands (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	slug        TEXT NOT NULL UNIQUE,
	logo_url    TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	website_url TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	price_cents      BIGINT NOT NULL DEFAULT 0,
	description      TEXT NOT NULL DEFAULT '',
	how_to_use       TEXT NOT NULL DEFAULT '',
	category         TEXT NOT NULL DEFAULT '',
	brand_id         TEXT NOT NULL DEFAULT '',
	image_url        TEXT NOT NULL DEFAULT '',
	slug             TEXT NOT NULL DEFAULT '',
	whatsapp_message TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const productColumns = `
	p.id, p.name, p.price_cents, p.description, p.how_to_use, p.category, p.brand_id,
	p.image_url, p.slug, p.whatsapp_message, p.created_at, p.updated_at,
	b.id, b.name, b.slug, b.logo_url, b.description, b.website_url, b.created_at, b.updated_at`

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, schema)
		return err
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT `+productColumns+`
			FROM products p
			LEFT JOIN brands b ON b.id = p.brand_id
			ORDER BY p.created_at DESC, p.id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 32)
		for rows.Next() {
			p, err := scanProduct(rows)
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) GetProduct(ctx context.Context, id string) (Product, bool, error) {
	var (
		p   Product
		err error
	)

	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		row := s.db.QueryRowContext(ctx, `
			SELECT `+productColumns+`
			FROM products p
			LEFT JOIN brands b ON b.id = p.brand_id
			WHERE p.id = $1
		`, id)
		p, err = scanProduct(row)
		return err
	})

	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (s *PostgresStore) ListBrands(ctx context.Context) ([]Brand, error) {
	var out []Brand

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, slug, logo_url, description, website_url, created_at, updated_at
			FROM brands
			ORDER BY name ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Brand, 0, 16)
		for rows.Next() {
			var b Brand
			if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.Description,
				&b.WebsiteURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
				return err
			}
			out = append(out, b)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) CreateBrand(ctx context.Context, b Brand) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO brands (id, name, slug, logo_url, description, website_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, b.ID, b.Name, b.Slug, b.LogoURL, b.Description, b.WebsiteURL, b.CreatedAt, b.UpdatedAt)

		if isUniqueViolation(err) {
			return ErrBrandExists
		}
		return err
	})
}

func (s *PostgresStore) UpdateBrand(ctx context.Context, b Brand) (bool, error) {
	var n int64

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE brands
			SET name = $2, slug = $3, logo_url = $4, description = $5, website_url = $6, updated_at = $7
			WHERE id = $1
		`, b.ID, b.Name, b.Slug, b.LogoURL, b.Description, b.WebsiteURL, b.UpdatedAt)
		if isUniqueViolation(err) {
			return ErrBrandExists
		}
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct reads productColumns; the brand half is NULL when the join
// found nothing.
func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var (
		bID, bName, bSlug, bLogo, bDesc, bSite sql.NullString
		bCreated, bUpdated                     sql.NullTime
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.PriceCents, &p.Description, &p.HowToUse, &p.Category, &p.BrandID,
		&p.ImageURL, &p.Slug, &p.WhatsAppMessage, &p.CreatedAt, &p.UpdatedAt,
		&bID, &bName, &bSlug, &bLogo, &bDesc, &bSite, &bCreated, &bUpdated,
	)
	if err != nil {
		return Product{}, err
	}

	if bID.Valid {
		p.Brand = &Brand{
			ID:          bID.String,
			Name:        bName.String,
			Slug:        bSlug.String,
			LogoURL:     bLogo.String,
			Description: bDesc.String,
			WebsiteURL:  bSite.String,
			CreatedAt:   bCreated.Time,
			UpdatedAt:   bUpdated.Time,
		}
	}
	return p, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}
