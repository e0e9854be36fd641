package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

const schema = `
CREATE TABLE IF NOT EXISTS store_settings (
	id              TEXT PRIMARY KEY,
	whatsapp_number TEXT,
	business_name   TEXT,
	business_email  TEXT,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ
)`

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

func (s *PostgresStore) Earliest(ctx context.Context) (Record, bool, error) {
	var (
		rec             Record
		wa, name, email sql.NullString
		updated         sql.NullTime
	)

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, whatsapp_number, business_name, business_email, created_at, updated_at
			FROM store_settings
			ORDER BY created_at ASC, id ASC
			LIMIT 1
		`).Scan(&rec.ID, &wa, &name, &email, &rec.CreatedAt, &updated)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}

	rec.Values = Values{
		WhatsAppNumber: wa.String,
		BusinessName:   name.String,
		BusinessEmail:  email.String,
	}
	if updated.Valid {
		rec.UpdatedAt = updated.Time
	}
	return rec, true, nil
}

// Column names are interpolated only after Key.Valid, so they are always
// one of the fixed identifiers above.
func (s *PostgresStore) Update(ctx context.Context, id string, key Key, value string) error {
	if !key.Valid() {
		return fmt.Errorf("%w: unknown key %q", ErrInvalidArgument, key)
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx,
			fmt.Sprintf(`UPDATE store_settings SET %s = $1, updated_at = now() WHERE id = $2`, key),
			value, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrRecordGone
		}
		return nil
	})
}

func (s *PostgresStore) InsertSingleton(ctx context.Context, key Key, value string) error {
	if !key.Valid() {
		return fmt.Errorf("%w: unknown key %q", ErrInvalidArgument, key)
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
			INSERT INTO store_settings (id, %[1]s)
			VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE
			SET %[1]s = EXCLUDED.%[1]s, updated_at = now()
		`, key), SingletonID, value)
		return err
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
