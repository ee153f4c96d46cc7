package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS materials (
		id BIGSERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		thickness DOUBLE PRECISION NOT NULL,
		unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		supplier_name TEXT NOT NULL DEFAULT '',
		supplier_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		warehouse_capacity DOUBLE PRECISION NOT NULL DEFAULT 0,
		on_hand DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		revision_number INT NOT NULL DEFAULT 1 CHECK (revision_number >= 1),
		original_quote_id BIGINT REFERENCES quotes(id),
		client_name TEXT NOT NULL DEFAULT '',
		order_number TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		code TEXT NOT NULL DEFAULT '',
		measure TEXT NOT NULL DEFAULT '',
		finish TEXT NOT NULL DEFAULT '',
		materials_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		accessories_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		cutting_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		winding_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		cleaning_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		grinding_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		packing_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		labor_total_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
		markup_25 DOUBLE PRECISION NOT NULL DEFAULT 0,
		final_quote DOUBLE PRECISION NOT NULL DEFAULT 0,
		client_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		layers_json TEXT NOT NULL DEFAULT '[]',
		revision_note TEXT NOT NULL DEFAULT '',
		history_json TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_original ON quotes(original_quote_id)`,
	// movements carry material_id as a plain id, not a foreign key: deleting
	// a material orphans its log rows instead of blocking the delete.
	`CREATE TABLE IF NOT EXISTS movements (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL DEFAULT '',
		material_id BIGINT NOT NULL,
		kind TEXT NOT NULL CHECK (kind IN ('load','unload')),
		quantity DOUBLE PRECISION NOT NULL CHECK (quantity > 0),
		ts TIMESTAMPTZ NOT NULL DEFAULT now(),
		note TEXT NOT NULL DEFAULT '',
		quote_id BIGINT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_material_ts ON movements(material_id, ts)`,
}

// Migrate applies the schema idempotently.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("platform/db: migration %d: %w", i, err)
		}
	}
	return nil
}
