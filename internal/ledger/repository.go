package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/platform/db"
	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/shared"
)

// Repository persists the movement log and keeps materials.on_hand in step
// with it.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Insert(ctx context.Context, m Movement) (int64, error)
	ListByMaterial(ctx context.Context, materialID int64, limit int) ([]Movement, error)
	Totals(ctx context.Context, materialID int64) (loaded, unloaded float64, err error)
	OnHand(ctx context.Context, materialID int64) (float64, error)
	Consumption(ctx context.Context, from, to time.Time) ([]ConsumptionRow, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

// Insert appends the movement and moves the cached on_hand by the signed
// quantity in the same statement set. The log stays authoritative: on_hand
// may go negative and is never clamped.
func (r *repository) Insert(ctx context.Context, m Movement) (int64, error) {
	delta := m.Kind.Sign() * m.Quantity
	tag, err := r.db.Exec(ctx,
		`UPDATE materials SET on_hand = on_hand + $1 WHERE id = $2`, delta, m.MaterialID)
	if err != nil {
		return 0, shared.Storage("ledger: adjust on_hand", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, shared.NotFoundf("ledger: material %d not found", m.MaterialID)
	}
	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO movements (code, material_id, kind, quantity, ts, note, quote_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, m.Code, m.MaterialID, m.Kind, m.Quantity, m.Timestamp, m.Note,
		nullableID(m.QuoteID)).Scan(&id)
	if err != nil {
		return 0, shared.Storage("ledger: insert movement", err)
	}
	return id, nil
}

func (r *repository) ListByMaterial(ctx context.Context, materialID int64, limit int) ([]Movement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, material_id, kind, quantity, ts, note, quote_id
		FROM movements WHERE material_id = $1
		ORDER BY ts DESC, id DESC
		LIMIT $2
	`, materialID, limit)
	if err != nil {
		return nil, shared.Storage("ledger: list movements", err)
	}
	defer rows.Close()
	var out []Movement
	for rows.Next() {
		var m Movement
		var quoteID *int64
		if err := rows.Scan(&m.ID, &m.Code, &m.MaterialID, &m.Kind, &m.Quantity,
			&m.Timestamp, &m.Note, &quoteID); err != nil {
			return nil, shared.Storage("ledger: scan movement", err)
		}
		if quoteID != nil {
			m.QuoteID = *quoteID
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repository) Totals(ctx context.Context, materialID int64) (float64, float64, error) {
	var loaded, unloaded float64
	err := r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE kind = 'load'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE kind = 'unload'), 0)
		FROM movements WHERE material_id = $1
	`, materialID).Scan(&loaded, &unloaded)
	if err != nil {
		return 0, 0, shared.Storage("ledger: movement totals", err)
	}
	return loaded, unloaded, nil
}

func (r *repository) OnHand(ctx context.Context, materialID int64) (float64, error) {
	var onHand float64
	err := r.db.QueryRow(ctx,
		`SELECT on_hand FROM materials WHERE id = $1`, materialID).Scan(&onHand)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, shared.NotFoundf("ledger: material %d not found", materialID)
		}
		return 0, shared.Storage("ledger: read on_hand", err)
	}
	return onHand, nil
}

// Consumption aggregates unload rows per material. The join is left so
// movements orphaned by a deleted material stay visible.
func (r *repository) Consumption(ctx context.Context, from, to time.Time) ([]ConsumptionRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.material_id, COALESCE(mat.name, ''), SUM(m.quantity),
			COALESCE(mat.supplier_price, 0)
		FROM movements m
		LEFT JOIN materials mat ON mat.id = m.material_id
		WHERE m.kind = 'unload' AND m.ts >= $1 AND m.ts < $2
		GROUP BY m.material_id, mat.name, mat.supplier_price
	`, from, to)
	if err != nil {
		return nil, shared.Storage("ledger: consumption", err)
	}
	defer rows.Close()
	var out []ConsumptionRow
	for rows.Next() {
		var row ConsumptionRow
		if err := rows.Scan(&row.MaterialID, &row.MaterialName, &row.Consumed,
			&row.SupplierPrice); err != nil {
			return nil, shared.Storage("ledger: scan consumption", err)
		}
		row.Spend = row.Consumed * row.SupplierPrice
		out = append(out, row)
	}
	return out, rows.Err()
}

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
