package quote

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

// Repository persists quotes and their revision chains.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Insert(ctx context.Context, q Quote) (int64, error)
	Get(ctx context.Context, id int64) (Quote, error)
	Put(ctx context.Context, q Quote) error
	ListHeads(ctx context.Context) ([]Quote, error)
	ListRevisions(ctx context.Context, headID int64) ([]Quote, error)
	MaxRevision(ctx context.Context, headID int64) (int, error)
	DeleteChain(ctx context.Context, anyID int64) (int, error)
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

// WithTx runs fn against a transaction-scoped repository. Every public
// store operation commits exactly once.
func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const quoteColumns = `id, created_at, revision_number, original_quote_id,
	client_name, order_number, description, code, measure, finish,
	materials_cost, accessories_cost, cutting_min, winding_min, cleaning_min,
	grinding_min, packing_min, labor_total_min, subtotal, markup_25,
	final_quote, client_price, layers_json, revision_note, history_json`

func (r *repository) Insert(ctx context.Context, q Quote) (int64, error) {
	layersJSON, err := MarshalLayers(q.Layers)
	if err != nil {
		return 0, err
	}
	historyJSON, err := MarshalHistory(q.History)
	if err != nil {
		return 0, err
	}
	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO quotes (created_at, revision_number, original_quote_id,
			client_name, order_number, description, code, measure, finish,
			materials_cost, accessories_cost, cutting_min, winding_min, cleaning_min,
			grinding_min, packing_min, labor_total_min, subtotal, markup_25,
			final_quote, client_price, layers_json, revision_note, history_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING id
	`, createdAt, q.RevisionNumber, nullableID(q.OriginalQuoteID),
		q.ClientName, q.OrderNumber, q.Description, q.Code, q.Measure, q.Finish,
		q.MaterialsCost, q.AccessoriesCost, q.CuttingMin, q.WindingMin, q.CleaningMin,
		q.GrindingMin, q.PackingMin, q.LaborTotalMin, q.Subtotal, q.Markup25,
		q.FinalQuote, q.ClientPrice, layersJSON, q.RevisionNote, historyJSON).Scan(&id)
	if err != nil {
		return 0, shared.Storage("quote: insert", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Quote, error) {
	q, err := scanQuote(r.db.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quote{}, shared.NotFoundf("quote: %d not found", id)
		}
		return Quote{}, err
	}
	return q, nil
}

// Put rewrites every mutable field of an existing quote row, history
// included. Callers are responsible for having appended the pre-image.
func (r *repository) Put(ctx context.Context, q Quote) error {
	layersJSON, err := MarshalLayers(q.Layers)
	if err != nil {
		return err
	}
	historyJSON, err := MarshalHistory(q.History)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE quotes SET
			revision_number = $1, original_quote_id = $2,
			client_name = $3, order_number = $4, description = $5, code = $6,
			measure = $7, finish = $8,
			materials_cost = $9, accessories_cost = $10, cutting_min = $11,
			winding_min = $12, cleaning_min = $13, grinding_min = $14,
			packing_min = $15, labor_total_min = $16, subtotal = $17,
			markup_25 = $18, final_quote = $19, client_price = $20,
			layers_json = $21, revision_note = $22, history_json = $23
		WHERE id = $24
	`, q.RevisionNumber, nullableID(q.OriginalQuoteID),
		q.ClientName, q.OrderNumber, q.Description, q.Code, q.Measure, q.Finish,
		q.MaterialsCost, q.AccessoriesCost, q.CuttingMin, q.WindingMin, q.CleaningMin,
		q.GrindingMin, q.PackingMin, q.LaborTotalMin, q.Subtotal, q.Markup25,
		q.FinalQuote, q.ClientPrice, layersJSON, q.RevisionNote, historyJSON, q.ID)
	if err != nil {
		return shared.Storage("quote: put", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundf("quote: %d not found", q.ID)
	}
	return nil
}

// ListHeads returns the highest-revision quote of every chain.
func (r *repository) ListHeads(ctx context.Context) ([]Quote, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT ON (COALESCE(original_quote_id, id)) `+quoteColumns+`
		FROM quotes
		ORDER BY COALESCE(original_quote_id, id), revision_number DESC
	`)
	if err != nil {
		return nil, shared.Storage("quote: list heads", err)
	}
	return collectQuotes(rows)
}

func (r *repository) ListRevisions(ctx context.Context, headID int64) ([]Quote, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+quoteColumns+` FROM quotes
		WHERE id = $1 OR original_quote_id = $1
		ORDER BY revision_number DESC
	`, headID)
	if err != nil {
		return nil, shared.Storage("quote: list revisions", err)
	}
	return collectQuotes(rows)
}

func (r *repository) MaxRevision(ctx context.Context, headID int64) (int, error) {
	var max int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(revision_number), 0) FROM quotes
		WHERE id = $1 OR original_quote_id = $1
	`, headID).Scan(&max)
	if err != nil {
		return 0, shared.Storage("quote: max revision", err)
	}
	return max, nil
}

// DeleteChain removes every quote of the chain containing anyID and reports
// how many rows went away.
func (r *repository) DeleteChain(ctx context.Context, anyID int64) (int, error) {
	var headID int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(original_quote_id, id) FROM quotes WHERE id = $1`, anyID).Scan(&headID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, shared.NotFoundf("quote: %d not found", anyID)
		}
		return 0, shared.Storage("quote: resolve chain", err)
	}
	// Revisions first so the head's self-references are gone before it is.
	tag, err := r.db.Exec(ctx, `DELETE FROM quotes WHERE original_quote_id = $1`, headID)
	if err != nil {
		return 0, shared.Storage("quote: delete revisions", err)
	}
	deleted := int(tag.RowsAffected())
	tag, err = r.db.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, headID)
	if err != nil {
		return 0, shared.Storage("quote: delete head", err)
	}
	return deleted + int(tag.RowsAffected()), nil
}

func scanQuote(row pgx.Row) (Quote, error) {
	var q Quote
	var originalID *int64
	var layersJSON, historyJSON string
	err := row.Scan(&q.ID, &q.CreatedAt, &q.RevisionNumber, &originalID,
		&q.ClientName, &q.OrderNumber, &q.Description, &q.Code, &q.Measure, &q.Finish,
		&q.MaterialsCost, &q.AccessoriesCost, &q.CuttingMin, &q.WindingMin, &q.CleaningMin,
		&q.GrindingMin, &q.PackingMin, &q.LaborTotalMin, &q.Subtotal, &q.Markup25,
		&q.FinalQuote, &q.ClientPrice, &layersJSON, &q.RevisionNote, &historyJSON)
	if err != nil {
		return Quote{}, err
	}
	if originalID != nil {
		q.OriginalQuoteID = *originalID
	}
	if q.Layers, err = UnmarshalLayers(layersJSON); err != nil {
		return Quote{}, err
	}
	if q.History, err = UnmarshalHistory(historyJSON); err != nil {
		return Quote{}, err
	}
	return q, nil
}

func collectQuotes(rows pgx.Rows) ([]Quote, error) {
	defer rows.Close()
	var quotes []Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, shared.Storage("quote: scan", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
