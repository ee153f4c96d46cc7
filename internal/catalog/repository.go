package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/shared"
)

// Repository persists materials in PostgreSQL.
type Repository interface {
	List(ctx context.Context) ([]Material, error)
	Get(ctx context.Context, id int64) (Material, error)
	GetByName(ctx context.Context, name string) (Material, error)
	Create(ctx context.Context, m Material) (Material, error)
	Update(ctx context.Context, id int64, m Material) error
	UpdatePrice(ctx context.Context, id int64, unitPrice float64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const materialColumns = `id, name, thickness, unit_price, supplier_name, supplier_price, warehouse_capacity, on_hand`

func scanMaterial(row pgx.Row) (Material, error) {
	var m Material
	err := row.Scan(&m.ID, &m.Name, &m.Thickness, &m.UnitPrice, &m.SupplierName,
		&m.SupplierPrice, &m.WarehouseCapacity, &m.OnHand)
	return m, err
}

func (r *repository) List(ctx context.Context) ([]Material, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY name`)
	if err != nil {
		return nil, shared.Storage("catalog: list", err)
	}
	defer rows.Close()

	var materials []Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, shared.Storage("catalog: scan", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Material, error) {
	m, err := scanMaterial(r.pool.QueryRow(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Material{}, shared.NotFoundf("catalog: material %d not found", id)
		}
		return Material{}, shared.Storage("catalog: get", err)
	}
	return m, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (Material, error) {
	m, err := scanMaterial(r.pool.QueryRow(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Material{}, shared.NotFoundf("catalog: material %q not found", name)
		}
		return Material{}, shared.Storage("catalog: get by name", err)
	}
	return m, nil
}

func (r *repository) Create(ctx context.Context, m Material) (Material, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO materials (name, thickness, unit_price, supplier_name, supplier_price, warehouse_capacity, on_hand)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, m.Name, m.Thickness, m.UnitPrice, m.SupplierName, m.SupplierPrice, m.WarehouseCapacity, m.OnHand).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Material{}, shared.Conflictf("catalog: material %q already exists", m.Name)
		}
		return Material{}, shared.Storage("catalog: create", err)
	}
	return m, nil
}

func (r *repository) Update(ctx context.Context, id int64, m Material) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE materials
		SET name = $1, thickness = $2, unit_price = $3, supplier_name = $4,
		    supplier_price = $5, warehouse_capacity = $6
		WHERE id = $7
	`, m.Name, m.Thickness, m.UnitPrice, m.SupplierName, m.SupplierPrice, m.WarehouseCapacity, id)
	if err != nil {
		if isUniqueViolation(err) {
			return shared.Conflictf("catalog: material %q already exists", m.Name)
		}
		return shared.Storage("catalog: update", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundf("catalog: material %d not found", id)
	}
	return nil
}

func (r *repository) UpdatePrice(ctx context.Context, id int64, unitPrice float64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE materials SET unit_price = $1 WHERE id = $2`, unitPrice, id)
	if err != nil {
		return shared.Storage("catalog: update price", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundf("catalog: material %d not found", id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return shared.Storage("catalog: delete", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundf("catalog: material %d not found", id)
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM materials`).Scan(&n); err != nil {
		return 0, shared.Storage("catalog: count", err)
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
