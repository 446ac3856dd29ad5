package concern

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgRepo struct{ pool *pgxpool.Pool }

// NewPGRepo returns a Postgres-backed Repository with the same contract
// as the in-memory store.
func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

const concernCols = `id, patient_name, patient_dob, category, title, status, created_at, updated_at`

func scanConcern(row pgx.Row) (*Concern, error) {
	var c Concern
	err := row.Scan(&c.ID, &c.PatientName, &c.PatientDob, &c.Category, &c.Title,
		&c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgRepo) GetByID(ctx context.Context, id string) (*Concern, error) {
	return scanConcern(r.pool.QueryRow(ctx, `SELECT `+concernCols+` FROM concerns WHERE id = $1`, id))
}

func (r *pgRepo) List(ctx context.Context) ([]*Concern, error) {
	return r.query(ctx, `SELECT `+concernCols+` FROM concerns ORDER BY updated_at DESC`)
}

func (r *pgRepo) ListByCategory(ctx context.Context, category string) ([]*Concern, error) {
	return r.query(ctx, `SELECT `+concernCols+` FROM concerns WHERE category = $1 ORDER BY updated_at DESC`, category)
}

func (r *pgRepo) ListByPatient(ctx context.Context, patientName, patientDob string) ([]*Concern, error) {
	return r.query(ctx, `SELECT `+concernCols+` FROM concerns WHERE patient_name = $1 AND patient_dob = $2 ORDER BY updated_at DESC`,
		patientName, patientDob)
}

func (r *pgRepo) query(ctx context.Context, sql string, args ...interface{}) ([]*Concern, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Concern
	for rows.Next() {
		c, err := scanConcern(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *pgRepo) Create(ctx context.Context, c *Concern) error {
	c.ID = uuid.New().String()
	if c.Status == "" {
		c.Status = StatusPending
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO concerns (id, patient_name, patient_dob, category, title, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		c.ID, c.PatientName, c.PatientDob, c.Category, c.Title, c.Status)
	return row.Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *pgRepo) UpdateStatus(ctx context.Context, id, status string) (*Concern, error) {
	return scanConcern(r.pool.QueryRow(ctx, `
		UPDATE concerns SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+concernCols, id, status))
}
