package calldoc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgRepo struct{ pool *pgxpool.Pool }

// NewPGRepo returns a Postgres-backed Repository.
func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

const callDocCols = `id, concern_id, agent_name, call_notes, resolution, agent_message, created_at`

func (r *pgRepo) ListByConcern(ctx context.Context, concernID string) ([]*CallDoc, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+callDocCols+` FROM call_documentation WHERE concern_id = $1 ORDER BY created_at DESC`,
		concernID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*CallDoc
	for rows.Next() {
		var d CallDoc
		if err := rows.Scan(&d.ID, &d.ConcernID, &d.AgentName, &d.CallNotes,
			&d.Resolution, &d.AgentMessage, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}

func (r *pgRepo) Create(ctx context.Context, d *CallDoc) error {
	d.ID = uuid.New().String()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO call_documentation (id, concern_id, agent_name, call_notes, resolution, agent_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		d.ID, d.ConcernID, d.AgentName, d.CallNotes, d.Resolution, d.AgentMessage)
	return row.Scan(&d.CreatedAt)
}
