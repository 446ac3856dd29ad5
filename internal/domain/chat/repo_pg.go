package chat

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

func (r *pgRepo) ListByConcern(ctx context.Context, concernID string) ([]*Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, concern_id, sender, message, created_at
		 FROM chat_messages WHERE concern_id = $1 ORDER BY created_at ASC`,
		concernID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConcernID, &m.Sender, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}

func (r *pgRepo) Create(ctx context.Context, m *Message) error {
	m.ID = uuid.New().String()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO chat_messages (id, concern_id, sender, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		m.ID, m.ConcernID, m.Sender, m.Message)
	return row.Scan(&m.CreatedAt)
}
