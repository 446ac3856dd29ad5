package image

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgRepo struct{ pool *pgxpool.Pool }

// NewPGRepo returns a Postgres-backed Repository.
func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

const imageCols = `id, concern_id, call_doc_id, filename, mimetype, size, path, uploaded_at`

func (r *pgRepo) GetByID(ctx context.Context, id string) (*Image, error) {
	return scanImage(r.pool.QueryRow(ctx,
		`SELECT `+imageCols+` FROM images WHERE id = $1`, id))
}

func (r *pgRepo) GetByPath(ctx context.Context, path string) (*Image, error) {
	return scanImage(r.pool.QueryRow(ctx,
		`SELECT `+imageCols+` FROM images WHERE path = $1`, path))
}

func (r *pgRepo) List(ctx context.Context, f Filter) ([]*Image, error) {
	query := `SELECT ` + imageCols + ` FROM images WHERE 1=1`
	var args []interface{}
	if f.ConcernID != nil {
		args = append(args, *f.ConcernID)
		query += fmt.Sprintf(` AND concern_id = $%d`, len(args))
	}
	if f.CallDocID != nil {
		args = append(args, *f.CallDocID)
		query += fmt.Sprintf(` AND call_doc_id = $%d`, len(args))
	}
	query += ` ORDER BY uploaded_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, img)
	}
	return items, rows.Err()
}

func (r *pgRepo) Create(ctx context.Context, img *Image) error {
	img.ID = uuid.New().String()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO images (id, concern_id, call_doc_id, filename, mimetype, size, path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING uploaded_at`,
		img.ID, img.ConcernID, img.CallDocID, img.Filename, img.Mimetype, img.Size, img.Path)
	return row.Scan(&img.UploadedAt)
}

func (r *pgRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanImage(row pgx.Row) (*Image, error) {
	var img Image
	if err := row.Scan(&img.ID, &img.ConcernID, &img.CallDocID, &img.Filename,
		&img.Mimetype, &img.Size, &img.Path, &img.UploadedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &img, nil
}
