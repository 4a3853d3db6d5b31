package repo

import (
	"context"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// UploadRepositoryPG implements domain.UploadRepository using PostgreSQL.
type UploadRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUploadRepository constructs a new upload repository instance.
func NewUploadRepository(sql infra.SQLExecutor) *UploadRepositoryPG {
	return &UploadRepositoryPG{sql: sql}
}

// Create records a validated customer upload.
func (r *UploadRepositoryPG) Create(ctx context.Context, upload *domain.Upload) error {
	if upload.ID == "" {
		upload.ID = uuid.NewString()
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertUpload,
		upload.ID, upload.StorageKey, upload.MIME, upload.Bytes, upload.Width, upload.Height)
	return row.Scan(&upload.ID)
}

// GetByID returns one upload.
func (r *UploadRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Upload, error) {
	var u domain.Upload
	row := r.sql.QueryRow(ctx, sqlinline.QSelectUploadByID, id)
	if err := row.Scan(&u.ID, &u.StorageKey, &u.MIME, &u.Bytes, &u.Width, &u.Height, &u.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByIDs returns the subset of requested uploads that exist, keyed by id.
func (r *UploadRepositoryPG) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Upload, error) {
	out := make(map[string]domain.Upload, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.sql.Query(ctx, sqlinline.QSelectUploadsByIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.Upload
		if err := rows.Scan(&u.ID, &u.StorageKey, &u.MIME, &u.Bytes, &u.Width, &u.Height, &u.CreatedAt); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, rows.Err()
}
