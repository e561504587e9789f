package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/fragshare/internal/common"
	"github.com/dmitrijs2005/fragshare/internal/dbx"
	"github.com/dmitrijs2005/fragshare/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.FileRecord) error {

	query :=
		`INSERT INTO files (user_id, filename, path, mime_type, size, checksum)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		file.UserID, file.Filename, file.Path, file.MimeType, file.Size, file.Checksum).
		Scan(&file.ID, &file.CreatedAt)

	if err != nil {
		// The unique constraint is the authoritative duplicate guard; the
		// pre-check in the orchestrator only narrows the window.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return &common.DuplicateFileError{Checksum: file.Checksum, Filename: file.Filename}
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ExistsByOwnerAndChecksum(ctx context.Context, userID, checksum string) (bool, error) {
	query :=
		`SELECT EXISTS(SELECT 1 FROM files WHERE user_id = $1 AND checksum = $2)
		 `

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, checksum).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.FileRecord, error) {
	query :=
		`SELECT id, user_id, filename, path, mime_type, size, checksum, created_at FROM files
		 WHERE id = $1
		 `

	file := &models.FileRecord{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&file.ID, &file.UserID, &file.Filename, &file.Path,
		&file.MimeType, &file.Size, &file.Checksum, &file.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}
