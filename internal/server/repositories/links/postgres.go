package links

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

func (r *PostgresRepository) Create(ctx context.Context, link *models.ShareLink) error {

	query :=
		`INSERT INTO links (file_id, user_id, slug, state, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		link.FileID, link.UserID, link.Slug, link.State, link.ExpiresAt).
		Scan(&link.ID, &link.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: link for file %s", common.ErrAlreadyExists, link.FileID)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.ShareLink, error) {
	query :=
		`SELECT id, file_id, user_id, slug, state, expires_at, created_at FROM links
		 WHERE slug = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, slug))
}

func (r *PostgresRepository) GetByFileAndOwner(ctx context.Context, fileID string, userID *string) (*models.ShareLink, error) {
	// IS NOT DISTINCT FROM matches a NULL owner as well.
	query :=
		`SELECT id, file_id, user_id, slug, state, expires_at, created_at FROM links
		 WHERE file_id = $1 AND user_id IS NOT DISTINCT FROM $2
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, fileID, userID))
}

func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query :=
		`SELECT EXISTS(SELECT 1 FROM links WHERE slug = $1)
		 `

	var exists bool
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.ShareLink, error) {
	link := &models.ShareLink{}
	var state string

	err := row.Scan(&link.ID, &link.FileID, &link.UserID, &link.Slug,
		&state, &link.ExpiresAt, &link.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	link.State = models.LinkState(state)
	return link, nil
}
