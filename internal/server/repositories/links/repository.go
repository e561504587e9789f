package links

import (
	"context"

	"github.com/dmitrijs2005/fragshare/internal/server/models"
)

type Repository interface {
	// Create inserts the link and fills ID and CreatedAt. Violations of
	// the slug or (file, user) uniqueness constraints are returned as
	// common.ErrAlreadyExists.
	Create(ctx context.Context, link *models.ShareLink) error
	GetBySlug(ctx context.Context, slug string) (*models.ShareLink, error)
	GetByFileAndOwner(ctx context.Context, fileID string, userID *string) (*models.ShareLink, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}
