package files

import (
	"context"

	"github.com/dmitrijs2005/fragshare/internal/server/models"
)

type Repository interface {
	// Create inserts the record and fills ID and CreatedAt. A violation of
	// the (user, checksum) uniqueness constraint is returned as
	// *common.DuplicateFileError.
	Create(ctx context.Context, file *models.FileRecord) error
	ExistsByOwnerAndChecksum(ctx context.Context, userID, checksum string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.FileRecord, error)
}
