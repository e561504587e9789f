// Package services implements the application services of the server: the
// upload orchestrator, the share-link registry, and user account management.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/fragshare/internal/common"
	"github.com/dmitrijs2005/fragshare/internal/dbx"
	"github.com/dmitrijs2005/fragshare/internal/logging"
	"github.com/dmitrijs2005/fragshare/internal/server/checksum"
	"github.com/dmitrijs2005/fragshare/internal/server/models"
	"github.com/dmitrijs2005/fragshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fragshare/internal/server/slug"
	"github.com/dmitrijs2005/fragshare/internal/server/storage"
)

// UploadRequest carries one file upload. Content must be seekable because
// the stream is read twice: once for the checksum, once for storage.
type UploadRequest struct {
	Content  io.ReadSeeker
	Filename string
	MimeType string
	Size     int64
	OwnerID  string
	// ExpiresAt, when set, additionally mints an active share link with
	// this expiry in the same unit of work.
	ExpiresAt *time.Time
}

// UploadService persists uploaded bytes and their metadata as one logical
// operation: blob write first, then a single transaction for the file
// record and the optional share link, with a compensating blob delete when
// the transaction fails.
type UploadService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       storage.BlobStore
	slugs       slug.Generator
	logger      logging.Logger
}

func NewUploadService(db *sql.DB, m repomanager.RepositoryManager, blobs storage.BlobStore,
	slugs slug.Generator, logger logging.Logger) *UploadService {
	return &UploadService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		slugs:       slugs,
		logger:      logger.With("module", "upload_service"),
	}
}

func (s *UploadService) Upload(ctx context.Context, req UploadRequest) (*models.FileRecord, error) {

	sum, err := checksum.Sum(req.Content)
	if err != nil {
		s.logger.Error(ctx, "checksum computation failed", "user_id", req.OwnerID, "filename", req.Filename, "error", err.Error())
		return nil, err
	}
	if _, err := req.Content.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: rewinding content: %v", common.ErrChecksum, err)
	}

	fileRepo := s.repomanager.Files(s.db)

	exists, err := fileRepo.ExistsByOwnerAndChecksum(ctx, req.OwnerID, sum)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if exists {
		s.logger.Warn(ctx, "duplicate file upload attempt", "user_id", req.OwnerID, "filename", req.Filename, "checksum", sum)
		return nil, &common.DuplicateFileError{Checksum: sum, Filename: req.Filename}
	}

	namespace := fmt.Sprintf("user_%s", req.OwnerID)
	path, err := s.blobs.WriteNamed(ctx, namespace, req.Filename, req.Content)
	if err != nil {
		s.logger.Error(ctx, "file storage write failed", "user_id", req.OwnerID, "filename", req.Filename, "error", err.Error())
		return nil, err
	}

	record := &models.FileRecord{
		UserID:   req.OwnerID,
		Filename: req.Filename,
		Path:     path,
		MimeType: req.MimeType,
		Size:     req.Size,
		Checksum: sum,
	}

	var link *models.ShareLink

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Files(tx).Create(ctx, record); err != nil {
			return err
		}

		if req.ExpiresAt != nil {
			linkRepo := s.repomanager.Links(tx)

			token, err := uniqueSlug(ctx, s.slugs, linkRepo)
			if err != nil {
				return err
			}

			ownerID := req.OwnerID
			link = &models.ShareLink{
				FileID:    record.ID,
				UserID:    &ownerID,
				Slug:      token,
				State:     models.LinkStateActive,
				ExpiresAt: req.ExpiresAt,
			}
			if err := linkRepo.Create(ctx, link); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		// A constraint-detected duplicate means a concurrent upload of the
		// same content committed first. With the same filename both
		// requests share one blob path, now backing the winner's record,
		// so the compensating delete must not run. A leftover blob under a
		// different name is an orphan, which is reconcilable; a committed
		// record without its blob is not.
		var dup *common.DuplicateFileError
		if errors.As(err, &dup) {
			s.logger.Warn(ctx, "duplicate file upload attempt", "user_id", req.OwnerID, "filename", dup.Filename, "checksum", dup.Checksum)
			return nil, dup
		}

		// The transaction rolled back; remove the stored bytes before the
		// error crosses this boundary so no orphaned blob survives.
		if delErr := s.blobs.Delete(ctx, path); delErr != nil {
			s.logger.Error(ctx, "compensating blob delete failed", "path", path, "error", delErr.Error())
		}

		s.logger.Error(ctx, "file metadata persistence failed", "user_id", req.OwnerID, "filename", req.Filename, "error", err.Error())
		return nil, fmt.Errorf("persisting file metadata: %w", err)
	}

	if link != nil {
		record.Links = append(record.Links, link)
		s.logger.Info(ctx, "file uploaded with shareable link",
			"filename", record.Filename, "path", record.Path, "mime_type", record.MimeType,
			"size", record.Size, "checksum", record.Checksum,
			"slug", link.Slug, "expires_at", link.ExpiresAt)
	} else {
		s.logger.Info(ctx, "file uploaded",
			"filename", record.Filename, "path", record.Path, "mime_type", record.MimeType,
			"size", record.Size, "checksum", record.Checksum)
	}

	return record, nil
}
