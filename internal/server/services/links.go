package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/fragshare/internal/common"
	"github.com/dmitrijs2005/fragshare/internal/logging"
	"github.com/dmitrijs2005/fragshare/internal/server/models"
	"github.com/dmitrijs2005/fragshare/internal/server/repositories/links"
	"github.com/dmitrijs2005/fragshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fragshare/internal/server/slug"
	"github.com/dmitrijs2005/fragshare/internal/server/storage"
)

// maxSlugAttempts caps the slug-uniqueness retry loop. Running out means
// the token space is saturated or the uniqueness check is broken; either
// way it surfaces as common.ErrSlugExhausted instead of looping forever.
const maxSlugAttempts = 10

// ResolvedContent is everything a caller needs to stream a shared file
// back: the open content stream plus its declared metadata. The caller owns
// closing Content.
type ResolvedContent struct {
	Content     io.ReadCloser
	Filename    string
	MimeType    string
	Size        int64
	Disposition string
}

// LinkService creates and resolves shareable links.
type LinkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       storage.BlobStore
	slugs       slug.Generator
	logger      logging.Logger
	now         func() time.Time
}

func NewLinkService(db *sql.DB, m repomanager.RepositoryManager, blobs storage.BlobStore,
	slugs slug.Generator, logger logging.Logger) *LinkService {
	return &LinkService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		slugs:       slugs,
		logger:      logger.With("module", "link_service"),
		now:         time.Now,
	}
}

// CreateOrGetLink returns the share link for (fileID, ownerID), creating it
// with a fresh slug when absent. The bool reports whether a new link was
// created; it exists for logging, not correctness.
func (s *LinkService) CreateOrGetLink(ctx context.Context, fileID string, ownerID *string) (*models.ShareLink, bool, error) {

	if _, err := s.repomanager.Files(s.db).GetByID(ctx, fileID); err != nil {
		return nil, false, fmt.Errorf("looking up file: %w", err)
	}

	linkRepo := s.repomanager.Links(s.db)

	existing, err := linkRepo.GetByFileAndOwner(ctx, fileID, ownerID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, fmt.Errorf("looking up link: %w", err)
	}

	token, err := uniqueSlug(ctx, s.slugs, linkRepo)
	if err != nil {
		return nil, false, err
	}

	link := &models.ShareLink{
		FileID: fileID,
		UserID: ownerID,
		Slug:   token,
		State:  models.LinkStateActive,
	}

	if err := linkRepo.Create(ctx, link); err != nil {
		// Lost a race with a concurrent request for the same pair; the
		// constraint decided, return the winner.
		if errors.Is(err, common.ErrAlreadyExists) {
			existing, lookupErr := linkRepo.GetByFileAndOwner(ctx, fileID, ownerID)
			if lookupErr != nil {
				return nil, false, fmt.Errorf("looking up link after conflict: %w", lookupErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("creating link: %w", err)
	}

	s.logger.Info(ctx, "share link created", "link_id", link.ID, "file_id", fileID, "slug", link.Slug)
	return link, true, nil
}

// Resolve checks a slug and returns a streamable handle on the linked file.
// Checks run in a fixed order: state, then expiry, then blob existence, so
// a revoked-but-also-expired link reports revoked.
func (s *LinkService) Resolve(ctx context.Context, token string) (*ResolvedContent, error) {

	link, err := s.repomanager.Links(s.db).GetBySlug(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("looking up link: %w", err)
	}

	if link.State != models.LinkStateActive {
		return nil, common.ErrLinkRevoked
	}

	if link.Expired(s.now()) {
		return nil, common.ErrLinkExpired
	}

	file, err := s.repomanager.Files(s.db).GetByID(ctx, link.FileID)
	if err != nil {
		return nil, fmt.Errorf("looking up file: %w", err)
	}

	ok, err := s.blobs.Exists(ctx, file.Path)
	if err != nil {
		return nil, fmt.Errorf("checking blob: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: blob %s", common.ErrNotFound, file.Path)
	}

	rc, err := s.blobs.OpenForRead(ctx, file.Path)
	if err != nil {
		return nil, fmt.Errorf("opening blob: %w", err)
	}

	return &ResolvedContent{
		Content:     rc,
		Filename:    file.Filename,
		MimeType:    file.MimeType,
		Size:        file.Size,
		Disposition: "inline",
	}, nil
}

// uniqueSlug draws candidate tokens until one is unused, up to
// maxSlugAttempts.
func uniqueSlug(ctx context.Context, gen slug.Generator, repo links.Repository) (string, error) {
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		token, err := gen.Next()
		if err != nil {
			return "", fmt.Errorf("generating slug: %w", err)
		}

		exists, err := repo.SlugExists(ctx, token)
		if err != nil {
			return "", fmt.Errorf("checking slug: %w", err)
		}
		if !exists {
			return token, nil
		}
	}

	return "", common.ErrSlugExhausted
}
