// Package models defines server-side data models persisted in the database.
package models

import "time"

// FileRecord describes metadata for a stored file. The bytes themselves
// live in blob storage under Path; the record is created exactly once,
// in the same unit of work as the blob write, and is never mutated.
type FileRecord struct {
	ID string
	// UserID is the owner of the file.
	UserID string
	// Filename is the declared original filename, preserved verbatim.
	Filename string
	// Path is the blob-storage path of the content.
	Path string
	// MimeType is the declared content type.
	MimeType string
	// Size is the content length in bytes.
	Size int64
	// Checksum is the SHA-256 digest of the content, 64 hex characters.
	// (owner, checksum) is unique: a user cannot store identical content twice.
	Checksum string

	CreatedAt time.Time

	// Links holds shareable links minted for this file, populated when a
	// link is created in the same upload.
	Links []*ShareLink
}
