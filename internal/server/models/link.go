package models

import "time"

// LinkState is the lifecycle state of a share link.
type LinkState string

const (
	LinkStateActive  LinkState = "active"
	LinkStateRevoked LinkState = "revoked"
)

// ShareLink is a public, slug-addressed reference to a stored file.
// The slug is globally unique; (file, owner) is unique as well, so
// requesting a link for the same pair returns the existing one.
type ShareLink struct {
	ID     string
	FileID string
	// UserID is the creating user, nil when the link was minted without a
	// strict owner (system/anonymous).
	UserID *string
	// Slug is the short random public token, 8 alphanumeric characters.
	Slug  string
	State LinkState
	// ExpiresAt, when set, is evaluated passively at resolution time.
	ExpiresAt *time.Time
	// PasswordHash is reserved; the resolution path never reads it.
	PasswordHash *string

	CreatedAt time.Time
}

// Expired reports whether the link has an expiry in the past relative to now.
func (l *ShareLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}
