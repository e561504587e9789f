// Package checksum computes content digests for uploaded files. The digest
// is used both for per-owner deduplication and for integrity verification.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/dmitrijs2005/fragshare/internal/common"
)

// HexLength is the length of the digest in hexadecimal characters.
const HexLength = sha256.Size * 2

// Sum reads r to EOF and returns the SHA-256 digest of the full content as
// a lowercase hexadecimal string. If the stream cannot be fully read the
// returned error matches common.ErrChecksum; the caller decides whether to
// retry.
func Sum(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrChecksum, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
