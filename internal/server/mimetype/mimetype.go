// Package mimetype defines the closed set of content types accepted by the
// upload validation layer, with lookup tables from variant to file extension
// and accepted content-type aliases.
package mimetype

import "strings"

type MimeType string

const (
	Png  MimeType = "image/png"
	Jpg  MimeType = "image/jpeg"
	Gif  MimeType = "image/gif"
	Mp4  MimeType = "video/mp4"
	Webp MimeType = "image/webp"
)

// Extension returns the canonical file extension for the type.
func (m MimeType) Extension() string {
	switch m {
	case Png:
		return "png"
	case Jpg:
		return "jpg"
	case Gif:
		return "gif"
	case Mp4:
		return "mp4"
	case Webp:
		return "webp"
	}
	return ""
}

// Valid reports whether m is one of the declared variants.
func (m MimeType) Valid() bool {
	return m.Extension() != ""
}

// byExtension includes aliases ("jpeg") in addition to canonical extensions.
var byExtension = map[string]MimeType{
	"png":  Png,
	"jpg":  Jpg,
	"jpeg": Jpg,
	"gif":  Gif,
	"mp4":  Mp4,
	"webp": Webp,
}

// FromExtension maps a file extension (without the dot, case-insensitive)
// to its MimeType.
func FromExtension(ext string) (MimeType, bool) {
	m, ok := byExtension[strings.ToLower(ext)]
	return m, ok
}

// FromContentType maps a declared content type to its MimeType.
func FromContentType(ct string) (MimeType, bool) {
	m := MimeType(strings.ToLower(strings.TrimSpace(ct)))
	if m.Valid() {
		return m, true
	}
	return "", false
}

// All returns the declared variants in a stable order.
func All() []MimeType {
	return []MimeType{Png, Jpg, Gif, Mp4, Webp}
}

// Extensions returns every accepted extension, aliases included.
func Extensions() []string {
	return []string{"png", "jpg", "jpeg", "gif", "mp4", "webp"}
}
