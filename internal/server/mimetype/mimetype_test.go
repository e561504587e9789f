package mimetype

import "testing"

func TestExtension_AllVariantsCovered(t *testing.T) {
	for _, m := range All() {
		if m.Extension() == "" {
			t.Fatalf("variant %q has no extension", m)
		}
	}
}

func TestFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want MimeType
		ok   bool
	}{
		{"png", Png, true},
		{"jpg", Jpg, true},
		{"jpeg", Jpg, true},
		{"JPEG", Jpg, true},
		{"webp", Webp, true},
		{"exe", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		got, ok := FromExtension(tc.ext)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("FromExtension(%q) = %q, %v; want %q, %v", tc.ext, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFromContentType(t *testing.T) {
	if m, ok := FromContentType("image/PNG"); !ok || m != Png {
		t.Fatalf("FromContentType(image/PNG) = %q, %v", m, ok)
	}
	if _, ok := FromContentType("application/pdf"); ok {
		t.Fatal("application/pdf must not be accepted")
	}
}

func TestValid(t *testing.T) {
	if !Jpg.Valid() {
		t.Fatal("Jpg must be valid")
	}
	if MimeType("text/plain").Valid() {
		t.Fatal("text/plain must not be a declared variant")
	}
}
