package mediatypes

import "testing"

func TestKindForKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected AssetKind
	}{
		{name: "JPEG photo", key: "events/e1/images/p1.jpg", expected: KindPhoto},
		{name: "Uppercase extension", key: "events/e1/images/P1.JPG", expected: KindPhoto},
		{name: "PNG photo", key: "events/e1/images/p2.png", expected: KindPhoto},
		{name: "MP4 video", key: "events/e1/videos/v1.mp4", expected: KindVideo},
		{name: "QuickTime video", key: "events/e1/videos/v1.mov", expected: KindVideo},
		{name: "Text file", key: "events/e1/images/note.txt", expected: KindOther},
		{name: "No extension", key: "events/e1/images/blob", expected: KindOther},
		{name: "GIF not accepted", key: "events/e1/images/anim.gif", expected: KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindForKey(tt.key); got != tt.expected {
				t.Errorf("KindForKey(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		prefix   string
		expected string
	}{
		{
			name:     "Prefix and extension stripped",
			key:      "events/e1/images/p1.jpg",
			prefix:   "events/e1/images",
			expected: "p1",
		},
		{
			name:     "Prefix with trailing slash",
			key:      "events/e1/images/p1.jpg",
			prefix:   "events/e1/images/",
			expected: "p1",
		},
		{
			name:     "Nested key keeps only base",
			key:      "events/e1/images/2024/p1.jpg",
			prefix:   "events/e1/images",
			expected: "p1",
		},
		{
			name:     "No extension",
			key:      "events/e1/images/blob",
			prefix:   "events/e1/images",
			expected: "blob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BaseName(tt.key, tt.prefix); got != tt.expected {
				t.Errorf("BaseName(%q, %q) = %q, want %q", tt.key, tt.prefix, got, tt.expected)
			}
		})
	}
}

func TestMimeType(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"a.jpg", "image/jpeg"},
		{"a.jpeg", "image/jpeg"},
		{"a.png", "image/png"},
		{"a.mp4", "video/mp4"},
		{"a.mov", "video/quicktime"},
		{"a.txt", ""},
	}

	for _, tt := range tests {
		if got := MimeType(tt.key); got != tt.expected {
			t.Errorf("MimeType(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}
}
