package util

import (
	"strings"
	"testing"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"<script>x</script>", "&lt;script&gt;x&lt;/script&gt;"},
		{"a & b", "a &amp; b"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := SanitizeText(tt.in); got != tt.want {
			t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidRoomName(t *testing.T) {
	if ValidRoomName("") {
		t.Error("empty name must be invalid")
	}
	if !ValidRoomName(strings.Repeat("a", 50)) {
		t.Error("50-char name must be valid")
	}
	if ValidRoomName(strings.Repeat("a", 51)) {
		t.Error("51-char name must be invalid")
	}
	// 按字符数而非字节数
	if !ValidRoomName(strings.Repeat("界", 50)) {
		t.Error("50 multi-byte runes must be valid")
	}
}

func TestValidMessageContent(t *testing.T) {
	if ValidMessageContent("") {
		t.Error("empty content must be invalid")
	}
	if !ValidMessageContent(strings.Repeat("a", 2000)) {
		t.Error("2000-char content must be valid")
	}
	if ValidMessageContent(strings.Repeat("a", 2001)) {
		t.Error("2001-char content must be invalid")
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 5},
		{-3, 0, 1, 5},
		{2, 10, 2, 10},
		{1, 1000, 1, 100},
	}
	for _, tt := range tests {
		page, limit := NormalizePage(tt.page, tt.limit)
		if page != tt.wantPage || limit != tt.wantLimit {
			t.Errorf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
				tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLimit)
		}
	}
}

func TestPageWindow(t *testing.T) {
	skip, limit := PageWindow(3, 5)
	if skip != 10 || limit != 5 {
		t.Errorf("PageWindow(3, 5) = (%d, %d), want (10, 5)", skip, limit)
	}
	skip, limit = PageWindow(0, 0)
	if skip != 0 || limit != 5 {
		t.Errorf("PageWindow(0, 0) = (%d, %d), want (0, 5)", skip, limit)
	}
}
