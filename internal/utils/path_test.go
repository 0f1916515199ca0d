package utils

import (
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	old := userHomeDir
	defer func() { userHomeDir = old }()
	userHomeDir = func() (string, error) { return "/home/test", nil }

	tests := []struct {
		in   string
		want string
	}{
		{"~", "/home/test"},
		{"~/.config/hush/hush.db", filepath.Join("/home/test", ".config/hush/hush.db")},
		{"/var/lib/hush.db", "/var/lib/hush.db"},
		{"relative.db", "relative.db"},
		{"~other/file", "~other/file"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
