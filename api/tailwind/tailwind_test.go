package tailwind

import (
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		wantError bool
	}{
		{"shade", "blue-700", "#1d4ed8", false},
		{"default shade", "red", "#ef4444", false},
		{"prefix", "bg-emerald-600", "#059669", false},
		{"hex", "#003366", "#003366", false},
		{"hex without hash", "0070C0", "#0070c0", false},
		{"rgb", "rgb(0, 51, 102)", "#003366", false},
		{"special", "white", "#ffffff", false},
		{"empty", "", "", true},
		{"unknown", "octarine-500", "", true},
		{"invalid shade", "red-1000", "", true},
		{"rgb out of range", "rgb(300, 0, 0)", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("ParseColor(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseColor(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestARGB(t *testing.T) {
	if got := ARGB("rgb(255, 192, 0)"); got != "FFFFC000" {
		t.Errorf("ARGB = %q, want FFFFC000", got)
	}
	if got := ARGB("nope"); got != "FF000000" {
		t.Errorf("ARGB fallback = %q, want FF000000", got)
	}
}

func TestLighten(t *testing.T) {
	if got := Lighten("#000000", 1); got != "#ffffff" {
		t.Errorf("Lighten full = %q", got)
	}
	if got := Lighten("#003366", 0); got != "#003366" {
		t.Errorf("Lighten zero = %q", got)
	}
	r, g, b := RGB(Lighten("#000000", 0.5))
	if r != 127 || g != 127 || b != 127 {
		t.Errorf("Lighten half = %d,%d,%d", r, g, b)
	}
}
