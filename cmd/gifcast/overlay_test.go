package main

import (
	"testing"
)

func TestParseOverlay(t *testing.T) {
	cases := []struct {
		spec    string
		text    string
		x, y    float64
		wantErr bool
	}{
		{"Hello@50,90", "Hello", 50, 90, false},
		{"with spaces@10, 20", "with spaces", 10, 20, false},
		{"user@example.com@50,50", "user@example.com", 50, 50, false},
		{"decimal@12.5,87.5", "decimal", 12.5, 87.5, false},
		{"nopos", "", 0, 0, true},
		{"@50,90", "", 0, 0, true},
		{"text@", "", 0, 0, true},
		{"text@50", "", 0, 0, true},
		{"text@x,y", "", 0, 0, true},
		{"text@150,50", "", 0, 0, true},
		{"text@50,-1", "", 0, 0, true},
	}
	for _, tc := range cases {
		overlay, err := parseOverlay(tc.spec)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseOverlay(%q): expected error", tc.spec)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseOverlay(%q): %v", tc.spec, err)
			continue
		}
		if overlay.Text != tc.text || overlay.XPercent != tc.x || overlay.YPercent != tc.y {
			t.Errorf("parseOverlay(%q) = %+v", tc.spec, overlay)
		}
	}
}
