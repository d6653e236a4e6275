package display

import (
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want string
	}{
		{"bytes", 512, "512 B"},
		{"kibibytes", 2048, "2.0 KiB"},
		{"mebibytes", 5 * 1024 * 1024, "5.0 MiB"},
		{"gibibytes", 3 * 1024 * 1024 * 1024, "3.0 GiB"},
		{"zero", 0, "0 B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBytes(tt.in); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatBitrateLabel(t *testing.T) {
	tests := []struct {
		name string
		kbps int64
		want string
	}{
		{"low kbps", 400, "400 kbps"},
		{"boundary", 999, "999 kbps"},
		{"mbps", 6000, "6.0 Mbps"},
		{"fractional mbps", 2500, "2.5 Mbps"},
		{"zero", 0, "0 kbps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBitrateLabel(tt.kbps); got != tt.want {
				t.Errorf("FormatBitrateLabel(%d) = %q, want %q", tt.kbps, got, tt.want)
			}
		})
	}
}
