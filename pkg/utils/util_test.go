package utils

import (
	"testing"
)

func TestIsBlank(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n ", true},
		{"Helios", false},
		{"  x  ", false},
	}

	for _, tt := range tests {
		if got := IsBlank(tt.in); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDataURI(t *testing.T) {
	if got := DataURI("image/png", "QUJD"); got != "data:image/png;base64,QUJD" {
		t.Errorf("unexpected data URI: %s", got)
	}
}
