package theme

import (
	"image/color"
	"testing"
)

func TestTierColor(t *testing.T) {
	tests := []struct {
		tier string
		want color.Color
	}{
		{"excellent", Success},
		{"good", Secondary},
		{"fair", Warning},
		{"needs improvement", Error},
		{"", TextDim},
	}
	for _, tt := range tests {
		if got := TierColor(tt.tier); got != tt.want {
			t.Errorf("TierColor(%q) = %v, want %v", tt.tier, got, tt.want)
		}
	}
}

func TestDifficultyColor(t *testing.T) {
	tests := []struct {
		difficulty string
		want       color.Color
	}{
		{"basic", Success},
		{"intermediate", Accent},
		{"advanced", Error},
		{"expert", TextDim},
	}
	for _, tt := range tests {
		if got := DifficultyColor(tt.difficulty); got != tt.want {
			t.Errorf("DifficultyColor(%q) = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}
