package colorutil

import (
	"image/color"
	"testing"
)

func TestWithAlpha(t *testing.T) {
	got := WithAlpha(White, 128)
	want := color.RGBA{R: 255, G: 255, B: 255, A: 128}
	if got != want {
		t.Errorf("WithAlpha = %v, want %v", got, want)
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		name     string
		dst, src color.RGBA
		opacity  uint8
		want     color.RGBA
	}{
		{"full opacity is src", Black, White, 255, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"zero opacity is dst", Black, White, 0, color.RGBA{R: 0, G: 0, B: 0, A: 255}},
		{"half mixes", Black, color.RGBA{R: 200, G: 100, B: 50, A: 255}, 255, color.RGBA{R: 200, G: 100, B: 50, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blend(tt.dst, tt.src, tt.opacity); got != tt.want {
				t.Errorf("Blend = %v, want %v", got, tt.want)
			}
		})
	}

	mid := Blend(Black, White, 128)
	if mid.R < 127 || mid.R > 129 || mid.A != 255 {
		t.Errorf("half blend = %v, want ~gray 128 opaque", mid)
	}
}
