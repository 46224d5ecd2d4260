package render

import (
	"image"
	"path/filepath"
	"testing"

	"tricolor/pkg/geometry"
)

func grayPlate(r image.Rectangle, fill uint8) *image.Gray {
	plate := image.NewGray(r)
	for i := range plate.Pix {
		plate.Pix[i] = fill
	}
	return plate
}

func TestCombine(t *testing.T) {
	bounds := image.Rect(0, 0, 4, 3)
	plates := [3]*image.Gray{
		grayPlate(bounds, 200),
		grayPlate(bounds, 100),
		grayPlate(bounds, 50),
	}

	result := Combine(plates)
	if result.Bounds() != bounds {
		t.Fatalf("bounds = %v, want %v", result.Bounds(), bounds)
	}
	px := result.RGBAAt(2, 1)
	if px.R != 200 || px.G != 100 || px.B != 50 || px.A != 255 {
		t.Errorf("pixel = %v, want {200 100 50 255}", px)
	}
}

func TestCombineNilPlateContributesZero(t *testing.T) {
	bounds := image.Rect(0, 0, 2, 2)
	plates := [3]*image.Gray{grayPlate(bounds, 255), nil, nil}

	px := Combine(plates).RGBAAt(0, 0)
	if px.R != 255 || px.G != 0 || px.B != 0 {
		t.Errorf("pixel = %v, want pure red", px)
	}
}

func TestCombineUnionBounds(t *testing.T) {
	plates := [3]*image.Gray{
		grayPlate(image.Rect(0, 0, 4, 4), 100),
		grayPlate(image.Rect(0, 0, 8, 2), 100),
		nil,
	}

	result := Combine(plates)
	if result.Bounds() != image.Rect(0, 0, 8, 4) {
		t.Fatalf("bounds = %v, want union (0,0)-(8,4)", result.Bounds())
	}
	// Outside the red plate but inside the green one.
	px := result.RGBAAt(6, 1)
	if px.R != 0 || px.G != 100 {
		t.Errorf("pixel at (6,1) = %v, want {0 100 0 255}", px)
	}
	// Outside the green plate but inside the red one.
	px = result.RGBAAt(2, 3)
	if px.R != 100 || px.G != 0 {
		t.Errorf("pixel at (2,3) = %v, want {100 0 0 255}", px)
	}
}

func TestCombineEmpty(t *testing.T) {
	result := Combine([3]*image.Gray{})
	if !result.Bounds().Empty() {
		t.Errorf("bounds = %v, want empty", result.Bounds())
	}
}

func TestSingle(t *testing.T) {
	plate := grayPlate(image.Rect(0, 0, 3, 3), 77)
	result := Single(plate)
	px := result.RGBAAt(1, 1)
	if px.R != 77 || px.G != 77 || px.B != 77 || px.A != 255 {
		t.Errorf("pixel = %v, want gray 77", px)
	}

	if !Single(nil).Bounds().Empty() {
		t.Error("nil plate should render empty")
	}
}

func TestApplyCrop(t *testing.T) {
	plates := [3]*image.Gray{
		grayPlate(image.Rect(0, 0, 100, 80), 10),
		grayPlate(image.Rect(0, 0, 100, 80), 20),
		nil,
	}

	out, err := ApplyCrop(plates, geometry.Rect{X: 10, Y: 20, Width: 30, Height: 40})
	if err != nil {
		t.Fatalf("ApplyCrop: %v", err)
	}
	for i, plate := range out[:2] {
		b := plate.Bounds()
		if b.Dx() != 30 || b.Dy() != 40 {
			t.Errorf("plate %d cropped to %v, want 30x40", i, b)
		}
	}
	if out[2] != nil {
		t.Error("nil plate should stay nil")
	}
	if out[0].GrayAt(out[0].Bounds().Min.X, out[0].Bounds().Min.Y).Y != 10 {
		t.Error("crop changed pixel values")
	}
}

func TestApplyCropRoundsToPixels(t *testing.T) {
	plates := [3]*image.Gray{grayPlate(image.Rect(0, 0, 100, 100), 1), nil, nil}
	out, err := ApplyCrop(plates, geometry.Rect{X: 9.7, Y: 10.2, Width: 29.9, Height: 30.1})
	if err != nil {
		t.Fatalf("ApplyCrop: %v", err)
	}
	b := out[0].Bounds()
	if b.Dx() != 30 || b.Dy() != 30 {
		t.Errorf("rounded crop = %v, want 30x30", b)
	}
}

func TestApplyCropErrors(t *testing.T) {
	plates := [3]*image.Gray{grayPlate(image.Rect(0, 0, 50, 50), 1), nil, nil}

	if _, err := ApplyCrop(plates, geometry.Rect{}); err == nil {
		t.Error("degenerate rect should fail")
	}
	if _, err := ApplyCrop(plates, geometry.Rect{X: 200, Y: 200, Width: 10, Height: 10}); err == nil {
		t.Error("rect outside plate bounds should fail")
	}
	// Failure must not touch the plates.
	if plates[0].Bounds().Dx() != 50 {
		t.Error("failed crop modified input")
	}
}

func TestSaveAndLoadChannel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plate.png")

	plate := grayPlate(image.Rect(0, 0, 10, 8), 123)
	if err := Save(plate, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadChannel(path)
	if err != nil {
		t.Fatalf("LoadChannel: %v", err)
	}
	if loaded.Bounds().Dx() != 10 || loaded.Bounds().Dy() != 8 {
		t.Errorf("loaded bounds = %v", loaded.Bounds())
	}
	if got := loaded.GrayAt(5, 4).Y; got != 123 {
		t.Errorf("loaded pixel = %d, want 123", got)
	}
}

func TestLoadChannelMissingFile(t *testing.T) {
	if _, err := LoadChannel(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestChannelString(t *testing.T) {
	tests := []struct {
		ch   Channel
		want string
	}{
		{ChannelRed, "Red"},
		{ChannelGreen, "Green"},
		{ChannelBlue, "Blue"},
		{Channel(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.ch.String(); got != tt.want {
			t.Errorf("Channel(%d).String() = %q, want %q", int(tt.ch), got, tt.want)
		}
	}
}
