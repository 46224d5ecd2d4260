package geometry

import (
	"testing"
)

func TestRectFromCornersNormalizes(t *testing.T) {
	tests := []struct {
		name string
		a, b Point2D
		want Rect
	}{
		{"top-left to bottom-right", Point2D{X: 10, Y: 20}, Point2D{X: 110, Y: 220}, Rect{X: 10, Y: 20, Width: 100, Height: 200}},
		{"bottom-right to top-left", Point2D{X: 110, Y: 220}, Point2D{X: 10, Y: 20}, Rect{X: 10, Y: 20, Width: 100, Height: 200}},
		{"bottom-left to top-right", Point2D{X: 10, Y: 220}, Point2D{X: 110, Y: 20}, Rect{X: 10, Y: 20, Width: 100, Height: 200}},
		{"coincident", Point2D{X: 5, Y: 5}, Point2D{X: 5, Y: 5}, Rect{X: 5, Y: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RectFromCorners(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("RectFromCorners(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 50, Width: 100, Height: 100}

	got := a.Intersect(b)
	want := Rect{X: 50, Y: 50, Width: 50, Height: 50}
	if got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}

	c := Rect{X: 200, Y: 200, Width: 10, Height: 10}
	if !a.Intersect(c).Empty() {
		t.Errorf("disjoint rectangles should intersect to an empty rect, got %v", a.Intersect(c))
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 100}
	if !r.Contains(Point2D{X: 10, Y: 10}) {
		t.Error("edge point should be contained")
	}
	if !r.Contains(Point2D{X: 110, Y: 110}) {
		t.Error("far edge point should be contained")
	}
	if r.Contains(Point2D{X: 111, Y: 50}) {
		t.Error("outside point should not be contained")
	}
}

func TestClampPoint(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	got := r.ClampPoint(Point2D{X: -10, Y: 70})
	want := Point2D{X: 0, Y: 50}
	if got != want {
		t.Errorf("ClampPoint = %v, want %v", got, want)
	}
}

func TestClampTranslationKeepsSize(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1000, Height: 800}

	r := Rect{X: -50, Y: 700, Width: 200, Height: 150}
	got := r.ClampTranslation(bounds)
	want := Rect{X: 0, Y: 650, Width: 200, Height: 150}
	if got != want {
		t.Errorf("ClampTranslation = %v, want %v", got, want)
	}

	inside := Rect{X: 100, Y: 100, Width: 200, Height: 150}
	if inside.ClampTranslation(bounds) != inside {
		t.Errorf("rect already inside bounds must not move")
	}
}

func TestUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 5, Width: 10, Height: 10}
	got := a.Union(b)
	want := Rect{X: 0, Y: 0, Width: 30, Height: 15}
	if got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
}
