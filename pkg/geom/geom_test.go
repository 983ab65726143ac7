package geom

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPointRotate(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		origin Point
		deg    float64
		want   Point
	}{
		{"zero", Point{10, 0}, Point{}, 0, Point{10, 0}},
		{"quarter turn", Point{10, 0}, Point{}, 90, Point{0, 10}},
		{"half turn about center", Point{0, 0}, Point{50, 50}, 180, Point{100, 100}},
		{"negative", Point{0, 10}, Point{}, -90, Point{10, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Rotate(tt.origin, tt.deg)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
				t.Errorf("Rotate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Width: 100, Height: 50}

	if got := r.Right(); got != 110 {
		t.Errorf("Right() = %v, want 110", got)
	}
	if got := r.Bottom(); got != 70 {
		t.Errorf("Bottom() = %v, want 70", got)
	}
	if got := r.CenterX(); got != 60 {
		t.Errorf("CenterX() = %v, want 60", got)
	}
	if got := r.CenterY(); got != 45 {
		t.Errorf("CenterY() = %v, want 45", got)
	}
	if got := r.Translate(Point{5, -5}); got.Left != 15 || got.Top != 15 {
		t.Errorf("Translate() = %v, want left 15 top 15", got)
	}
}
