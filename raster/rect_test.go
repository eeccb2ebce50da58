package raster

import "testing"

func TestRectExpandClamp(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 4, Height: 4}
	e := r.Expand(2)
	want := Rect{X: 8, Y: 8, Width: 8, Height: 8}
	if e != want {
		t.Fatalf("Expand(2) = %v, want %v", e, want)
	}
	if s := (Rect{X: 0, Y: 0, Width: 2, Height: 2}).Expand(-3); !s.Empty() {
		t.Fatalf("negative expand beyond size should yield empty rect, got %v", s)
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want Rect
	}{
		{"inside", Rect{X: 2, Y: 2, Width: 4, Height: 4}, Rect{X: 2, Y: 2, Width: 4, Height: 4}},
		{"overlap", Rect{X: -3, Y: 5, Width: 6, Height: 20}, Rect{X: 0, Y: 5, Width: 3, Height: 5}},
		{"outside", Rect{X: 20, Y: 20, Width: 4, Height: 4}, Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.Intersect(10, 10)
			if got != tt.want {
				t.Fatalf("Intersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 1, Y: 1, Width: 3, Height: 3}
	if !r.Contains(1, 1) || !r.Contains(3, 3) {
		t.Fatalf("Contains should include interior points")
	}
	if r.Contains(4, 1) || r.Contains(1, 4) {
		t.Fatalf("Contains should exclude the far edges")
	}
}
