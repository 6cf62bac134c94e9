package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 8, 8),
			b:        NewRect(4, 4, 8, 8),
			expected: true,
		},
		{
			name:     "separated horizontally",
			a:        NewRect(0, 0, 8, 8),
			b:        NewRect(12, 0, 8, 8),
			expected: false,
		},
		{
			name:     "separated vertically",
			a:        NewRect(0, 0, 8, 8),
			b:        NewRect(0, 12, 8, 8),
			expected: false,
		},
		{
			name:     "touching edges do not intersect",
			a:        NewRect(0, 0, 8, 8),
			b:        NewRect(8, 0, 8, 8),
			expected: false,
		},
		{
			name:     "fully contained",
			a:        NewRect(0, 0, 16, 16),
			b:        NewRect(4, 4, 4, 4),
			expected: true,
		},
		{
			name:     "corner overlap of one cell",
			a:        NewRect(0, 0, 8, 8),
			b:        NewRect(7, 7, 8, 8),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			// Intersection is symmetric
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(4, 4, 10, 6)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"interior point", 8, 6, true},
		{"top-left corner inclusive", 4, 4, true},
		{"right edge exclusive", 14, 6, false},
		{"bottom edge exclusive", 8, 10, false},
		{"left of rect", 2, 6, false},
		{"above rect", 8, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdgesAndCenter(t *testing.T) {
	r := NewRect(2, 4, 10, 8)

	if r.Right() != 12 {
		t.Errorf("Right() = %d, expected 12", r.Right())
	}
	if r.Bottom() != 12 {
		t.Errorf("Bottom() = %d, expected 12", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 7 || cy != 8 {
		t.Errorf("Center() = (%d, %d), expected (7, 8)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{3, 0, 6, 3},  // within range
		{-2, 0, 6, 0}, // below min
		{9, 0, 6, 6},  // above max
		{0, 0, 6, 0},  // at min
		{6, 0, 6, 6},  // at max
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{0.5, 0.0, 1.0, 0.5},
		{-0.25, 0.0, 1.0, 0.0},
		{1.75, 0.0, 1.0, 1.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, f  float64
		expected float64
	}{
		{"midpoint", 0, 10, 0.5, 5},
		{"at start", 0, 10, 0, 0},
		{"at end", 0, 10, 1, 10},
		{"factor clamped above one", 0, 10, 2.5, 10},
		{"negative factor clamped to zero", 0, 10, -1, 0},
		{"interpolates downward", 10, 2, 0.25, 8},
		{"negative endpoints", -4, 4, 0.5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Lerp(tc.a, tc.b, tc.f)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Lerp(%v, %v, %v) = %v, expected %v", tc.a, tc.b, tc.f, got, tc.expected)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 {
		t.Error("Min(3, 7) should be 3")
	}
	if Min(7, 3) != 3 {
		t.Error("Min(7, 3) should be 3")
	}
	if Max(3, 7) != 7 {
		t.Error("Max(3, 7) should be 7")
	}
	if Max(7, 3) != 7 {
		t.Error("Max(7, 3) should be 7")
	}
}

func TestAbs(t *testing.T) {
	if Abs(4) != 4 {
		t.Error("Abs(4) should be 4")
	}
	if Abs(-4) != 4 {
		t.Error("Abs(-4) should be 4")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}
