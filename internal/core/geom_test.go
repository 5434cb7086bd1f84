package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 10)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{15, 15, true},  // Inside
		{10, 10, true},  // Top-left corner (inclusive)
		{29, 19, true},  // Bottom-right (exclusive boundary - 1)
		{30, 15, false}, // Right edge (exclusive)
		{15, 20, false}, // Bottom edge (exclusive)
		{9, 15, false},  // Left of rect
		{15, 9, false},  // Above rect
	}

	for _, tt := range tests {
		result := r.Contains(tt.x, tt.y)
		if result != tt.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, result, tt.expected)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestRectCentered(t *testing.T) {
	tests := []struct {
		name  string
		outer Rect
		w, h  int
		want  Rect
	}{
		{"fits", NewRect(0, 0, 80, 24), 10, 4, NewRect(35, 10, 10, 4)},
		{"offset outer", NewRect(2, 3, 10, 10), 4, 4, NewRect(5, 6, 4, 4)},
		{"too wide", NewRect(0, 0, 10, 10), 20, 2, NewRect(0, 4, 20, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outer.Centered(tt.w, tt.h); got != tt.want {
				t.Errorf("Centered(%d, %d) = %+v, expected %+v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // Within range
		{-5, 0, 10, 0},  // Below min
		{15, 0, 10, 10}, // Above max
		{0, 0, 10, 0},   // At min
		{10, 0, 10, 10}, // At max
	}

	for _, tt := range tests {
		result := Clamp(tt.val, tt.lo, tt.hi)
		if result != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.lo, tt.hi, result, tt.expected)
		}
	}
}
