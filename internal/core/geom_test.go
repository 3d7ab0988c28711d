package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
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

func TestBoxCrossesVertical(t *testing.T) {
	b := Box{Center: Vec{X: 25, Y: 25}, R: 5}

	tests := []struct {
		name       string
		x, y0, y1  float64
		expected   bool
	}{
		{"through middle", 25, 0, 50, true},
		{"touching right edge", 30, 0, 50, false},
		{"left of box", 10, 0, 50, false},
		{"segment above box", 25, 0, 20, false},
		{"segment clips top", 25, 0, 21, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.CrossesVertical(tc.x, tc.y0, tc.y1); got != tc.expected {
				t.Errorf("CrossesVertical(%v, %v, %v) = %v, expected %v", tc.x, tc.y0, tc.y1, got, tc.expected)
			}
		})
	}
}

func TestBoxCrossesHorizontal(t *testing.T) {
	b := Box{Center: Vec{X: 25, Y: 25}, R: 5}

	if !b.CrossesHorizontal(25, 0, 50) {
		t.Error("horizontal segment through center should cross")
	}
	if b.CrossesHorizontal(20, 0, 50) {
		t.Error("segment on the top edge should not cross")
	}
	if b.CrossesHorizontal(25, 30, 60) {
		t.Error("segment starting at the right edge should not cross")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if ClampF(-5.5, 0, 10) != 0 || ClampF(15.5, 0, 10) != 10 || ClampF(5.5, 0, 10) != 5.5 {
		t.Error("ClampF returned unexpected values")
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 || Abs(-5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned unexpected values")
	}
}

func TestDirectionHelpers(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: double opposite should be identity", d)
		}
		dr, dc := d.Delta()
		or, oc := d.Opposite().Delta()
		if dr != -or || dc != -oc {
			t.Errorf("%v: delta is not mirrored by opposite", d)
		}
	}
}

func TestDirectionalState(t *testing.T) {
	var s DirectionalState
	if s.Any() {
		t.Fatal("zero state should have no direction")
	}
	s.Set(DirLeft, true)
	if !s.Get(DirLeft) || !s.Left || !s.Any() {
		t.Error("Set(DirLeft) not reflected")
	}
	s.Set(DirLeft, false)
	if s.Any() {
		t.Error("clearing the only direction should leave none")
	}
}
