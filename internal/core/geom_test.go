package core

import "testing"

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 20, 10)
	inner := outer.Centered(6, 4)

	if inner.X != 7 || inner.Y != 3 || inner.W != 6 || inner.H != 4 {
		t.Errorf("Centered(6, 4) = %+v, expected {7 3 6 4}", inner)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		got      int
		expected int
	}{
		{"wrap negative", Wrap(-1, 6), 5},
		{"wrap overflow", Wrap(6, 6), 0},
		{"wrap far negative", Wrap(-13, 6), 5},
		{"wrap inside", Wrap(4, 6), 4},
		{"wrap empty range", Wrap(4, 0), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("got %d, expected %d", tc.got, tc.expected)
			}
		})
	}
}

func TestColorANSI(t *testing.T) {
	if ColorDefault.ANSI() != "" {
		t.Errorf("ColorDefault.ANSI() = %q, expected empty", ColorDefault.ANSI())
	}
	if ColorOrange.ANSI() != "208" {
		t.Errorf("ColorOrange.ANSI() = %q, expected 208", ColorOrange.ANSI())
	}
	if Color(200).ANSI() != "" {
		t.Error("Unknown colors should map to empty")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionSelect)

	if !f.Has(ActionSelect) {
		t.Error("Has(ActionSelect) should be true after Set")
	}
	if f.Has(ActionHint) {
		t.Error("Has(ActionHint) should be false")
	}

	f.Clear()
	if f.Has(ActionSelect) {
		t.Error("Clear should remove all actions")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("Zero frame should report no actions")
	}
	if ActionHint.String() != "Hint" || Action(99).String() != "Unknown" {
		t.Error("Action.String mismatch")
	}
}
