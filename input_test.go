package main

import "testing"

func TestRotateDirection(t *testing.T) {
	cases := []struct {
		name        string
		left, right bool
		stick       float64
		want        int
	}{
		{"idle", false, false, 0, 0},
		{"left", true, false, 0, -1},
		{"right", false, true, 0, 1},
		{"both_cancel", true, true, 0, 0},
		{"stick_in_deadzone", false, false, 0.15, 0},
		{"stick_left", false, false, -0.8, -1},
		{"stick_right", false, false, 0.5, 1},
		{"keys_beat_stick", true, false, 0.9, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := rotateDirection(c.left, c.right, c.stick); got != c.want {
				t.Fatalf("rotateDirection(%v, %v, %v) = %d, want %d", c.left, c.right, c.stick, got, c.want)
			}
		})
	}
}
