package leveling

import "testing"

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		name string
		xp   int
		want int
	}{
		{name: "zero xp is level 1", xp: 0, want: 1},
		{name: "negative xp is level 1", xp: -50, want: 1},
		{name: "just below first threshold", xp: 99, want: 1},
		{name: "first threshold", xp: 100, want: 2},
		{name: "mid range", xp: 999, want: 10},
		{name: "exact multiple", xp: 1000, want: 11},
		{name: "large total", xp: 100000, want: 1001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateLevel(tt.xp); got != tt.want {
				t.Errorf("CalculateLevel(%d) = %d, want %d", tt.xp, got, tt.want)
			}
		})
	}
}

func TestXPForNextLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{level: 1, want: 100},
		{level: 2, want: 200},
		{level: 10, want: 1000},
	}

	for _, tt := range tests {
		if got := XPForNextLevel(tt.level); got != tt.want {
			t.Errorf("XPForNextLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

// Level boundaries must agree in both directions: reaching XPForNextLevel(n)
// yields level n+1.
func TestLevelBoundariesAgree(t *testing.T) {
	for level := 1; level <= 50; level++ {
		threshold := XPForNextLevel(level)
		if got := CalculateLevel(threshold); got != level+1 {
			t.Errorf("CalculateLevel(XPForNextLevel(%d)) = %d, want %d", level, got, level+1)
		}
		if got := CalculateLevel(threshold - 1); got != level {
			t.Errorf("CalculateLevel(%d) = %d, want %d", threshold-1, got, level)
		}
	}
}
