// Package leveling holds the pure level math and the XP grant service.
package leveling

// CalculateLevel returns the level for a given XP total.
// Levels start at 1 and advance every 100 XP.
func CalculateLevel(xp int) int {
	if xp <= 0 {
		return 1
	}
	return xp/100 + 1
}

// XPForNextLevel returns the total XP needed to reach the level after the
// given one.
func XPForNextLevel(level int) int {
	return level * 100
}
