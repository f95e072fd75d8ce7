package domain

import "time"

// HeroInterval is how long each hero background stays on screen.
const HeroInterval = 5 * time.Second

// HeroIndexAt returns which of n hero images is showing after elapsed time.
func HeroIndexAt(elapsed, interval time.Duration, n int) int {
	if n <= 0 {
		return 0
	}
	if interval <= 0 || elapsed < 0 {
		return 0
	}
	return int(elapsed/interval) % n
}
