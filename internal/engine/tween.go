package engine

import (
	"math"
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// EaseOutQuart maps linear progress in [0,1] onto an ease-out quartic curve.
func EaseOutQuart(progress float64) float64 {
	return 1 - math.Pow(1-progress, config.EaseExponent)
}

// Tween is the value displayed elapsed into a count-up from start to target.
// Once the duration has passed it returns target exactly.
func Tween(start, target int, elapsed, duration time.Duration) int {
	if duration <= 0 || elapsed >= duration {
		return target
	}

	progress := math.Max(float64(elapsed)/float64(duration), 0)
	eased := EaseOutQuart(progress)
	return int(math.Floor(float64(start) + float64(target-start)*eased))
}

// RevealDelay is the delay before the card at index is shown.
func RevealDelay(index int) time.Duration {
	return time.Duration(index) * config.CardRevealStep
}
