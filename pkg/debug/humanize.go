package debug

import (
	"fmt"
	"math"
	"time"
)

const day = 24 * time.Hour

// Humanize renders d in the short form used for diff suffixes: 12ms, 3s, 5m,
// 2h, 1d.
func Humanize(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)
	abs := math.Abs(ms)
	switch {
	case abs >= float64(day/time.Millisecond):
		return fmt.Sprintf("%dd", int64(math.Round(ms/float64(day/time.Millisecond))))
	case abs >= float64(time.Hour/time.Millisecond):
		return fmt.Sprintf("%dh", int64(math.Round(ms/float64(time.Hour/time.Millisecond))))
	case abs >= float64(time.Minute/time.Millisecond):
		return fmt.Sprintf("%dm", int64(math.Round(ms/float64(time.Minute/time.Millisecond))))
	case abs >= float64(time.Second/time.Millisecond):
		return fmt.Sprintf("%ds", int64(math.Round(ms/float64(time.Second/time.Millisecond))))
	default:
		return fmt.Sprintf("%dms", int64(ms))
	}
}
