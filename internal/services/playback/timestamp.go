package playback

import (
	"fmt"
	"math"
)

// FormatTimestamp renders a playback time in seconds as "m:ss", the
// format shown next to the seek bar
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
