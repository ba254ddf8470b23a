package task

import "math"

// CompletionRate returns done/total as a percentage rounded to one decimal,
// or 0 when there are no tasks.
func CompletionRate(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(done)/float64(total)*1000) / 10
}
