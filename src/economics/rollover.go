package economics

import (
	"sort"
	"time"
)

const maxRolloverCandidates = 3

// RolloverCandidates picks the expirations best suited for rolling a
// position out of currentExpiration: only dates strictly after the current
// one qualify, ranked by distance to the target offset (one week later by
// default) and truncated to the top three. The sort is stable, so
// equal-distance candidates keep their original relative order.
func RolloverCandidates(currentExpiration time.Time, available []time.Time, targetOffsetDays int) []time.Time {
	target := currentExpiration.AddDate(0, 0, targetOffsetDays)

	var candidates []time.Time
	for _, expiration := range available {
		if expiration.After(currentExpiration) {
			candidates = append(candidates, expiration)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		di := absDuration(candidates[i].Sub(target))
		dj := absDuration(candidates[j].Sub(target))
		return di < dj
	})

	if len(candidates) > maxRolloverCandidates {
		candidates = candidates[:maxRolloverCandidates]
	}

	return candidates
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}

	return d
}
