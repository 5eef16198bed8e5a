package sun

import "time"

// Direction selects which way the Sun moves through an altitude threshold.
type Direction int

const (
	// Rising means the altitude is increasing through the threshold.
	Rising Direction = iota
	// Setting means the altitude is decreasing through the threshold.
	Setting
)

func (d Direction) String() string {
	if d == Rising {
		return "rising"
	}
	return "setting"
}

const (
	// searchWindow bounds the forward search. The apparent solar day is not
	// exactly 24h, so the window carries an hour of margin past it.
	searchWindow = 25 * time.Hour

	// coarseStep is the bracketing sample interval. It has to be short
	// enough to catch grazing crossings near the circumpolar boundary.
	coarseStep = 5 * time.Minute

	// timeTolerance is the bisection stopping width.
	timeTolerance = time.Second
)

// FindCrossing returns the first instant at or after epoch at which the
// Sun's apparent altitude crosses thresholdDeg in the given direction.
// ok is false when no such crossing exists within the bounded search window,
// which is the circumpolar case: the Sun stays on one side of the threshold
// for the whole solar day (polar day or polar night).
func FindCrossing(obs Observer, epoch time.Time, thresholdDeg float64, dir Direction) (t time.Time, ok bool) {
	prevT := epoch
	prev := obs.Altitude(prevT) - thresholdDeg

	for step := coarseStep; step <= searchWindow; step += coarseStep {
		curT := epoch.Add(step)
		cur := obs.Altitude(curT) - thresholdDeg

		if crosses(prev, cur, dir) {
			return bisect(obs, prevT, curT, thresholdDeg, dir), true
		}

		prevT, prev = curT, cur
	}

	return time.Time{}, false
}

// crosses reports whether (altitude - threshold) moving from before to after
// is a crossing in the requested direction.
func crosses(before, after float64, dir Direction) bool {
	if dir == Rising {
		return before < 0 && after >= 0
	}
	return before > 0 && after <= 0
}

// bisect narrows a bracketed crossing down to timeTolerance.
func bisect(obs Observer, lo, hi time.Time, thresholdDeg float64, dir Direction) time.Time {
	loVal := obs.Altitude(lo) - thresholdDeg

	for hi.Sub(lo) > timeTolerance {
		mid := lo.Add(hi.Sub(lo) / 2)
		midVal := obs.Altitude(mid) - thresholdDeg

		if crosses(loVal, midVal, dir) {
			hi = mid
		} else {
			lo, loVal = mid, midVal
		}
	}

	return lo.Add(hi.Sub(lo) / 2)
}
