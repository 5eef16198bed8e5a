package sun

import "sync"

// EvaluateRange computes one DayResult per calendar day from start to end
// inclusive, in chronological order. A range whose end precedes its start is
// an *InvalidRangeError rather than an empty result, so a caller mixing up
// its bounds finds out immediately.
//
// Each day is independent and side-effect-free, so days are evaluated
// concurrently; every goroutine writes only its own slice index.
func EvaluateRange(obs Observer, start, end CalendarDay) ([]DayResult, error) {
	if end.Before(start) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}

	var days []CalendarDay
	for d := start; !end.Before(d); d = d.Next() {
		days = append(days, d)
	}

	results := make([]DayResult, len(days))
	var wg sync.WaitGroup
	for i, d := range days {
		wg.Add(1)
		go func(i int, d CalendarDay) {
			defer wg.Done()
			results[i] = ComputeDay(obs, d)
		}(i, d)
	}
	wg.Wait()

	return results, nil
}
