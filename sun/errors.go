package sun

import "fmt"

// InvalidObserverError reports a geographic coordinate outside its valid range.
// It is returned by NewObserver before any calculation takes place.
type InvalidObserverError struct {
	Field   string
	Value   float64
	Message string
}

func (e *InvalidObserverError) Error() string {
	return fmt.Sprintf("invalid observer %s %g: %s", e.Field, e.Value, e.Message)
}

// InvalidRangeError reports a day range whose end precedes its start.
type InvalidRangeError struct {
	Start CalendarDay
	End   CalendarDay
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid day range: end %s is before start %s", e.End, e.Start)
}
