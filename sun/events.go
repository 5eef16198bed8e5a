package sun

import "time"

const (
	// HorizonAltitude is the sunrise/sunset threshold: the Sun's center at
	// -0°34', the NOAA convention that folds standard refraction into the
	// threshold itself (used with refraction disabled on the observer).
	HorizonAltitude = -34.0 / 60.0

	// CivilTwilightAltitude marks civil dawn and civil dusk.
	CivilTwilightAltitude = -6.0
)

// HorizonEvent names an altitude threshold and the crossing direction that
// together define a solar event.
type HorizonEvent struct {
	Name      string
	Altitude  float64 // degrees
	Direction Direction
}

// CanonicalEvents returns the four events every DayResult carries, in the
// chronological order they occur on a non-circumpolar day.
func CanonicalEvents() []HorizonEvent {
	return []HorizonEvent{
		{Name: "civil_dawn", Altitude: CivilTwilightAltitude, Direction: Rising},
		{Name: "sunrise", Altitude: HorizonAltitude, Direction: Rising},
		{Name: "sunset", Altitude: HorizonAltitude, Direction: Setting},
		{Name: "civil_dusk", Altitude: CivilTwilightAltitude, Direction: Setting},
	}
}

// EventResult is either a UTC instant or an explicit absence. Occurs is
// false when the Sun never crosses the event's threshold in the event's
// direction on that day; absence is a correct astronomical outcome, not an
// error.
type EventResult struct {
	Time   time.Time
	Occurs bool
}

// DayResult holds the results of all canonical events for one calendar day,
// keyed by event name.
type DayResult struct {
	Day    CalendarDay
	Events map[string]EventResult
}

// ComputeDay computes the four canonical events for one observer and one
// calendar day, searching forward from the day's 00:00 UTC.
func ComputeDay(obs Observer, day CalendarDay) DayResult {
	epoch := day.Start()
	events := make(map[string]EventResult, 4)

	for _, ev := range CanonicalEvents() {
		when, ok := FindCrossing(obs, epoch, ev.Altitude, ev.Direction)
		events[ev.Name] = EventResult{Time: when, Occurs: ok}
	}

	return DayResult{Day: day, Events: events}
}
