// Package sun computes the UTC instants of solar-altitude events — civil dawn,
// sunrise, sunset, and civil dusk — for an observer at a geographic coordinate
// on a given calendar day.
//
// The package implements its own low-precision solar ephemeris (Meeus-style
// series, good to roughly an arc-minute) and a bounded bracket-and-bisect
// root-finder over the Sun's apparent altitude. Days on which the Sun never
// crosses an event's altitude threshold (polar day or polar night) yield an
// explicit absence result rather than an error.
//
// Basic Usage:
//
//	obs, err := sun.NewObserver(51.5074, -0.1278) // London
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result := sun.ComputeDay(obs, sun.CalendarDay{Year: 2024, Month: time.June, Day: 20})
//
//	for _, ev := range sun.CanonicalEvents() {
//		res := result.Events[ev.Name]
//		if !res.Occurs {
//			fmt.Printf("%s: does not occur\n", ev.Name)
//			continue
//		}
//		fmt.Printf("%s: %s\n", ev.Name, res.Time.Format(time.RFC3339))
//	}
//
// Date ranges are evaluated with EvaluateRange, which returns one DayResult
// per calendar day in chronological order.
//
// All times are UTC. Converting to local time is up to the caller.
//
// Sunrise and sunset use the NOAA convention of -0°34' apparent altitude with
// refraction disabled (pressure 0), so the threshold itself already accounts
// for standard atmospheric refraction. Civil dawn and dusk use -6°.
package sun
