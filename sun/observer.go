package sun

// Observer is an observation site. It is a plain value: every calculation
// receives its own copy, so nothing leaks between days or events.
type Observer struct {
	Latitude    float64 // degrees, north positive, [-90, 90]
	Longitude   float64 // degrees, east positive, [-180, 180]
	Elevation   float64 // meters above sea level
	Pressure    float64 // hPa; 0 disables the refraction correction
	Temperature float64 // °C, only used when Pressure > 0
}

// NewObserver returns an Observer for the given coordinate, or an
// *InvalidObserverError when either value is outside its geographic range.
// The returned observer has pressure 0: the canonical -0°34' sunrise/sunset
// threshold already folds in standard refraction, so no separate correction
// is applied. Set Pressure (and optionally Temperature) on the returned
// value to model refraction explicitly for other thresholds.
func NewObserver(latitude, longitude float64) (Observer, error) {
	if latitude < -90 || latitude > 90 {
		return Observer{}, &InvalidObserverError{
			Field:   "latitude",
			Value:   latitude,
			Message: "must be between -90 and 90",
		}
	}
	if longitude < -180 || longitude > 180 {
		return Observer{}, &InvalidObserverError{
			Field:   "longitude",
			Value:   longitude,
			Message: "must be between -180 and 180",
		}
	}

	return Observer{
		Latitude:    latitude,
		Longitude:   longitude,
		Temperature: 15,
	}, nil
}
