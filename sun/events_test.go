package sun

import (
	"reflect"
	"testing"
	"time"
)

func TestComputeDay_EventOrdering(t *testing.T) {
	obs := mustObserver(t, 51.5074, -0.1278) // London
	day := CalendarDay{Year: 2024, Month: time.June, Day: 20}

	result := ComputeDay(obs, day)

	if len(result.Events) != 4 {
		t.Fatalf("got %d events, want 4", len(result.Events))
	}

	order := []string{"civil_dawn", "sunrise", "sunset", "civil_dusk"}
	var prev time.Time
	for _, name := range order {
		res, found := result.Events[name]
		if !found {
			t.Fatalf("event %q missing from result", name)
		}
		if !res.Occurs {
			t.Fatalf("event %q absent, expected an instant", name)
		}
		if res.Time.Location() != time.UTC {
			t.Errorf("%s instant not in UTC: %v", name, res.Time)
		}
		if !prev.IsZero() && !res.Time.After(prev) {
			t.Errorf("%s at %v not after previous event at %v", name, res.Time, prev)
		}
		prev = res.Time
	}

	// All four events fall within the calendar day, morning events before
	// noon and evening events after.
	dayStart := day.Start()
	dayEnd := dayStart.Add(24 * time.Hour)
	noon := dayStart.Add(12 * time.Hour)
	for _, name := range []string{"civil_dawn", "sunrise"} {
		at := result.Events[name].Time
		if at.Before(dayStart) || !at.Before(noon) {
			t.Errorf("%s at %v, want within morning of %s", name, at, day)
		}
	}
	for _, name := range []string{"sunset", "civil_dusk"} {
		at := result.Events[name].Time
		if at.Before(noon) || !at.Before(dayEnd) {
			t.Errorf("%s at %v, want within evening of %s", name, at, day)
		}
	}
}

func TestComputeDay_EquatorDayLength(t *testing.T) {
	obs := mustObserver(t, 0, 0)

	days := []CalendarDay{
		{Year: 2024, Month: time.March, Day: 20},
		{Year: 2024, Month: time.June, Day: 20},
		{Year: 2024, Month: time.September, Day: 22},
		{Year: 2024, Month: time.December, Day: 21},
	}

	for _, day := range days {
		result := ComputeDay(obs, day)
		sunrise := result.Events["sunrise"]
		sunset := result.Events["sunset"]
		if !sunrise.Occurs || !sunset.Occurs {
			t.Fatalf("%s: sunrise/sunset missing on the equator", day)
		}

		length := sunset.Time.Sub(sunrise.Time)
		if diff := length - 12*time.Hour; diff < -10*time.Minute || diff > 10*time.Minute {
			t.Errorf("%s: day length %v, want ~12h", day, length)
		}
		t.Logf("%s: day length %v", day, length.Round(time.Second))
	}
}

func TestComputeDay_PolarDayAndNight(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		day     CalendarDay
		absent  []string
		present []string
	}{
		{
			name:   "70N June solstice: continuous daylight",
			lat:    70,
			day:    CalendarDay{Year: 2024, Month: time.June, Day: 20},
			absent: []string{"civil_dawn", "sunrise", "sunset", "civil_dusk"},
		},
		{
			name:    "70N December solstice: no sun, twilight remains",
			lat:     70,
			day:     CalendarDay{Year: 2024, Month: time.December, Day: 21},
			absent:  []string{"sunrise", "sunset"},
			present: []string{"civil_dawn", "civil_dusk"},
		},
		{
			name:   "80N December solstice: full polar night",
			lat:    80,
			day:    CalendarDay{Year: 2024, Month: time.December, Day: 21},
			absent: []string{"civil_dawn", "sunrise", "sunset", "civil_dusk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := mustObserver(t, tt.lat, 0)
			result := ComputeDay(obs, tt.day)

			for _, name := range tt.absent {
				if res := result.Events[name]; res.Occurs {
					t.Errorf("%s occurs at %v, want absent", name, res.Time)
				}
			}
			for _, name := range tt.present {
				if res := result.Events[name]; !res.Occurs {
					t.Errorf("%s absent, want an instant", name)
				}
			}
		})
	}
}

func TestComputeDay_Deterministic(t *testing.T) {
	obs := mustObserver(t, 51.5074, -0.1278)
	day := CalendarDay{Year: 2024, Month: time.June, Day: 20}

	first := ComputeDay(obs, day)
	second := ComputeDay(obs, day)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("ComputeDay() not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestCanonicalEvents(t *testing.T) {
	events := CanonicalEvents()
	if len(events) != 4 {
		t.Fatalf("got %d canonical events, want 4", len(events))
	}

	want := map[string]HorizonEvent{
		"civil_dawn": {Name: "civil_dawn", Altitude: -6, Direction: Rising},
		"sunrise":    {Name: "sunrise", Altitude: -34.0 / 60.0, Direction: Rising},
		"sunset":     {Name: "sunset", Altitude: -34.0 / 60.0, Direction: Setting},
		"civil_dusk": {Name: "civil_dusk", Altitude: -6, Direction: Setting},
	}

	for _, ev := range events {
		if ev != want[ev.Name] {
			t.Errorf("event %q = %+v, want %+v", ev.Name, ev, want[ev.Name])
		}
	}
}
