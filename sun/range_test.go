package sun

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestEvaluateRange_London(t *testing.T) {
	obs := mustObserver(t, 51.5, -0.13)
	start := CalendarDay{Year: 2024, Month: time.June, Day: 20}
	end := CalendarDay{Year: 2024, Month: time.June, Day: 22}

	results, err := EvaluateRange(obs, start, end)
	if err != nil {
		t.Fatalf("EvaluateRange() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d day results, want 3", len(results))
	}

	for i, day := range results {
		wantDay := CalendarDay{Year: 2024, Month: time.June, Day: 20 + i}
		if day.Day != wantDay {
			t.Errorf("results[%d].Day = %v, want %v", i, day.Day, wantDay)
		}
		if len(day.Events) != 4 {
			t.Errorf("results[%d] has %d events, want 4", i, len(day.Events))
		}

		dayStart := day.Day.Start()
		dayEnd := dayStart.Add(24 * time.Hour)
		for name, res := range day.Events {
			if !res.Occurs {
				t.Errorf("results[%d] %s absent, expected an instant", i, name)
				continue
			}
			if res.Time.Before(dayStart) || !res.Time.Before(dayEnd) {
				t.Errorf("results[%d] %s at %v, outside %v", i, name, res.Time, day.Day)
			}
		}
	}
}

func TestEvaluateRange_SingleDay(t *testing.T) {
	obs := mustObserver(t, 51.5, -0.13)
	day := CalendarDay{Year: 2024, Month: time.June, Day: 20}

	results, err := EvaluateRange(obs, day, day)
	if err != nil {
		t.Fatalf("EvaluateRange() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d day results, want 1", len(results))
	}
	if results[0].Day != day {
		t.Errorf("results[0].Day = %v, want %v", results[0].Day, day)
	}
}

func TestEvaluateRange_EndBeforeStart(t *testing.T) {
	obs := mustObserver(t, 51.5, -0.13)
	start := CalendarDay{Year: 2024, Month: time.June, Day: 22}
	end := CalendarDay{Year: 2024, Month: time.June, Day: 20}

	results, err := EvaluateRange(obs, start, end)

	var invalid *InvalidRangeError
	if !errors.As(err, &invalid) {
		t.Fatalf("EvaluateRange() error = %v, want *InvalidRangeError", err)
	}
	if results != nil {
		t.Errorf("results = %v, want nil on error", results)
	}
	if invalid.Start != start || invalid.End != end {
		t.Errorf("error range = %v..%v, want %v..%v", invalid.Start, invalid.End, start, end)
	}
}

func TestEvaluateRange_Restartable(t *testing.T) {
	// Independent calls share no state: the same range twice produces
	// identical results.
	obs := mustObserver(t, 70, 0)
	start := CalendarDay{Year: 2024, Month: time.December, Day: 20}
	end := CalendarDay{Year: 2024, Month: time.December, Day: 23}

	first, err := EvaluateRange(obs, start, end)
	if err != nil {
		t.Fatalf("EvaluateRange() error = %v", err)
	}
	second, err := EvaluateRange(obs, start, end)
	if err != nil {
		t.Fatalf("EvaluateRange() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated EvaluateRange() calls differ")
	}
}

func TestEvaluateRange_MonthBoundary(t *testing.T) {
	obs := mustObserver(t, 51.5, -0.13)
	start := CalendarDay{Year: 2024, Month: time.February, Day: 28}
	end := CalendarDay{Year: 2024, Month: time.March, Day: 1}

	results, err := EvaluateRange(obs, start, end)
	if err != nil {
		t.Fatalf("EvaluateRange() error = %v", err)
	}

	want := []string{"2024-02-28", "2024-02-29", "2024-03-01"} // 2024 is a leap year
	if len(results) != len(want) {
		t.Fatalf("got %d day results, want %d", len(results), len(want))
	}
	for i, day := range results {
		if day.Day.String() != want[i] {
			t.Errorf("results[%d].Day = %s, want %s", i, day.Day, want[i])
		}
	}
}
