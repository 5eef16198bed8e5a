package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/devskill-org/sundowner/sun"
)

// SunResponse is the /api/sun response body. The shape mirrors the
// service's JSON contract: queried coordinates plus an ordered list of days.
type SunResponse struct {
	LatLon LatLon    `json:"latlon"`
	Days   []DayJSON `json:"days"`
}

// LatLon echoes the queried coordinates.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DayJSON is one day's events, each rendered per the requested output type
// or null when the event does not occur.
type DayJSON struct {
	Date   string         `json:"date"`
	Events map[string]any `json:"events"`
}

// sunHandler handles GET /api/sun?lat=&lon=&start=&end=&output_type=.
// start defaults to today (UTC), end defaults to start. Malformed parameters
// are client errors, never silently defaulted.
func (ws *WebServer) sunHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	started := time.Now()
	q := r.URL.Query()

	lat, err := parseCoordinate(q.Get("lat"), "lat")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lon, err := parseCoordinate(q.Get("lon"), "lon")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	obs, err := sun.NewObserver(lat, lon)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := sun.DayOf(time.Now())
	if s := q.Get("start"); s != "" {
		if start, err = ParseDay(s); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	end := start
	if s := q.Get("end"); s != "" {
		if end, err = ParseDay(s); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	outputType := q.Get("output_type")
	if outputType == "" {
		outputType = "iso"
	}
	if outputType != "js" && outputType != "dt" && outputType != "iso" {
		http.Error(w, fmt.Sprintf("unknown output_type %q, want js, dt, or iso", outputType),
			http.StatusBadRequest)
		return
	}

	if days := rangeDays(start, end); days > ws.config.MaxRangeDays {
		http.Error(w, fmt.Sprintf("range spans %d days, maximum is %d", days, ws.config.MaxRangeDays),
			http.StatusBadRequest)
		return
	}

	results, err := sun.EvaluateRange(obs, start, end)
	if err != nil {
		var invalid *sun.InvalidRangeError
		if errors.As(err, &invalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ws.logger.Printf("Range evaluation failed for (%g, %g) %s..%s: %v", lat, lon, start, end, err)
		http.Error(w, "calculation failed", http.StatusInternalServerError)
		return
	}

	response := SunResponse{
		LatLon: LatLon{Lat: lat, Lon: lon},
		Days:   make([]DayJSON, 0, len(results)),
	}
	for _, day := range results {
		events := make(map[string]any, len(day.Events))
		for name, res := range day.Events {
			events[name] = renderEvent(res, outputType)
		}
		response.Days = append(response.Days, DayJSON{Date: day.Day.String(), Events: events})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	ws.metrics.Record(lat, lon, start, end, len(results), time.Since(started))
}

// ParseDay parses a calendar date in ISO (2006-01-02) or compact (20060102)
// form into a UTC CalendarDay.
func ParseDay(s string) (sun.CalendarDay, error) {
	for _, layout := range []string{time.DateOnly, "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return sun.DayOf(t), nil
		}
	}
	return sun.CalendarDay{}, fmt.Errorf("unrecognized date %q, want YYYY-MM-DD or YYYYMMDD", s)
}

func parseCoordinate(s, name string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing required parameter %q", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: not a number", name, s)
	}
	return v, nil
}

// renderEvent renders one event result per the requested output type:
// "js" is epoch milliseconds, "dt" a native datetime value, "iso" ISO-8601
// text. Absence is always null.
func renderEvent(res sun.EventResult, outputType string) any {
	if !res.Occurs {
		return nil
	}
	switch outputType {
	case "js":
		return res.Time.UnixMilli()
	case "dt":
		return res.Time.UTC()
	default: // iso
		return res.Time.UTC().Format(time.RFC3339)
	}
}

// rangeDays counts the calendar days from start to end inclusive. Negative
// ranges report 0 and are rejected later by the evaluator.
func rangeDays(start, end sun.CalendarDay) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Start().Sub(start.Start())/(24*time.Hour)) + 1
}
