// Package main provides an example of computing solar events with the sun package.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/devskill-org/sundowner/sun"
)

func main() {
	obs, err := sun.NewObserver(51.5074, -0.1278) // London
	if err != nil {
		log.Fatal(err)
	}

	// Today's events
	today := sun.DayOf(time.Now())
	result := sun.ComputeDay(obs, today)

	fmt.Println("Solar events for", today)
	for _, ev := range sun.CanonicalEvents() {
		res := result.Events[ev.Name]
		if !res.Occurs {
			fmt.Printf("  %-10s does not occur\n", ev.Name)
			continue
		}
		fmt.Printf("  %-10s %s\n", ev.Name, res.Time.Format(time.RFC3339))
	}

	// Sunrise over the next week
	results, err := sun.EvaluateRange(obs, today, sun.DayOf(time.Now().AddDate(0, 0, 6)))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("\nSunrise over the next week:")
	for _, day := range results {
		if sunrise := day.Events["sunrise"]; sunrise.Occurs {
			fmt.Printf("  %s  %s\n", day.Day, sunrise.Time.Format("15:04:05 MST"))
		}
	}
}
