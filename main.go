// Package main provides the sundowner webservice entry point and CLI interface.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devskill-org/sundowner/server"
	"github.com/devskill-org/sundowner/sun"
)

func main() {
	// Command line flags
	var (
		configFile = flag.String("config", "config.json", "Configuration file path")
		calc       = flag.Bool("calc", false, "Compute events once for -lat/-lon/-start/-end and exit")
		lat        = flag.Float64("lat", 51.5074, "Latitude for -calc mode")
		lon        = flag.Float64("lon", -0.1278, "Longitude for -calc mode")
		startDay   = flag.String("start", "", "Start date (YYYY-MM-DD) for -calc mode, default today UTC")
		endDay     = flag.String("end", "", "End date (YYYY-MM-DD) for -calc mode, default start")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if *calc {
		runCalc(*lat, *lon, *startDay, *endDay)
		return
	}

	config, err := server.LoadConfig(*configFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Println("Error loading configuration:", err)
			return
		}
		config = server.DefaultConfig()
	}

	fmt.Printf("Starting sundowner with the following configuration:\n")
	fmt.Printf("  Port: %d\n", config.Port)
	fmt.Printf("  Live Feed Location: %.4f, %.4f\n", config.Latitude, config.Longitude)
	fmt.Printf("  Max Range Days: %d\n", config.MaxRangeDays)
	fmt.Printf("  Broadcast Interval: %s\n", config.BroadcastInterval)
	if config.PostgresConnString != "" {
		fmt.Printf("  Query Metrics: enabled\n")
	}
	fmt.Println()

	// Create logger
	logger := log.New(os.Stdout, "[SUNDOWNER] ", log.LstdFlags)

	webServer := server.NewWebServer(config, logger)
	if err := webServer.Start(); err != nil {
		logger.Printf("Failed to start web server: %v", err)
		return
	}

	logger.Printf("Listening on :%d. Press Ctrl+C to stop...", config.Port)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	logger.Printf("Shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := webServer.Stop(ctx); err != nil {
		logger.Printf("Error during shutdown: %v", err)
	}

	logger.Printf("Server stopped successfully")
}

// runCalc computes events for the given location and range and prints a table.
func runCalc(lat, lon float64, startStr, endStr string) {
	obs, err := sun.NewObserver(lat, lon)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	start := sun.DayOf(time.Now())
	if startStr != "" {
		if start, err = server.ParseDay(startStr); err != nil {
			fmt.Println("Error:", err)
			return
		}
	}

	end := start
	if endStr != "" {
		if end, err = server.ParseDay(endStr); err != nil {
			fmt.Println("Error:", err)
			return
		}
	}

	results, err := sun.EvaluateRange(obs, start, end)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Solar events for %.4f, %.4f (all times UTC)\n\n", lat, lon)
	fmt.Printf("%-12s  %-10s  %-10s  %-10s  %-10s\n", "Date", "Civil dawn", "Sunrise", "Sunset", "Civil dusk")
	for _, day := range results {
		fmt.Printf("%-12s  %-10s  %-10s  %-10s  %-10s\n",
			day.Day,
			formatEvent(day.Events["civil_dawn"]),
			formatEvent(day.Events["sunrise"]),
			formatEvent(day.Events["sunset"]),
			formatEvent(day.Events["civil_dusk"]),
		)
	}
}

func formatEvent(res sun.EventResult) string {
	if !res.Occurs {
		return "--"
	}
	return res.Time.Format("15:04:05")
}

func showHelp() {
	fmt.Println("Sundowner - Sunrise, sunset, and civil twilight times as a webservice")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Computes the UTC instants of civil dawn, sunrise, sunset, and civil dusk")
	fmt.Println("  for any coordinate and date range, with explicit markers for polar day")
	fmt.Println("  and polar night. Serves a JSON API, a live WebSocket feed, and a static")
	fmt.Println("  dashboard. All times are UTC; converting to local time is up to clients.")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  sundowner [OPTIONS]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Run the webservice with default settings")
	fmt.Println("  sundowner")
	fmt.Println()
	fmt.Println("  # Custom configuration")
	fmt.Println("  sundowner --config=config.json")
	fmt.Println()
	fmt.Println("  # One-shot calculation for a location and date range")
	fmt.Println("  sundowner -calc -lat 69.65 -lon 18.96 -start 2024-12-20 -end 2024-12-22")
	fmt.Println()
	fmt.Println("  # Show this help")
	fmt.Println("  sundowner -help")
}
