package server

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/devskill-org/sundowner/sun"
)

// QueryMetrics persists one row per answered /api/sun query into a
// sun_queries table, for dashboards to read. A nil *QueryMetrics is a valid
// no-op, used when no connection string is configured.
type QueryMetrics struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenQueryMetrics opens the metrics database. An empty connection string
// returns nil: metrics disabled.
func OpenQueryMetrics(connString string, logger *log.Logger) (*QueryMetrics, error) {
	if connString == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open metrics database: %w", err)
	}

	return &QueryMetrics{db: db, logger: logger}, nil
}

// Record inserts one query row. Failures are logged, never fatal: metrics
// must not take the API down.
func (m *QueryMetrics) Record(lat, lon float64, start, end sun.CalendarDay, days int, duration time.Duration) {
	if m == nil {
		return
	}

	_, err := m.db.Exec(
		`INSERT INTO sun_queries (ts, latitude, longitude, start_day, end_day, days, duration_ms) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		time.Now().UTC(), lat, lon, start.String(), end.String(), days, duration.Milliseconds(),
	)
	if err != nil {
		m.logger.Printf("Query metrics: failed to insert row: %v", err)
	}
}

// Close closes the metrics database
func (m *QueryMetrics) Close() error {
	if m == nil {
		return nil
	}
	return m.db.Close()
}
