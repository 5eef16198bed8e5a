package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/devskill-org/sundowner/sun"
)

// WebServer provides the sun event HTTP API, health endpoints, a WebSocket
// live feed for the configured dashboard location, and static file serving
type WebServer struct {
	config    *Config
	logger    *log.Logger
	server    *http.Server
	mux       *http.ServeMux
	startTime time.Time
	metrics   *QueryMetrics

	upgrader  websocket.Upgrader
	clients   sync.Map
	broadcast chan []byte
	done      chan struct{}

	// today's events for the dashboard location, recomputed when the UTC
	// day rolls over
	cacheMu      sync.Mutex
	cachedDay    sun.CalendarDay
	cachedResult sun.DayResult
	cacheValid   bool
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string       `json:"status"`
	Timestamp string       `json:"timestamp"`
	Version   string       `json:"version,omitempty"`
	System    SystemHealth `json:"system"`
}

// SystemHealth represents system-level health information
type SystemHealth struct {
	Uptime     string `json:"uptime"`
	Goroutines int    `json:"goroutines,omitempty"`
}

// NewWebServer creates a new web server for the given configuration
func NewWebServer(config *Config, logger *log.Logger) *WebServer {
	mux := http.NewServeMux()
	ws := &WebServer{
		config:    config,
		logger:    logger,
		mux:       mux,
		startTime: time.Now(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in development
			},
		},
		broadcast: make(chan []byte, 256),
		done:      make(chan struct{}),
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	// Register API routes
	mux.HandleFunc("/api/sun", ws.sunHandler)
	mux.HandleFunc("/api/health", ws.healthHandler)
	mux.HandleFunc("/api/ready", ws.readinessHandler)
	mux.HandleFunc("/api/ws", ws.wsHandler)

	// Serve the static dashboard
	mux.Handle("/", http.FileServer(http.Dir(config.StaticDir)))

	return ws
}

// Handler returns the server's HTTP handler, mainly for tests.
func (ws *WebServer) Handler() http.Handler {
	return ws.mux
}

// Start starts the web server and its background feed
func (ws *WebServer) Start() error {
	metrics, err := OpenQueryMetrics(ws.config.PostgresConnString, ws.logger)
	if err != nil {
		return fmt.Errorf("failed to open query metrics: %w", err)
	}
	ws.metrics = metrics

	go ws.handleBroadcasts()
	go ws.broadcastLive()

	go func() {
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ws.logger.Printf("Web server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the web server
func (ws *WebServer) Stop(ctx context.Context) error {
	close(ws.done)

	// Close all WebSocket connections
	ws.clients.Range(func(key, value any) bool {
		if conn, ok := key.(*websocket.Conn); ok {
			conn.Close()
		}
		return true
	})

	if err := ws.metrics.Close(); err != nil {
		ws.logger.Printf("Failed to close query metrics: %v", err)
	}

	return ws.server.Shutdown(ctx)
}

// healthHandler handles the /api/health endpoint
func (ws *WebServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
		System: SystemHealth{
			Uptime:     formatUptime(time.Since(ws.startTime)),
			Goroutines: runtime.NumGoroutine(),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(health); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// readinessHandler handles the /api/ready endpoint
func (ws *WebServer) readinessHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ready := map[string]any{
		"ready":     true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ready); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// wsHandler handles WebSocket connections for the live feed
func (ws *WebServer) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		ws.logger.Printf("WebSocket upgrade error: %v", err)
		return
	}

	ws.clients.Store(conn, true)
	ws.logger.Printf("New WebSocket client connected. Total clients: %d", ws.clientCount())

	// Send the current frame immediately
	if err := conn.WriteJSON(ws.buildLiveFrame()); err != nil {
		ws.logger.Printf("Failed to send initial frame: %v", err)
	}

	defer func() {
		ws.clients.Delete(conn)
		conn.Close()
		ws.logger.Printf("WebSocket client disconnected. Total clients: %d", ws.clientCount())
	}()

	// Read messages from client (ping/pong, close)
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				ws.logger.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

func (ws *WebServer) clientCount() int {
	count := 0
	ws.clients.Range(func(key, value any) bool {
		count++
		return true
	})
	return count
}

// handleBroadcasts sends messages to all connected clients
func (ws *WebServer) handleBroadcasts() {
	for {
		select {
		case message := <-ws.broadcast:
			ws.clients.Range(func(key, value any) bool {
				conn, ok := key.(*websocket.Conn)
				if !ok {
					return true
				}

				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					ws.logger.Printf("WebSocket write error: %v", err)
					conn.Close()
					ws.clients.Delete(conn)
				}
				return true
			})
		case <-ws.done:
			return
		}
	}
}

// broadcastLive periodically pushes live solar frames to connected clients
func (ws *WebServer) broadcastLive() {
	ticker := time.NewTicker(ws.config.BroadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if ws.clientCount() == 0 {
				continue
			}

			message, err := json.Marshal(ws.buildLiveFrame())
			if err != nil {
				ws.logger.Printf("Failed to marshal live frame: %v", err)
				continue
			}
			ws.broadcast <- message
		case <-ws.done:
			return
		}
	}
}

// buildLiveFrame assembles the live feed payload for the configured
// dashboard location: the Sun's current altitude plus today's events.
func (ws *WebServer) buildLiveFrame() map[string]any {
	// The config location was validated at load time, so this cannot fail.
	obs, _ := sun.NewObserver(ws.config.Latitude, ws.config.Longitude)

	now := time.Now().UTC()
	result := ws.todayEvents(obs, sun.DayOf(now))

	events := make(map[string]any, len(result.Events))
	for name, res := range result.Events {
		if res.Occurs {
			events[name] = res.Time.UTC().Format(time.RFC3339)
		} else {
			events[name] = nil
		}
	}

	return map[string]any{
		"type":      "sun_update",
		"timestamp": now.Format(time.RFC3339),
		"latlon": map[string]float64{
			"lat": ws.config.Latitude,
			"lon": ws.config.Longitude,
		},
		"altitude": obs.Altitude(now),
		"date":     result.Day.String(),
		"events":   events,
	}
}

// todayEvents returns today's DayResult for the dashboard location, cached
// until the UTC day changes.
func (ws *WebServer) todayEvents(obs sun.Observer, day sun.CalendarDay) sun.DayResult {
	ws.cacheMu.Lock()
	defer ws.cacheMu.Unlock()

	if ws.cacheValid && ws.cachedDay == day {
		return ws.cachedResult
	}

	ws.cachedDay = day
	ws.cachedResult = sun.ComputeDay(obs, day)
	ws.cacheValid = true

	return ws.cachedResult
}

// formatUptime formats a duration as a string with seconds rounded to integer
func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
