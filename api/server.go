// Package api provides the HTTP REST API server for Econ-Mood.
//
// It exposes endpoints for per-region sentiment aggregates, trends,
// keywords, insight cards, collection refresh, and WebSocket streaming.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/seenimoa/econmood/internal/config"
	"github.com/seenimoa/econmood/internal/monitor"
	"github.com/seenimoa/econmood/pkg/models"
)

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	monitor *monitor.Monitor
	wsHub   *WSHub
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, mon *monitor.Monitor) *Server {
	srv := &Server{
		cfg:     cfg,
		monitor: mon,
		wsHub:   NewWSHub(),
	}

	// Push every fresh aggregate to websocket subscribers.
	mon.OnUpdate(func(agg *models.RegionAggregate) {
		srv.wsHub.Broadcast(WSMessage{
			Type: "sentiment_update",
			Data: agg,
		})
	})

	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start WebSocket hub
	go s.wsHub.Run()

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check and service metadata
	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleRoot)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health (also available at /health)
		r.Get("/health", s.handleHealth)

		// Regions
		r.Get("/regions", s.handleAllRegions)
		r.Route("/regions/{region}", func(r chi.Router) {
			r.Get("/", s.handleRegion)
			r.Get("/trend", s.handleTrend)
			r.Get("/keywords", s.handleKeywords)
			r.Get("/insights", s.handleInsights)
		})

		// Collection
		r.Post("/collect", s.handleCollect)
		r.Post("/refresh/{region}", s.handleRefresh)

		// WebSocket
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegionEntry describes one tracked region for the metadata endpoint.
type RegionEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CollectResponse summarizes a bulk collection run.
type CollectResponse struct {
	Collected []models.RegionAggregate `json:"collected"`
	Failed    int                      `json:"failed"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": "dev",
			"time":    time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	regions := make([]RegionEntry, 0, len(models.Regions()))
	for _, region := range models.Regions() {
		regions = append(regions, RegionEntry{ID: string(region), Name: region.Name()})
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"service": "econmood",
			"regions": regions,
		},
	})
}

func (s *Server) handleAllRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.monitor.AllRegions(),
	})
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")

	agg, err := s.monitor.RegionAggregate(region)
	if err != nil {
		writeMonitorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    agg,
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")

	hours := 24
	if raw := r.URL.Query().Get("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "hours must be an integer")
			return
		}
		hours = parsed
	}

	trend, err := s.monitor.Trend(region, hours)
	if err != nil {
		writeMonitorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    trend,
	})
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")

	keywords, err := s.monitor.Keywords(region)
	if err != nil {
		writeMonitorError(w, err)
		return
	}
	if keywords == nil {
		keywords = []models.KeywordStat{}
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    keywords,
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")

	cards, err := s.monitor.Insights(region)
	if err != nil {
		writeMonitorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    cards,
	})
}

func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	collected, failed := s.monitor.RefreshAll(ctx)
	if collected == nil {
		collected = []models.RegionAggregate{}
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    CollectResponse{Collected: collected, Failed: failed},
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	agg, err := s.monitor.Refresh(ctx, region)
	if err != nil {
		writeMonitorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    agg,
	})
}

// ============================================================
// Helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}

// writeMonitorError maps service errors onto HTTP status codes. Unknown
// regions are a client error; everything else is internal.
func writeMonitorError(w http.ResponseWriter, err error) {
	if errors.Is(err, monitor.ErrInvalidRegion) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// ============================================================
// WebSocket Hub
// ============================================================

// WSMessage is a message sent over WebSocket connections.
type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// WSHub manages WebSocket connections and message broadcasting.
type WSHub struct {
	mu         sync.RWMutex
	clients    map[*WSClient]bool
	broadcast  chan WSMessage
	register   chan *WSClient
	unregister chan *WSClient
}

// WSClient represents a single WebSocket connection.
type WSClient struct {
	hub  *WSHub
	send chan WSMessage
}

// NewWSHub creates a new WebSocket hub.
func NewWSHub() *WSHub {
	return &WSHub{
		clients:    make(map[*WSClient]bool),
		broadcast:  make(chan WSMessage, 256),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
	}
}

// Run starts the hub event loop.
func (h *WSHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Slow client; disconnect
					h.mu.RUnlock()
					h.mu.Lock()
					delete(h.clients, client)
					close(client.send)
					h.mu.Unlock()
					h.mu.RLock()
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast sends a message to all connected WebSocket clients.
func (h *WSHub) Broadcast(msg WSMessage) {
	select {
	case h.broadcast <- msg:
	default:
		// Drop message if broadcast channel is full
	}
}

// ClientCount returns the number of connected WebSocket clients.
func (h *WSHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Register adds a client to the hub.
func (h *WSHub) Register(client *WSClient) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *WSHub) Unregister(client *WSClient) {
	h.unregister <- client
}
