package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"jollof-hub/dashboard-svc/internal/service"
	"jollof-hub/logger"

	"github.com/gorilla/mux"
)

const defaultHeartbeat = 25 * time.Second

type Handler struct {
	Hub       *service.Hub
	Store     service.StoreInterface
	Log       *logger.Logger
	Heartbeat time.Duration
	Now       func() time.Time
}

func NewHandler(hub *service.Hub, store service.StoreInterface, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		Hub:       hub,
		Store:     store,
		Log:       log,
		Heartbeat: defaultHeartbeat,
		Now:       time.Now,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/events/orders", h.streamOrders).Methods("GET")
	r.HandleFunc("/api/events/summary", h.getSummary).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"service":     "dashboard-svc",
		"subscribers": h.Hub.Subscribers(),
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

// streamOrders keeps the connection open and writes every new_order event as
// a server-sent event. Comment lines keep idle proxies from closing it.
func (h *Handler) streamOrders(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Streaming unsupported"})
		return
	}

	frames, cancel := h.Hub.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	h.Log.Info(r.Context(), "sse_subscribe", "dashboard connected", slog.Int("subscribers", h.Hub.Subscribers()))
	defer h.Log.Info(r.Context(), "sse_unsubscribe", "dashboard disconnected")

	ticker := time.NewTicker(h.Heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case frame, open := <-frames:
			if !open {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", frame.Event, frame.Data); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Store.Summary(r.Context(), h.Now())
	if err != nil {
		h.Log.Error(r.Context(), "summary", "failed to load summary", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch summary"})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
