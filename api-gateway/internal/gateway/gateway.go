package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"jollof-hub/logger"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	StorefrontSvcURL string
	DashboardSvcURL  string
	// StaticDir holds the built frontend. Empty disables static serving.
	StaticDir string
}

type Gateway struct {
	config Config
	client HTTPClient
	log    *logger.Logger
}

// storefrontPrefixes are the first path segments after /api served by the
// storefront.
var storefrontPrefixes = map[string]bool{
	"orders":          true,
	"reservations":    true,
	"my-orders":       true,
	"my-reservations": true,
	"menu":            true,
	"users":           true,
	"stats":           true,
	"charts":          true,
	"contact":         true,
}

var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

func NewGateway(config Config, client HTTPClient, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Discard()
	}
	return &Gateway{
		config: config,
		client: client,
		log:    log,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := strings.TrimRight(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	g.log.Debug(r.Context(), "proxy", r.Method+" "+r.URL.Path, slog.String("target", url))

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.log.Error(r.Context(), "proxy", "failed to create request", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create upstream request")
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}
	for _, h := range hopHeaders {
		req.Header.Del(h)
	}
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		if prior := r.Header.Get("X-Forwarded-For"); prior != "" {
			ip = prior + ", " + ip
		}
		req.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error(r.Context(), "proxy", "upstream unavailable", err, slog.String("target", targetURL))
		writeMessage(w, http.StatusBadGateway, "Upstream service unavailable")
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	for _, h := range hopHeaders {
		w.Header().Del(h)
	}
	w.WriteHeader(resp.StatusCode)

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		g.stream(w, r, resp.Body)
		return
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		g.log.Error(r.Context(), "proxy", "failed to copy response", err)
	}
}

// stream flushes every chunk so events reach the browser as they arrive.
func (g *Gateway) stream(w http.ResponseWriter, r *http.Request, body io.Reader) {
	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}
	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			if err != io.EOF && r.Context().Err() == nil {
				g.log.Warn(r.Context(), "proxy", "event stream ended", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path

	if !strings.HasPrefix(p, "/api/") {
		g.ServeFrontend(w, r)
		return
	}

	segment := strings.SplitN(strings.TrimPrefix(p, "/api/"), "/", 2)[0]
	switch {
	case segment == "events":
		g.ProxyRequest(w, r, g.config.DashboardSvcURL)
	case storefrontPrefixes[segment]:
		g.ProxyRequest(w, r, g.config.StorefrontSvcURL)
	default:
		g.log.Warn(r.Context(), "route", "unmatched API route", slog.String("path", p))
		writeMessage(w, http.StatusNotFound, "API route not found")
	}
}

// ServeFrontend serves files from StaticDir. Unknown paths fall back to
// index.html so client-side routes like /order-success resolve.
func (g *Gateway) ServeFrontend(w http.ResponseWriter, r *http.Request) {
	if g.config.StaticDir == "" || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}

	name := filepath.Join(g.config.StaticDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		http.ServeFile(w, r, name)
		return
	}
	http.ServeFile(w, r, filepath.Join(g.config.StaticDir, "index.html"))
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
