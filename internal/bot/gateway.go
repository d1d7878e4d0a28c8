package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// maxBodySize caps request bodies read by the Gateway.
const maxBodySize = 1 << 20

// Router is the routing surface of a Dispatcher used by the Gateway.
type Router interface {
	Handle(ctx context.Context, body []byte, header http.Header) Result
}

// Gateway adapts a Router to HTTP. It accepts POST requests on a single path.
type Gateway struct {
	path   string
	router Router
}

// NewGateway creates a Gateway serving router on path.
func NewGateway(path string, router Router) *Gateway {
	if path == "" {
		path = "/"
	}
	return &Gateway{path: path, router: router}
}

// ServeHTTP implements http.Handler.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != g.path {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		slog.Warn("failed to read request body", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	result := g.router.Handle(r.Context(), body, r.Header)
	logResult(result)

	if result.Body != nil {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(result.Status)
	if result.Body != nil {
		if _, err := w.Write(result.Body); err != nil {
			slog.Warn("failed to write response", "error", err)
		}
	}
}

func logResult(result Result) {
	switch {
	case result.Err == nil:
	case errors.Is(result.Err, ErrUnauthorized):
		slog.Warn("rejected request", "status", result.Status, "error", result.Err)
	case errors.Is(result.Err, ErrNoHandler):
		// Already logged when routing.
	default:
		slog.Warn("failed to route request", "status", result.Status, "error", result.Err)
	}
}
