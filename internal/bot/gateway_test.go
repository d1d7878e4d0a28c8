package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// stubRouter is a test double for Router
type stubRouter struct {
	result Result
	body   []byte
	called bool
}

func (r *stubRouter) Handle(_ context.Context, body []byte, _ http.Header) Result {
	r.called = true
	r.body = body
	return r.result
}

func TestGateway_RejectsOtherPaths(t *testing.T) {
	router := &stubRouter{}
	g := NewGateway("/interactions", router)

	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/other", strings.NewReader("{}")))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	if router.called {
		t.Error("expected router not to be called")
	}
}

func TestGateway_RejectsOtherMethods(t *testing.T) {
	router := &stubRouter{}
	g := NewGateway("/", router)

	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
	if router.called {
		t.Error("expected router not to be called")
	}
}

func TestGateway_WritesPong(t *testing.T) {
	router := &stubRouter{result: pong()}
	g := NewGateway("", router)

	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"type":1}`)))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Body.String() != `{"type":1}` {
		t.Errorf("expected body %q, got %q", `{"type":1}`, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	if string(router.body) != `{"type":1}` {
		t.Errorf("expected router to receive request body, got %q", router.body)
	}
}

func TestGateway_WritesStatusWithoutBody(t *testing.T) {
	for _, status := range []int{
		http.StatusAccepted,
		http.StatusUnauthorized,
		http.StatusNotFound,
		http.StatusInternalServerError,
	} {
		router := &stubRouter{result: Result{Status: status, Err: ErrUnknownType}}
		g := NewGateway("/", router)

		rec := httptest.NewRecorder()
		g.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}")))

		if rec.Code != status {
			t.Errorf("expected status %d, got %d", status, rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("status %d: expected empty body, got %q", status, rec.Body.String())
		}
	}
}

func TestGateway_WithDispatcher(t *testing.T) {
	d, s, _ := newTestDispatcher(t, Handlers{})
	g := NewGateway("/", d)

	body := pingInteraction
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	for k, v := range s.header([]byte(body)) {
		req.Header[k] = v
	}

	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Body.String() != `{"type":1}` {
		t.Errorf("expected body %q, got %q", `{"type":1}`, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d for unsigned request, got %d", http.StatusUnauthorized, rec.Code)
	}
}
