package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/community-service/internal/http"
	"github.com/tazhibayda/community-service/internal/queue"
	"github.com/tazhibayda/community-service/internal/service"
	"github.com/tazhibayda/community-service/internal/testutil"
	"go.uber.org/zap/zaptest"
)

type published struct {
	Key   string
	Event queue.Event
	ReqID string
}

type recordingPub struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPub) Publish(_ context.Context, ev queue.Event, reqID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{Key: ev.RoutingKey(), Event: ev, ReqID: reqID})
	return nil
}

func (p *recordingPub) Close() error { return nil }

func (p *recordingPub) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Key)
	}
	return out
}

func (p *recordingPub) find(key string) (published, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events {
		if e.Key == key {
			return e, true
		}
	}
	return published{}, false
}

type testEnv struct {
	T      *testing.T
	Store  *testutil.MemStore
	Pub    *recordingPub
	Router *gin.Engine
}

func newTestEnv(t *testing.T, opt http.RouterOptions) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutil.NewMemStore()
	pub := &recordingPub{}
	log := zaptest.NewLogger(t)
	h := http.NewHandler(service.New(store, log), store, pub, log)
	return &testEnv{T: t, Store: store, Pub: pub, Router: http.NewRouter(h, opt)}
}

func (e *testEnv) do(method, path, body string, hdr ...string) *httptest.ResponseRecorder {
	e.T.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	e.Router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func httptestRequest(e *testEnv, method, path, origin string, hdr ...string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	e.Router.ServeHTTP(w, req)
	return w
}
