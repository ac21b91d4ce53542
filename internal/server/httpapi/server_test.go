package httpapi

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/paintmap/internal/server/dispatch"
)

type fakeDispatcher struct {
	mu   sync.Mutex
	got  []dispatch.Args
	resp *dispatch.Response
}

func (f *fakeDispatcher) Dispatch(_ context.Context, args dispatch.Args) *dispatch.Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, args)
	if f.resp != nil {
		return f.resp
	}
	return &dispatch.Response{Succeed: false, Error: "undefined function"}
}

func (f *fakeDispatcher) last() dispatch.Args {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.got[len(f.got)-1]
}

func newTestServer(d Dispatcher, metrics prometheus.Gatherer) *Server {
	return NewServer(Settings{
		Address:         "127.0.0.1:0",
		AllowedOrigins:  []string{"*"},
		ShutdownTimeout: time.Second,
		Metrics:         metrics,
	}, d, nil)
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&m))
	return m
}

func TestDispatch_GetQuery(t *testing.T) {
	n := 3
	d := &fakeDispatcher{resp: &dispatch.Response{Succeed: true, Count: &n}}
	s := newTestServer(d, nil)

	for _, path := range []string{"/", "/api"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path+"?function=account_count", nil)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			assert.Equal(t, map[string]any{"succeed": true, "count": float64(3)}, decode(t, rec.Body))
			assert.Equal(t, "account_count", d.last().Get("function"))
		})
	}
}

func TestDispatch_FailureIsStill200(t *testing.T) {
	s := newTestServer(&fakeDispatcher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/?function=nope", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"succeed": false, "error": "undefined function"}, decode(t, rec.Body))
}

func TestDispatch_PostForm(t *testing.T) {
	d := &fakeDispatcher{resp: &dispatch.Response{Succeed: true}}
	s := newTestServer(d, nil)

	form := url.Values{}
	form.Set("function", "account_map_save")
	form.Set("map", `{"id":"1","title":"a&b"}`)

	req := httptest.NewRequest(http.MethodPost, "/?user_name=alice", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	args := d.last()
	assert.Equal(t, "account_map_save", args.Get("function"))
	assert.Equal(t, `{"id":"1","title":"a&b"}`, args.Get("map"))
	assert.Equal(t, "alice", args.Get("user_name"))
}

func TestDispatch_BadQuery(t *testing.T) {
	d := &fakeDispatcher{}
	s := newTestServer(d, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.RawQuery = "function=%zz"
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"succeed": false, "error": "parse error"}, decode(t, rec.Body))
	assert.Empty(t, d.got)
}

func TestCORS(t *testing.T) {
	s := newTestServer(&fakeDispatcher{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://paint.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&fakeDispatcher{}, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "paintmap_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	t.Run("enabled", func(t *testing.T) {
		s := newTestServer(&fakeDispatcher{}, reg)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "paintmap_test_total 1")
	})

	t.Run("disabled", func(t *testing.T) {
		s := newTestServer(&fakeDispatcher{}, nil)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	d := &fakeDispatcher{resp: &dispatch.Response{Succeed: true}}
	s := newTestServer(d, nil)

	listen, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx, listen) }()

	resp, err := http.Get("http://" + listen.Addr().String() + "/?function=account_count")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
