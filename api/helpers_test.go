package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/colorix/api/colors"
	"github.com/colorix/api/datastore"
	"github.com/colorix/api/models"
	"github.com/colorix/api/resolver"
)

// gate holds a lookup until release is closed.
type gate struct {
	started chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{started: make(chan struct{}), release: make(chan struct{})}
}

// fakeNames answers from a fixed table keyed by bare hex. Unknown colors,
// and every color while down is set, are unavailable.
type fakeNames struct {
	mu    sync.Mutex
	names map[string]string
	down  bool
	gates map[string]*gate
}

func newFakeNames(names map[string]string) *fakeNames {
	return &fakeNames{names: names, gates: make(map[string]*gate)}
}

func (f *fakeNames) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *fakeNames) hold(hex string) *gate {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := newGate()
	f.gates[hex] = g
	return g
}

func (f *fakeNames) ResolveByHex(ctx context.Context, hex string) (models.NamedColor, error) {
	c, err := colors.ParseHex(hex)
	if err != nil {
		return models.NamedColor{}, err
	}

	f.mu.Lock()
	g := f.gates[c.Bare()]
	delete(f.gates, c.Bare())
	name, ok := f.names[c.Bare()]
	down := f.down
	f.mu.Unlock()

	if g != nil {
		close(g.started)
		<-g.release
	}

	if down || !ok {
		return models.NamedColor{}, fmt.Errorf("%w: no name for %s", resolver.ErrUnavailable, c.Hex())
	}
	return models.Named(c, name), nil
}

func (f *fakeNames) ResolveByName(ctx context.Context, name string) (models.NamedColor, error) {
	c, ok := colors.CSSNames.Lookup(name)
	if !ok {
		return models.NamedColor{}, resolver.ErrUnavailable
	}
	return f.ResolveByHex(ctx, c.Bare())
}

var testNames = map[string]string{
	"87CEEB": "Sky Blue",
	"FF0000": "Red",
	"0000FF": "Blue",
	"FFFFFF": "White",
	"00FF00": "Green",
}

func newTestApp(t *testing.T, res resolver.Resolver) (*Application, http.Handler) {
	t.Helper()

	config := Config{
		SessionSecret:  "test-secret",
		SessionMaxAge:  time.Hour,
		AllowedOrigins: []string{"https://colorix.example"},
		DevMode:        true,
	}

	app, err := NewApplication(config, datastore.NewSessionMemory(), res, nil)
	if err != nil {
		t.Fatalf("NewApplication error: %v", err)
	}
	return app, app.BuildRoutes(http.NewServeMux())
}

// testClient keeps the session cookie between requests, like a browser.
type testClient struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func (c *testClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == models.JWT.SESSION_COOKIE_NAME {
			c.cookie = cookie
		}
	}
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}
