package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/bookswap-agent/internal/bookstore"
	"github.com/dtroode/bookswap-agent/internal/credential/memory"
	"github.com/dtroode/bookswap-agent/internal/session"
	"github.com/dtroode/bookswap-agent/internal/testutil"
	"github.com/dtroode/bookswap-agent/internal/token"
)

// fakeBookstore serves the bookstore API from per-path handlers and counts calls.
type fakeBookstore struct {
	t        *testing.T
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    map[string]int
	client   *bookstore.Client
}

func newFakeBookstore(t *testing.T) *fakeBookstore {
	t.Helper()
	f := &fakeBookstore{
		t:        t,
		handlers: map[string]http.HandlerFunc{},
		calls:    map[string]int{},
	}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	f.client = bookstore.NewClient(srv.URL+"/api", testutil.MakeNoopLogger())
	return f
}

func (f *fakeBookstore) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/")

	f.mu.Lock()
	f.calls[path]++
	h, ok := f.handlers[path]
	f.mu.Unlock()

	if !ok {
		f.t.Errorf("unexpected bookstore call %s %s", r.Method, path)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h(w, r)
}

func (f *fakeBookstore) handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[path] = h
}

// reply registers a handler answering with status and body.
func (f *fakeBookstore) reply(path string, status int, body string) {
	f.handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func (f *fakeBookstore) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func readJSON(r *http.Request) map[string]any {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	return body
}

// loggedIn returns a resolver whose store already holds a credential with claims.
func loggedIn(t *testing.T, claims map[string]any) *session.Resolver {
	t.Helper()
	store := memory.NewStore()
	if claims != nil {
		require.NoError(t, store.Save(context.Background(), testutil.MakeCredential(t, claims)))
	}
	return session.NewResolver(store, token.NewJWT(), testutil.MakeNoopLogger())
}

var (
	cartClaims = map[string]any{"userId": "u1", "cartId": "c1"}
	userClaims = map[string]any{"sub": "u1"}
)
