package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeSource struct {
	subCalls atomic.Int32
	nsCalls  atomic.Int32

	mu         sync.Mutex
	subs       []Link
	namespaces map[string][]Link
	err        error
	gate       chan struct{}
}

func (f *fakeSource) Subscriptions(ctx context.Context) ([]Link, error) {
	f.subCalls.Add(1)
	if f.gate != nil {
		<-f.gate
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.subs, nil
}

func (f *fakeSource) Namespaces(ctx context.Context, subscription string) ([]Link, error) {
	f.nsCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.namespaces[subscription], nil
}

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func newTestCache(t *testing.T, src Source) *Cache {
	t.Helper()
	c, err := NewCache(src, 4, nil)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	return c
}

func TestSubscriptionsCachedAfterFirstFetch(t *testing.T) {
	src := &fakeSource{subs: []Link{{Title: "dev"}, {Title: "prod"}}}
	c := newTestCache(t, src)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := c.Subscriptions(ctx)
		if err != nil {
			t.Fatalf("Subscriptions: %v", err)
		}
		if diff := cmp.Diff([]string{"dev", "prod"}, Titles(got)); diff != "" {
			t.Fatalf("titles mismatch (-want +got):\n%s", diff)
		}
	}
	if n := src.subCalls.Load(); n != 1 {
		t.Fatalf("source called %d times, want 1", n)
	}

	c.Refresh()
	if _, err := c.Subscriptions(ctx); err != nil {
		t.Fatalf("Subscriptions after refresh: %v", err)
	}
	if n := src.subCalls.Load(); n != 2 {
		t.Fatalf("source called %d times after refresh, want 2", n)
	}
}

func TestFailedFetchLeavesCacheUnchanged(t *testing.T) {
	src := &fakeSource{
		namespaces: map[string][]Link{"dev": {{Title: "team-a"}}},
		err:        errors.New("connection refused"),
	}
	c := newTestCache(t, src)
	ctx := context.Background()

	_, err := c.Namespaces(ctx, "dev")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}

	src.setErr(nil)
	got, err := c.Namespaces(ctx, "dev")
	if err != nil {
		t.Fatalf("Namespaces: %v", err)
	}
	if diff := cmp.Diff([]string{"team-a"}, Titles(got)); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
	if n := src.nsCalls.Load(); n != 2 {
		t.Fatalf("source called %d times, want 2", n)
	}
}

func TestNamespacesKeyedBySubscription(t *testing.T) {
	src := &fakeSource{namespaces: map[string][]Link{
		"dev":  {{Title: "team-a"}},
		"prod": {{Title: "live"}},
	}}
	c := newTestCache(t, src)
	ctx := context.Background()

	for _, sub := range []string{"dev", "prod", "dev", "prod"} {
		if _, err := c.Namespaces(ctx, sub); err != nil {
			t.Fatalf("Namespaces(%s): %v", sub, err)
		}
	}
	if n := src.nsCalls.Load(); n != 2 {
		t.Fatalf("source called %d times, want 2", n)
	}

	for _, sub := range []string{"", "  ", Loading} {
		got, err := c.Namespaces(ctx, sub)
		if err != nil || got != nil {
			t.Fatalf("Namespaces(%q) = %v, %v; want nil, nil", sub, got, err)
		}
	}
	if n := src.nsCalls.Load(); n != 2 {
		t.Fatalf("placeholder subscriptions must not fetch, got %d calls", n)
	}
}

func TestConcurrentFetchesShareOneRequest(t *testing.T) {
	src := &fakeSource{subs: []Link{{Title: "dev"}}, gate: make(chan struct{})}
	c := newTestCache(t, src)
	ctx := context.Background()

	results := make([]<-chan Result, 5)
	for i := range results {
		results[i] = c.FetchSubscriptions(ctx)
	}
	close(src.gate)

	for _, ch := range results {
		res := <-ch
		if res.Err != nil {
			t.Fatalf("fetch: %v", res.Err)
		}
		if len(res.Links) != 1 || res.Links[0].Title != "dev" {
			t.Fatalf("unexpected links %v", res.Links)
		}
	}
	if n := src.subCalls.Load(); n != 1 {
		t.Fatalf("source called %d times, want 1", n)
	}
}

func TestCancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	src := &fakeSource{subs: []Link{{Title: "dev"}}, gate: make(chan struct{})}
	c := newTestCache(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	first := c.FetchSubscriptions(ctx)
	second := c.FetchSubscriptions(context.Background())
	for src.subCalls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	cancel()
	if res := <-first; !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("cancelled caller: got %v, want context.Canceled", res.Err)
	}

	close(src.gate)
	res := <-second
	if res.Err != nil {
		t.Fatalf("waiting caller: %v", res.Err)
	}
	if diff := cmp.Diff([]Link{{Title: "dev"}}, res.Links); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
	if _, err := c.Subscriptions(context.Background()); err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if n := src.subCalls.Load(); n != 1 {
		t.Fatalf("source called %d times, want 1", n)
	}
}

func TestReturnedListsAreCopies(t *testing.T) {
	src := &fakeSource{subs: []Link{{Title: "dev"}}}
	c := newTestCache(t, src)

	first, _ := c.Subscriptions(context.Background())
	first[0].Title = "mutated"

	second, _ := c.Subscriptions(context.Background())
	if second[0].Title != "dev" {
		t.Fatalf("cache was mutated through a returned slice: %v", second)
	}
}

func TestSelectable(t *testing.T) {
	tests := map[string]bool{
		"":        false,
		" ":       false,
		Loading:   false,
		"dev":     true,
		"team-a ": true,
	}
	for value, want := range tests {
		if got := Selectable(value); got != want {
			t.Errorf("Selectable(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/subscriptions":
			_ = json.NewEncoder(w).Encode([]Link{{Title: "dev", Href: "/subscriptions/dev"}})
		case "/subscriptions/dev/namespaces":
			_ = json.NewEncoder(w).Encode([]Link{{Title: "team-a"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	src := NewHTTPSource(srv.URL+"/", "secret")

	subs, err := src.Subscriptions(ctx)
	if err != nil {
		t.Fatalf("Subscriptions: %v", err)
	}
	if diff := cmp.Diff([]Link{{Title: "dev", Href: "/subscriptions/dev"}}, subs); diff != "" {
		t.Fatalf("subscriptions mismatch (-want +got):\n%s", diff)
	}

	ns, err := src.Namespaces(ctx, "dev")
	if err != nil {
		t.Fatalf("Namespaces: %v", err)
	}
	if diff := cmp.Diff([]string{"team-a"}, Titles(ns)); diff != "" {
		t.Fatalf("namespaces mismatch (-want +got):\n%s", diff)
	}

	if _, err := src.Namespaces(ctx, "missing"); err == nil {
		t.Fatal("expected error for 404")
	}
	if _, err := NewHTTPSource(srv.URL, "").Subscriptions(ctx); err == nil {
		t.Fatal("expected error without token")
	}
}
