package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"smart_scout/internal/fetch"
)

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	client := fetch.NewClient(fetch.Options{})
	out := client.Get(context.Background(), srv.URL)
	if !out.Success() {
		t.Fatalf("expected success, got status=%d err=%v", out.Status, out.Err)
	}
	if string(out.Body) != "hello" {
		t.Fatalf("body = %q", out.Body)
	}
}

func TestGet_NonOKNotSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := fetch.NewClient(fetch.Options{})
	out := client.Get(context.Background(), srv.URL)
	if out.Err != nil {
		t.Fatalf("404 should not be a transport error: %v", out.Err)
	}
	if out.Success() {
		t.Fatal("404 must not classify as success")
	}
	if out.Status != http.StatusNotFound {
		t.Fatalf("status = %d", out.Status)
	}
}

func TestGet_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer srv.Close()

	client := fetch.NewClient(fetch.Options{GetTimeout: 10 * time.Millisecond})
	out := client.Get(context.Background(), srv.URL)
	if out.Err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestGet_SendsUserAgent(t *testing.T) {
	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
	}))
	defer srv.Close()

	client := fetch.NewClient(fetch.Options{UserAgent: "test-agent/9"})
	client.Get(context.Background(), srv.URL)
	if ua, _ := gotUA.Load().(string); ua != "test-agent/9" {
		t.Fatalf("user agent = %q", ua)
	}
}

func TestHead_DoesNotReadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s", r.Method)
		}
	}))
	defer srv.Close()

	client := fetch.NewClient(fetch.Options{})
	out := client.Head(context.Background(), srv.URL)
	if !out.Success() {
		t.Fatalf("expected success, got status=%d err=%v", out.Status, out.Err)
	}
	if out.Body != nil {
		t.Fatal("HEAD outcome must not carry a body")
	}
}

func TestFirstSuccess_StopsAtFirstHit(t *testing.T) {
	var hits int32
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("content"))
	}))
	defer ok.Close()
	never := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("later candidate must not be tried")
	}))
	defer never.Close()

	client := fetch.NewClient(fetch.Options{})
	res, found := client.FirstSuccess(context.Background(), []string{ok.URL, never.URL})
	if !found {
		t.Fatal("expected a result")
	}
	if res.URL != ok.URL {
		t.Fatalf("result URL = %q, want %q", res.URL, ok.URL)
	}
	if string(res.Body) != "content" {
		t.Fatalf("body = %q", res.Body)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("first server hit %d times, want 1", hits)
	}
}

func TestFirstSuccess_SkipsFailures(t *testing.T) {
	missing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer missing.Close()
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("found"))
	}))
	defer ok.Close()

	// First candidate 404s, second refuses connections, third answers.
	refused := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	refusedURL := refused.URL
	refused.Close()

	client := fetch.NewClient(fetch.Options{})
	res, found := client.FirstSuccess(context.Background(), []string{missing.URL, refusedURL, ok.URL})
	if !found {
		t.Fatal("expected the third candidate to answer")
	}
	if res.URL != ok.URL {
		t.Fatalf("result URL = %q", res.URL)
	}
}

func TestFirstSuccess_ExhaustionIsNotError(t *testing.T) {
	missing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer missing.Close()

	client := fetch.NewClient(fetch.Options{})
	_, found := client.FirstSuccess(context.Background(), []string{missing.URL, missing.URL})
	if found {
		t.Fatal("exhausted list must report not found")
	}
}

func TestFirstSuccess_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("cancelled context must not issue requests")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := fetch.NewClient(fetch.Options{})
	if _, found := client.FirstSuccess(ctx, []string{srv.URL}); found {
		t.Fatal("expected no result after cancellation")
	}
}
