package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestProxyURL(t *testing.T) {
	cases := []struct {
		base   string
		target string
		want   string
	}{
		{"https://r.jina.ai", "https://acme.org/jobs", "https://r.jina.ai/https://acme.org/jobs"},
		{"https://r.jina.ai/", "https://acme.org", "https://r.jina.ai/https://acme.org"},
		{"", "https://acme.org", "https://acme.org"},
	}
	for _, tc := range cases {
		if got := ProxyURL(tc.base, tc.target); got != tc.want {
			t.Fatalf("ProxyURL(%q, %q) = %q, want %q", tc.base, tc.target, got, tc.want)
		}
	}
}

func TestRotatorRoundRobinAndBench(t *testing.T) {
	rotator, err := NewRotator([]string{"10.0.0.1:8080", " ", "http://10.0.0.2:8080"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rotator.now = func() time.Time { return now }

	if rotator.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", rotator.Len())
	}
	first, _ := rotator.Next()
	second, _ := rotator.Next()
	if first.String() != "http://10.0.0.1:8080" || second.String() != "http://10.0.0.2:8080" {
		t.Fatalf("Next() = %s, %s", first, second)
	}

	rotator.Report(first, 429)
	rotator.Report(second, 200)
	for i := 0; i < 3; i++ {
		got, err := rotator.Next()
		if err != nil || got.String() != second.String() {
			t.Fatalf("Next() = %v, %v; want only the unbenched proxy", got, err)
		}
	}

	rotator.Report(second, 403)
	if _, err := rotator.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("Next() error = %v, want ErrNoProxies", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := rotator.Next(); err != nil {
		t.Fatalf("Next() after bench expired error = %v", err)
	}
}

func TestRotatorEmpty(t *testing.T) {
	rotator, err := NewRotator(nil, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}
	if _, err := rotator.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("Next() error = %v, want ErrNoProxies", err)
	}
}

func TestRotatorRejectsHostlessEntry(t *testing.T) {
	if _, err := NewRotator([]string{"http://"}, time.Minute); err == nil {
		t.Fatalf("NewRotator() accepted an entry without host")
	}
}

func TestFetchHTMLThroughReadProxy(t *testing.T) {
	var gotPath, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		if r.URL.Path == "/https://fail.example.com" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("<title>ok</title>"))
	}))
	defer server.Close()

	client, err := NewClient(Options{ProxyBase: server.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	body, err := client.FetchHTML(context.Background(), "https://acme.org/jobs")
	if err != nil {
		t.Fatalf("FetchHTML() error = %v", err)
	}
	if body != "<title>ok</title>" {
		t.Fatalf("FetchHTML() = %q", body)
	}
	if gotPath != "/https://acme.org/jobs" || gotAccept != "text/html" {
		t.Fatalf("proxy saw path %q accept %q", gotPath, gotAccept)
	}

	_, err = client.FetchHTML(context.Background(), "https://fail.example.com")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("FetchHTML() error = %v, want StatusError 500", err)
	}
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("StatusError should wrap ErrRequestFailed")
	}
}
