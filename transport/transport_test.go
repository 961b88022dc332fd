package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/richardfuca/fetchcache"
)

func TestDoForwardsIdentityAndReadsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("X-Token"); got != "secret" {
			t.Errorf("X-Token = %q", got)
		}
		b, _ := io.ReadAll(r.Body)
		if string(b) != `{"q":1}` {
			t.Errorf("body = %q", b)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(Options{})
	resp, err := c.Do(context.Background(), fetchcache.Request{
		Method: "POST",
		URL:    srv.URL,
		Header: map[string][]string{"X-Token": {"secret"}},
		Body:   []byte(`{"q":1}`),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.ContentType != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", resp.ContentType)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Fatalf("body = %q", resp.Body)
	}
}

func TestDoDefaultsToGET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	if _, err := NewClient(Options{}).Do(context.Background(), fetchcache.NewRequest(srv.URL)); err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestDoTreatsNonSuccessAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(Options{}).Do(context.Background(), fetchcache.NewRequest(srv.URL))
	var serr *StatusError
	if !errors.As(err, &serr) || serr.StatusCode != http.StatusNotFound {
		t.Fatalf("want StatusError 404, got %v", err)
	}
}

func TestDoCapsBodySize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 1024))
	}))
	defer srv.Close()

	resp, err := NewClient(Options{MaxBodyBytes: 16}).Do(context.Background(), fetchcache.NewRequest(srv.URL))
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(resp.Body) != 16 {
		t.Fatalf("body length = %d, want 16", len(resp.Body))
	}
}

func TestDoJarCarriesCookiesAcrossFetches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err != nil {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1"})
			w.Write([]byte("anonymous"))
			return
		}
		w.Write([]byte("credentialed"))
	}))
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	c := NewClient(Options{Jar: jar})

	resp, err := c.Do(context.Background(), fetchcache.NewRequest(srv.URL))
	if err != nil {
		t.Fatalf("first Do: %v", err)
	}
	if string(resp.Body) != "anonymous" {
		t.Fatalf("first fetch body = %q", resp.Body)
	}

	resp, err = c.Do(context.Background(), fetchcache.NewRequest(srv.URL))
	if err != nil {
		t.Fatalf("second Do: %v", err)
	}
	if string(resp.Body) != "credentialed" {
		t.Fatalf("cookie was not carried, body = %q", resp.Body)
	}
}

func TestDoSurfacesNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listening anymore

	if _, err := NewClient(Options{}).Do(context.Background(), fetchcache.NewRequest(url)); err == nil {
		t.Fatal("want network error")
	}
}
