// Copyright 2025 Jacob Repp <jacobrepp@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httpcache

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func newTestCache(t *testing.T, handler http.HandlerFunc) (*Cache, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(t.TempDir(), "sekrit-token-value", 500, 1000)
	return c, srv
}

func TestGet_CachesFreshEntry(t *testing.T) {
	var hits int32
	c, srv := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if got, want := r.Header.Get("Authorization"), "token sekrit-token-value"; got != want {
			t.Errorf("Authorization = %q, want %q", got, want)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	})

	body1, status1, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if status1 != http.StatusOK {
		t.Fatalf("status = %d, want 200", status1)
	}

	body2, status2, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get (cached): %v", err)
	}
	if string(body1) != string(body2) || status2 != http.StatusOK {
		t.Fatalf("cached response mismatch: %q vs %q", body1, body2)
	}
	if hits != 1 {
		t.Errorf("upstream hits = %d, want 1 (second Get should be served from cache)", hits)
	}
}

func TestGet_TTLZeroBypassesCache(t *testing.T) {
	var hits int32
	c, srv := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("body"))
	})
	c.TTL = 0

	if _, _, err := c.Get(srv.URL); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, _, err := c.Get(srv.URL); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hits != 2 {
		t.Errorf("upstream hits = %d, want 2 (TTL=0 must bypass cache)", hits)
	}
}

func TestGet_StaleEntryReplacedOnFreshOK(t *testing.T) {
	var response atomic.Value
	response.Store("first")
	c, srv := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(response.Load().(string)))
	})

	fakeNow := time.Now()
	c.Now = func() time.Time { return fakeNow }

	body, _, err := c.Get(srv.URL)
	if err != nil || string(body) != "first" {
		t.Fatalf("Get = %q, %v, want \"first\"", body, err)
	}

	// Advance time past the TTL and change the upstream body.
	fakeNow = fakeNow.Add(501 * time.Second)
	response.Store("second")

	body, _, err = c.Get(srv.URL)
	if err != nil || string(body) != "second" {
		t.Fatalf("Get after TTL = %q, %v, want \"second\"", body, err)
	}
}

func TestGet_FailedRefetchLeavesStaleEntryIntactAndPropagatesFailure(t *testing.T) {
	c, srv := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("cached-body"))
	})

	fakeNow := time.Now()
	c.Now = func() time.Time { return fakeNow }

	if _, status, err := c.Get(srv.URL); err != nil || status != http.StatusOK {
		t.Fatalf("initial Get: status=%d err=%v", status, err)
	}
	path := c.cachePath(srv.URL)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	// Take the server down entirely so the refetch is a transport
	// failure, and advance past the TTL so a refetch is attempted.
	srv.Close()
	fakeNow = fakeNow.Add(501 * time.Second)

	if _, _, err := c.Get(srv.URL); err == nil {
		t.Fatalf("Get: want propagated transport error, got nil")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile after failed refetch: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("stale cache entry was modified: %q -> %q", before, after)
	}
}

func TestGet_NonOKNotCached(t *testing.T) {
	c, srv := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("nope"))
	})

	_, status, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}

	path := c.cachePath(srv.URL)
	if _, statErr := os.Stat(path); statErr == nil {
		t.Fatalf("non-200 response must not be cached, but %s exists", path)
	}
}

func TestGetUncached_BypassesCacheAndUsesOverrideToken(t *testing.T) {
	var gotAuth string
	c, srv := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("x"))
	})

	if _, _, err := c.GetUncached(srv.URL, "override-token"); err != nil {
		t.Fatalf("GetUncached: %v", err)
	}
	if gotAuth != "token override-token" {
		t.Errorf("Authorization = %q, want \"token override-token\"", gotAuth)
	}

	path := c.cachePath(srv.URL)
	if _, statErr := os.Stat(path); statErr == nil {
		t.Fatalf("GetUncached must not write a cache entry, but %s exists", path)
	}
}

func TestCachePath_ScopedByUIDAndTokenPrefix(t *testing.T) {
	c := New(t.TempDir(), "sekrit-token-value", 500, 1000)
	path := c.cachePath("https://api.github.com/orgs/acme/teams?per_page=100")

	if got, want := filepath.Base(filepath.Dir(path)), "1000"; got != want {
		t.Errorf("per-uid dir = %q, want %q", got, want)
	}
	if got := filepath.Base(path); len(got) == 0 {
		t.Errorf("cache file name is empty")
	}
	wantSuffix := "-sekrit"
	if got := filepath.Base(path); len(got) < len(wantSuffix) || got[len(got)-len(wantSuffix):] != wantSuffix {
		t.Errorf("cache file name %q does not end with token prefix %q", got, wantSuffix)
	}
}

func TestRoundTrip_UsedAsHTTPClientTransport(t *testing.T) {
	c, srv := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("via-roundtrip"))
	})

	client := &http.Client{Transport: c}
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("client.Get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
