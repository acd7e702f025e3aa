// Copyright 2025 Jacob Repp <jacobrepp@gmail.com>
//
// Copyright 2019 Google LLC
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

// Package httpcache performs authenticated GETs against the
// directory API and layers a time-bounded on-disk cache, keyed by URL
// and token prefix, in front of them.
//
// Cache implements http.RoundTripper so it can be dropped in as the
// Transport of any *http.Client — including the one backing a
// go-github client — and every GET that client issues becomes
// cache-and-TTL-aware with no special-casing at the call site.
package httpcache

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jrepp/forgedir/redact"
)

// DefaultRoot is the on-disk cache root used when Cache.Root is empty.
const DefaultRoot = "/var/cache/forgedir"

// MaxResponseBytes bounds the size of a cacheable response body.
// Larger responses fail with ErrResponseTooLarge.
const MaxResponseBytes = 10 * 1024 * 1024

// UserAgent identifies this client to the upstream API.
const UserAgent = "forgedir/1.0"

// ErrResponseTooLarge is returned when an upstream response exceeds
// MaxResponseBytes.
var ErrResponseTooLarge = fmt.Errorf("httpcache: response exceeds %d bytes", MaxResponseBytes)

// Logger is the minimal structured-logging sink the cache needs. It
// is satisfied directly by *logrus.Entry and *logrus.Logger.
type Logger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Errorf(string, ...interface{}) {}

// Cache is an authenticated, on-disk-cached transport for one
// credential. A Cache is scoped to a single token and effective uid;
// construct one per outer call via New.
type Cache struct {
	Root         string
	Token        string
	TTL          time.Duration
	EffectiveUID int
	Base         http.RoundTripper
	Now          func() time.Time
	Logger       Logger
}

// New returns a Cache for the given token, TTL (seconds, 0 disables
// caching), and effective uid. Base defaults to http.DefaultTransport.
func New(root, token string, ttlSeconds, effectiveUID int) *Cache {
	if root == "" {
		root = DefaultRoot
	}
	return &Cache{
		Root:         root,
		Token:        token,
		TTL:          time.Duration(ttlSeconds) * time.Second,
		EffectiveUID: effectiveUID,
		Base:         http.DefaultTransport,
		Now:          time.Now,
		Logger:       noopLogger{},
	}
}

// Client returns an *http.Client configured per spec: authenticated
// via c, redirects bounded to depth 3, total timeout 15s.
func (c *Cache) Client() *http.Client {
	return &http.Client{
		Transport: c,
		Timeout:   15 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("httpcache: stopped after %d redirects", len(via))
			}
			return nil
		},
	}
}

// RoundTrip implements http.RoundTripper. Only GET requests are
// cached; other methods pass straight through to Base.
func (c *Cache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.roundTripBase(req)
	}

	body, status, err := c.Get(req.URL.String())
	if err != nil {
		return nil, err
	}
	return newResponse(req, status, body), nil
}

func (c *Cache) roundTripBase(req *http.Request) (*http.Response, error) {
	req = cloneWithAuth(req, c.Token)
	return c.base().RoundTrip(req)
}

func (c *Cache) base() http.RoundTripper {
	if c.Base != nil {
		return c.Base
	}
	return http.DefaultTransport
}

func (c *Cache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Cache) logger() Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return noopLogger{}
}

// Get performs a cache-aware GET of url using c's token. If TTL is
// zero the cache is bypassed entirely. A fresh cache entry is
// returned without talking to the network; otherwise the network is
// consulted and, on a 200 response, the cache entry is replaced. A
// stale-but-present entry is left untouched on a failed refetch --
// the failure is propagated to the caller rather than masked by
// serving old data.
func (c *Cache) Get(rawURL string) (body []byte, status int, err error) {
	if c.TTL <= 0 {
		body, status, err = c.fetch(rawURL, c.Token)
		if err != nil {
			recordResult(modeError)
			return nil, 0, err
		}
		recordResult(modeMiss)
		return body, status, nil
	}

	path := c.cachePath(rawURL)
	if fresh, cached, rerr := readFresh(path, c.TTL, c.now()); rerr != nil {
		c.logger().Errorf("httpcache: reading cache entry %s: %v", path, rerr)
	} else if fresh {
		recordResult(modeHit)
		return cached, http.StatusOK, nil
	}

	body, status, err = c.fetch(rawURL, c.Token)
	if err != nil {
		recordResult(modeError)
		return nil, 0, err
	}

	if status == http.StatusOK {
		if werr := writeAtomic(path, body); werr != nil {
			c.logger().Errorf("httpcache: writing cache entry %s: %v", path, werr)
		}
	}
	recordResult(modeMiss)
	return body, status, nil
}

// GetUncached performs an unconditional GET, bypassing the on-disk
// cache. tokenOverride, if non-empty, is used instead of c.Token --
// this is how the authentication path detects a revoked token
// immediately.
func (c *Cache) GetUncached(rawURL, tokenOverride string) (body []byte, status int, err error) {
	token := c.Token
	if tokenOverride != "" {
		token = tokenOverride
	}
	return c.fetch(rawURL, token)
}

// fetch performs the actual network GET, routed directly through the
// base transport. It must never go through Cache.RoundTrip/Get again,
// or Get and RoundTrip would recurse into each other forever.
func (c *Cache) fetch(rawURL, token string) ([]byte, int, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("httpcache: %w", err)
	}
	req = cloneWithAuth(req, token)

	resp, err := c.networkClient().Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("httpcache: %w", err)
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, MaxResponseBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, 0, fmt.Errorf("httpcache: reading response: %w", err)
	}
	if len(data) > MaxResponseBytes {
		return nil, 0, ErrResponseTooLarge
	}
	return data, resp.StatusCode, nil
}

// networkClient is the low-level client used by fetch: same
// timeout/redirect policy as Client, but transported directly through
// Base rather than back through Cache.
func (c *Cache) networkClient() *http.Client {
	return &http.Client{
		Transport: c.base(),
		Timeout:   15 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("httpcache: stopped after %d redirects", len(via))
			}
			return nil
		},
	}
}

func cloneWithAuth(req *http.Request, token string) *http.Request {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "token "+token)
	clone.Header.Set("User-Agent", UserAgent)
	return clone
}

// cachePath derives the on-disk cache path for a URL under this
// Cache's token and effective uid: <root>/<uid>/<escaped-url>-<prefix>.
func (c *Cache) cachePath(rawURL string) string {
	escaped := url.QueryEscape(rawURL)
	name := escaped + "-" + redact.TokenPrefix(c.Token)
	return filepath.Join(c.Root, strconv.Itoa(c.EffectiveUID), name)
}

func readFresh(path string, ttl time.Duration, now time.Time) (fresh bool, body []byte, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		}
		return false, nil, err
	}
	if now.Sub(info.ModTime()) > ttl {
		return false, nil, nil
	}
	body, err = os.ReadFile(path)
	if err != nil {
		return false, nil, err
	}
	return true, body, nil
}

// writeAtomic writes body to path, creating the per-uid directory
// (mode 0700) if needed, via a write-then-rename so concurrent
// writers to the same key never observe a partial file.
func writeAtomic(path string, body []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	tmp := path + ".tmp-" + strconv.Itoa(os.Getpid())
	if err := os.WriteFile(tmp, body, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
