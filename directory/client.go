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

// Package directory resolves team identifiers, fetches team members
// and repository collaborators, fetches per-user public keys, and
// verifies tokens against the upstream code-forge API.
package directory

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/go-github/v70/github"
	"golang.org/x/oauth2"

	"github.com/jrepp/forgedir/config"
	"github.com/jrepp/forgedir/httpcache"
)

// PerPage is the page size used for every list request. The upstream
// API is never paginated past the first page: larger teams or
// collaborator lists are silently truncated, matching the source
// tool's longstanding behavior (spec Open Question (c)).
const PerPage = 100

// Client talks to one configured organization/team or
// owner/repository on the upstream code-forge API, through a
// cache-aware transport scoped to one token.
type Client struct {
	gh     *github.Client
	ghAuth *github.Client
	cache  *httpcache.Cache
	cfg    *config.Config
}

// New constructs a Client for cfg. Every request goes to cfg.Endpoint
// followed directly by the resource path. Enumeration and lookup calls
// go through cache (which supplies authentication and the on-disk TTL
// cache). A second, uncached client --
// authenticated directly through an oauth2 token source rather than
// through cache's header-cloning transport -- backs Authenticate, so
// a revoked token is never masked by a stale cache entry.
func New(cfg *config.Config, cache *httpcache.Cache) (*Client, error) {
	base, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("directory: invalid endpoint %q: %w", cfg.Endpoint, err)
	}
	gh := github.NewClient(cache.Client())
	gh.BaseURL = base

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	ghAuth := github.NewClient(oauth2.NewClient(context.Background(), ts))
	ghAuth.BaseURL = base

	return &Client{gh: gh, ghAuth: ghAuth, cache: cache, cfg: cfg}, nil
}

func (c *Client) listOptions() *github.ListOptions {
	return &github.ListOptions{PerPage: PerPage}
}

// withToken builds a one-off client authenticated with token instead
// of cfg.Token, for authentication calls that must verify an
// arbitrary caller-supplied credential.
func (c *Client) withToken(token string) (*github.Client, error) {
	base, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("directory: invalid endpoint %q: %w", c.cfg.Endpoint, err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	gh := github.NewClient(oauth2.NewClient(context.Background(), ts))
	gh.BaseURL = base
	return gh, nil
}
