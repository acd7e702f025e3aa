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

package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrepp/forgedir/config"
	"github.com/jrepp/forgedir/httpcache"
)

func newTestClient(t *testing.T, mux *http.ServeMux) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Endpoint:     srv.URL + "/",
		Token:        "test-token",
		Organization: "acme",
		Team:         "engineering",
		Owner:        "acme",
		Repository:   "",
		Permission:   "write",
		UIDBase:      2000,
		GID:          2000,
		CacheTTL:     0,
	}
	cache := httpcache.New(t.TempDir(), cfg.Token, cfg.CacheTTL, 1000)

	cl, err := New(cfg, cache)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return cl, srv
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestResolveTeamID_FindsBySlugOrName(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orgs/acme/teams", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]interface{}{
			{"id": 1, "name": "Platform", "slug": "platform"},
			{"id": 2, "name": "Engineering", "slug": "engineering"},
		})
	})
	cl, _ := newTestClient(t, mux)

	id, err := cl.ResolveTeamID(context.Background(), "engineering")
	if err != nil {
		t.Fatalf("ResolveTeamID: %v", err)
	}
	if id != 2 {
		t.Errorf("id = %d, want 2", id)
	}
}

func TestResolveTeamID_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orgs/acme/teams", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]interface{}{{"id": 1, "name": "Platform", "slug": "platform"}})
	})
	cl, _ := newTestClient(t, mux)

	if _, err := cl.ResolveTeamID(context.Background(), "missing"); err == nil {
		t.Fatal("ResolveTeamID: want error, got nil")
	}
}

func TestFetchMembers_RepositoryModeFiltersByPermission(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/collaborators", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]interface{}{
			{"login": "linyows", "id": 1, "permissions": map[string]bool{"push": true, "pull": true}},
			{"login": "reader", "id": 2, "permissions": map[string]bool{"push": false, "pull": true}},
		})
	})
	mux.HandleFunc("/orgs/acme/teams", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]interface{}{})
	})

	cl, _ := newTestClient(t, mux)
	cl.cfg.Repository = "widgets"
	cl.cfg.Permission = "write"

	members, err := cl.FetchMembers(context.Background())
	if err != nil {
		t.Fatalf("FetchMembers: %v", err)
	}
	if len(members) != 1 || members[0].Login != "linyows" {
		t.Fatalf("members = %+v, want only linyows", members)
	}
}

func TestFetchMembers_TeamMode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orgs/acme/teams", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]interface{}{{"id": 9, "name": "Engineering", "slug": "engineering"}})
	})
	mux.HandleFunc("/teams/9/members", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("per_page") != "100" {
			t.Errorf("per_page = %q, want 100", r.URL.Query().Get("per_page"))
		}
		writeJSON(w, []map[string]interface{}{{"login": "linyows", "id": 72049}})
	})

	cl, _ := newTestClient(t, mux)
	members, err := cl.FetchMembers(context.Background())
	if err != nil {
		t.Fatalf("FetchMembers: %v", err)
	}
	if len(members) != 1 || members[0].Login != "linyows" || members[0].ID != 72049 {
		t.Fatalf("members = %+v", members)
	}
}

func TestUserKeys_JoinsKeyLines(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/linyows/keys", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]interface{}{
			{"id": 1, "key": "ssh-rsa AAA..."},
			{"id": 2, "key": "ssh-ed25519 BBB..."},
		})
	})
	cl, _ := newTestClient(t, mux)

	keys, err := cl.UserKeys(context.Background(), "linyows")
	if err != nil {
		t.Fatalf("UserKeys: %v", err)
	}
	want := "ssh-rsa AAA...\nssh-ed25519 BBB...\n"
	if keys != want {
		t.Fatalf("keys = %q, want %q", keys, want)
	}
}

func TestAuthenticate_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"login": "linyows"})
	})
	cl, _ := newTestClient(t, mux)

	if err := cl.Authenticate(context.Background(), "linyows", "test-token"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
}

func TestAuthenticate_LoginMismatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"login": "someone-else"})
	})
	cl, _ := newTestClient(t, mux)

	if err := cl.Authenticate(context.Background(), "linyows", "test-token"); err == nil {
		t.Fatal("Authenticate: want error for login mismatch, got nil")
	}
}

func TestAuthenticate_Unauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, map[string]interface{}{"message": "Bad credentials"})
	})
	cl, _ := newTestClient(t, mux)

	if err := cl.Authenticate(context.Background(), "linyows", "bad-token"); err == nil {
		t.Fatal("Authenticate: want error for 401, got nil")
	}
}
