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

// Package testdirectory is a fake code-forge HTTP server for tests:
// it serves the handful of endpoints forgedir's directory package
// calls, from an in-memory fixture, the way testing/test_proxy_server.go
// in the teacher repo fakes an upstream Git server.
package testdirectory

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
)

// Team is one upstream team fixture entry.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// User is one upstream member/collaborator/authenticated-user fixture
// entry.
type User struct {
	Login       string          `json:"login"`
	ID          int64           `json:"id"`
	Permissions map[string]bool `json:"permissions,omitempty"`
}

// Key is one upstream SSH public key fixture entry.
type Key struct {
	ID  int64  `json:"id"`
	Key string `json:"key"`
}

// Server is an in-memory fixture of one organization's teams, each
// team's members, one repository's collaborators, and per-user keys.
type Server struct {
	Org           string
	Teams         []Team
	TeamMembers   map[int64][]User
	Collaborators []User
	Keys          map[string][]Key
	AuthUser      *User
	AuthStatus    int

	srv *httptest.Server
	mux *http.ServeMux
}

// New starts a Server and returns it. Call Close when done.
func New() *Server {
	s := &Server{
		TeamMembers: map[int64][]User{},
		Keys:        map[string][]Key{},
		AuthStatus:  http.StatusOK,
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/orgs/", s.handleOrgs)
	s.mux.HandleFunc("/teams/", s.handleTeams)
	s.mux.HandleFunc("/repos/", s.handleRepos)
	s.mux.HandleFunc("/users/", s.handleUsers)
	s.mux.HandleFunc("/user", s.handleAuthenticatedUser)
	s.srv = httptest.NewServer(s.mux)
	return s
}

// URL returns the server's base endpoint, trailing slash included.
func (s *Server) URL() string {
	return s.srv.URL + "/"
}

// Close shuts the fixture server down.
func (s *Server) Close() {
	s.srv.Close()
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleOrgs(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case fmt.Sprintf("/orgs/%s/teams", s.Org):
		writeJSON(w, s.Teams)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	var teamID int64
	if _, err := fmt.Sscanf(r.URL.Path, "/teams/%d/members", &teamID); err != nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, s.TeamMembers[teamID])
}

func (s *Server) handleRepos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Collaborators)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	var login string
	if _, err := fmt.Sscanf(r.URL.Path, "/users/%s", &login); err == nil {
		login = trimKeysSuffix(login)
		writeJSON(w, s.Keys[login])
		return
	}
	http.NotFound(w, r)
}

func trimKeysSuffix(s string) string {
	const suffix = "/keys"
	if len(s) > len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)]
	}
	return s
}

func (s *Server) handleAuthenticatedUser(w http.ResponseWriter, r *http.Request) {
	if s.AuthStatus != http.StatusOK {
		w.WriteHeader(s.AuthStatus)
		writeJSON(w, map[string]string{"message": "Bad credentials"})
		return
	}
	if s.AuthUser == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, s.AuthUser)
}
