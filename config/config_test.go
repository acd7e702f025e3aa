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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "forgedir.conf")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_TeamMode(t *testing.T) {
	path := writeConfigFile(t, `Token = abc123
Organization = linyows
Team = yourteam
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %q, want %q", c.Endpoint, DefaultEndpoint)
	}
	if c.GroupName != "yourteam" {
		t.Errorf("GroupName = %q, want yourteam", c.GroupName)
	}
	if c.Owner != "linyows" {
		t.Errorf("Owner = %q, want linyows", c.Owner)
	}
	if c.UIDBase != 2000 || c.GID != 2000 {
		t.Errorf("UIDBase/GID = %d/%d, want 2000/2000", c.UIDBase, c.GID)
	}
	if c.CacheTTL != 500 {
		t.Errorf("CacheTTL = %d, want 500", c.CacheTTL)
	}
	if c.RepositoryMode() {
		t.Errorf("RepositoryMode = true, want false")
	}
}

func TestLoad_RepositoryMode_DefaultsWritePermission(t *testing.T) {
	path := writeConfigFile(t, `Token = abc123
Organization = linyows
Owner = linyows
Repository = octopass
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Permission != "write" {
		t.Errorf("Permission = %q, want write", c.Permission)
	}
	if c.GroupName != "octopass" {
		t.Errorf("GroupName = %q, want octopass", c.GroupName)
	}
	if !c.RepositoryMode() {
		t.Errorf("RepositoryMode = false, want true")
	}
}

func TestLoad_EndpointTrailingSlash(t *testing.T) {
	path := writeConfigFile(t, `Token = abc
Organization = org
Team = team
Endpoint = "https://ghe.example.com/api/v3"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Endpoint != "https://ghe.example.com/api/v3/" {
		t.Errorf("Endpoint = %q, want trailing slash", c.Endpoint)
	}
}

func TestLoad_SharedUsers(t *testing.T) {
	path := writeConfigFile(t, `Token = abc
Organization = org
Team = team
SharedUsers = ["jenkins", "deploy-bot"]
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.SharedUsers["jenkins"] || !c.SharedUsers["deploy-bot"] {
		t.Errorf("SharedUsers = %v, want jenkins and deploy-bot", c.SharedUsers)
	}
	if len(c.SharedUsers) != 2 {
		t.Errorf("len(SharedUsers) = %d, want 2", len(c.SharedUsers))
	}
}

func TestLoad_UnknownKeyIgnored(t *testing.T) {
	path := writeConfigFile(t, `Token = abc
Organization = org
Team = team
ThisKeyDoesNotExist = surprise
`)

	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	path := writeConfigFile(t, `Organization = org
Team = team
`)

	if _, err := Load(path); err == nil {
		t.Fatalf("Load: want error for missing token")
	}
}

func TestLoad_BadPermission(t *testing.T) {
	path := writeConfigFile(t, `Token = abc
Organization = org
Team = team
Permission = superuser
`)

	if _, err := Load(path); err == nil {
		t.Fatalf("Load: want error for bad permission")
	}
}

func TestLoad_ExplicitZeroUidStartsIsPreserved(t *testing.T) {
	path := writeConfigFile(t, `Token = abc
Organization = org
Team = team
UidStarts = 0
Gid = 0
Cache = 0
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.UIDBase != 0 {
		t.Errorf("UIDBase = %d, want 0 (explicitly configured)", c.UIDBase)
	}
	if c.GID != 0 {
		t.Errorf("GID = %d, want 0 (explicitly configured)", c.GID)
	}
	if c.CacheTTL != 0 {
		t.Errorf("CacheTTL = %d, want 0 (explicitly configured)", c.CacheTTL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `Token = filetoken
Organization = fileorg
Team = fileteam
`)

	t.Setenv(EnvPrefix+"_TOKEN", "envtoken")
	t.Setenv(EnvPrefix+"_TEAM", "envteam")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Token != "envtoken" {
		t.Errorf("Token = %q, want envtoken", c.Token)
	}
	if c.Team != "envteam" {
		t.Errorf("Team = %q, want envteam", c.Team)
	}
	if c.Organization != "fileorg" {
		t.Errorf("Organization = %q, want fileorg", c.Organization)
	}
}

func TestHome(t *testing.T) {
	c := &Config{HomeTemplate: "/home/%s"}
	if got, want := c.Home("linyows"), "/home/linyows"; got != want {
		t.Errorf("Home = %q, want %q", got, want)
	}
}
