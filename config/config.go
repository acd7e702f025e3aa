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

// Package config parses the forgedir configuration file, applies
// environment overrides, and fills defaults.
package config

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jrepp/forgedir/permission"
)

// DefaultEndpoint is the API root used when Endpoint is left empty.
const DefaultEndpoint = "https://api.github.com/"

// EnvPrefix namespaces the environment variable overrides.
const EnvPrefix = "FORGEDIR"

const sharedUserPattern = `"([A-Za-z0-9_-]+)"`

var sharedUserRegexp = regexp.MustCompile(sharedUserPattern)

// Config is the fully resolved, immutable configuration for one outer
// call. It is loaded lazily and discarded at return.
type Config struct {
	Endpoint     string
	Token        string
	Organization string
	Team         string
	Owner        string
	Repository   string
	Permission   string
	GroupName    string
	HomeTemplate string
	Shell        string
	UIDBase      int
	GID          int
	CacheTTL     int
	SyslogEnabled bool
	SharedUsers  map[string]bool

	// uidBaseSet, gidSet, and cacheTTLSet record whether the
	// corresponding field was actually assigned from the parsed file or
	// environment, as opposed to left at its Go zero value. fillDefaults
	// consults these instead of comparing against 0, so an operator who
	// writes "UidStarts = 0" keeps 0 rather than silently getting 2000.
	uidBaseSet  bool
	gidSet      bool
	cacheTTLSet bool
}

// RepositoryMode reports whether the configuration targets a
// repository's collaborators rather than a team's members. Exactly
// one of team-mode or repository-mode is active.
func (c *Config) RepositoryMode() bool {
	return c.Repository != ""
}

// Home renders the home-path template for the given login.
func (c *Config) Home(login string) string {
	return fmt.Sprintf(c.HomeTemplate, login)
}

// PermissionFlag resolves the configured permission name to the
// upstream permission flag.
func (c *Config) PermissionFlag() (string, error) {
	return permission.Flag(c.Permission)
}

// Load reads the configuration file at path, applies the process
// environment, and fills defaults. A missing or malformed required
// field is reported as a wrapped error.
func Load(path string) (*Config, error) {
	raw, err := parseFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	c := &Config{
		Endpoint:     raw["Endpoint"],
		Token:        raw["Token"],
		Organization: raw["Organization"],
		Team:         raw["Team"],
		Owner:        raw["Owner"],
		Repository:   raw["Repository"],
		Permission:   raw["Permission"],
		GroupName:    raw["Group"],
		HomeTemplate: raw["Home"],
		Shell:        raw["Shell"],
	}

	if v := raw["UidStarts"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: UidStarts: %w", err)
		}
		c.UIDBase = n
		c.uidBaseSet = true
	}
	if v := raw["Gid"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: Gid: %w", err)
		}
		c.GID = n
		c.gidSet = true
	}
	if v := raw["Cache"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: Cache: %w", err)
		}
		c.CacheTTL = n
		c.cacheTTLSet = true
	}
	if v := raw["Syslog"]; v != "" {
		c.SyslogEnabled = v == "true" || v == "1"
	}
	c.SharedUsers = parseSharedUsers(raw["SharedUsers"])

	applyEnv(c)
	fillDefaults(c)

	if c.Token == "" {
		return nil, fmt.Errorf("config: Token is required")
	}
	if c.Organization == "" {
		return nil, fmt.Errorf("config: Organization is required")
	}
	if c.Team == "" && c.Repository == "" {
		return nil, fmt.Errorf("config: one of Team or Repository is required")
	}
	if c.Permission != "" {
		if _, err := c.PermissionFlag(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	return c, nil
}

// applyEnv applies the <PREFIX>_* environment overrides, taking
// precedence over values loaded from the file.
func applyEnv(c *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "_TOKEN"); ok {
		c.Token = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "_ENDPOINT"); ok {
		c.Endpoint = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "_ORGANIZATION"); ok {
		c.Organization = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "_TEAM"); ok {
		c.Team = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "_OWNER"); ok {
		c.Owner = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "_REPOSITORY"); ok {
		c.Repository = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "_PERMISSION"); ok {
		c.Permission = v
	}
}

// fillDefaults applies the default-filling order of the configuration
// grammar: endpoint, trailing slash, group name, owner, permission,
// home, shell, uid/gid, cache TTL.
func fillDefaults(c *Config) {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if !strings.HasSuffix(c.Endpoint, "/") {
		c.Endpoint += "/"
	}
	if c.GroupName == "" {
		if c.Repository != "" {
			c.GroupName = c.Repository
		} else {
			c.GroupName = c.Team
		}
	}
	if c.Owner == "" {
		c.Owner = c.Organization
	}
	if c.Repository != "" && c.Permission == "" {
		c.Permission = "write"
	}
	if c.HomeTemplate == "" {
		c.HomeTemplate = "/home/%s"
	}
	if c.Shell == "" {
		c.Shell = "/bin/bash"
	}
	if !c.uidBaseSet {
		c.UIDBase = 2000
	}
	if !c.gidSet {
		c.GID = 2000
	}
	if !c.cacheTTLSet {
		c.CacheTTL = 500
	}
}

// parseSharedUsers scans value for all double-quoted tokens matching
// [A-Za-z0-9_-]+, in order.
func parseSharedUsers(value string) map[string]bool {
	out := map[string]bool{}
	for _, m := range sharedUserRegexp.FindAllStringSubmatch(value, -1) {
		out[m[1]] = true
	}
	return out
}

// parseFile reads the Key = Value grammar: one assignment per line,
// blank lines ignored, unknown keys ignored silently, a single outer
// pair of double quotes stripped from the value.
func parseFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := splitAssignment(line)
		if !ok {
			continue
		}
		if !recognizedKey(key) {
			continue
		}
		out[key] = dequote(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// splitAssignment splits a "Key = Value" line on the first "= "
// delimiter. Everything after that delimiter, including embedded
// spaces, is taken as the value.
func splitAssignment(line string) (key, value string, ok bool) {
	idx := strings.Index(line, "= ")
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = line[idx+2:]
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

func dequote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}
	return value
}

var recognizedKeys = map[string]bool{
	"Endpoint":     true,
	"Token":        true,
	"Organization": true,
	"Team":         true,
	"Owner":        true,
	"Repository":   true,
	"Permission":   true,
	"Group":        true,
	"Home":         true,
	"Shell":        true,
	"UidStarts":    true,
	"Gid":          true,
	"Cache":        true,
	"Syslog":       true,
	"SharedUsers":  true,
}

func recognizedKey(key string) bool {
	return recognizedKeys[key]
}
