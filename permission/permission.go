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

// Package permission maps the operator-chosen permission name to the
// directory's permission flags and filters collaborator lists.
package permission

import (
	"fmt"

	"github.com/jrepp/forgedir/member"
)

// Flag returns the upstream permission flag name for the
// operator-facing permission name. Unknown names are a configuration
// error, surfaced at config-load time.
func Flag(name string) (string, error) {
	switch name {
	case "admin":
		return "admin", nil
	case "write":
		return "push", nil
	case "read":
		return "pull", nil
	default:
		return "", fmt.Errorf("permission: unknown permission %q", name)
	}
}

// Filter returns the subset of members whose Permissions[flag] is
// true, preserving the input order.
func Filter(members []member.Member, flag string) []member.Member {
	out := make([]member.Member, 0, len(members))
	for _, m := range members {
		if m.HasPermission(flag) {
			out = append(out, m)
		}
	}
	return out
}
