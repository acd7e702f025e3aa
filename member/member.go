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

// Package member holds the directory-neutral representation of one
// upstream org member or repository collaborator.
package member

// Member is one element of the upstream team-members or
// repository-collaborators array, decoupled from any particular
// upstream client library's types.
type Member struct {
	Login       string
	ID          int64
	Permissions map[string]bool
}

// HasPermission reports whether the member has the named permission
// flag set (e.g. "admin", "push", "pull"). A member fetched from a
// source that never reports permissions (team members) always
// returns false.
func (m Member) HasPermission(flag string) bool {
	if m.Permissions == nil {
		return false
	}
	return m.Permissions[flag]
}
