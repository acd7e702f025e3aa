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

package main

import (
	"fmt"
	"strings"

	"github.com/jrepp/forgedir/entry"
)

// showAccount renders a passwd entry the way octopass's own nss CLI
// prints struct passwd: name:passwd:uid:gid:gecos:dir:shell.
func showAccount(a entry.Account) string {
	return fmt.Sprintf("%s:%s:%d:%d:%s:%s:%s", a.Name, a.Passwd, a.UID, a.GID, a.Gecos, a.Dir, a.Shell)
}

// showShadow renders a shadow entry the way octopass's own nss CLI
// prints struct spwd. Every age field forgedir packs is -1, which
// matches octopass's collapsed "name:passwd:::::::" form.
func showShadow(s entry.Shadow) string {
	if s.LastChange == -1 && s.Min == -1 && s.Max == -1 && s.Warn == -1 && s.Inactive == -1 && s.Expire == -1 {
		return fmt.Sprintf("%s:%s:::::::", s.Name, s.PasswordField)
	}
	return fmt.Sprintf("%s:%s:%d:%d:%d:%d:%d:%d:%d",
		s.Name, s.PasswordField, s.LastChange, s.Min, s.Max, s.Warn, s.Inactive, s.Expire, s.Flags)
}

// showGroup renders a group entry the way octopass's own nss CLI
// prints struct group: name:passwd:gid:member,member,...
func showGroup(g entry.Group) string {
	return fmt.Sprintf("%s:%s:%d:%s", g.Name, g.Passwd, g.GID, strings.Join(g.Members, ","))
}
