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
	"fmt"

	"github.com/google/go-github/v70/github"

	"github.com/jrepp/forgedir/ferr"
	"github.com/jrepp/forgedir/member"
)

// FetchRepositoryCollaborators returns the members of cfg.Owner/
// cfg.Repository, each carrying the permission flags the upstream API
// reports. Filtering by the configured permission flag is the
// caller's responsibility (see permission.Filter).
func (c *Client) FetchRepositoryCollaborators(ctx context.Context) ([]member.Member, error) {
	opts := &github.ListCollaboratorsOptions{ListOptions: *c.listOptions()}
	users, _, err := c.gh.Repositories.ListCollaborators(ctx, c.cfg.Owner, c.cfg.Repository, opts)
	if err != nil {
		return nil, fmt.Errorf("directory: listing collaborators of %s/%s: %w: %v",
			c.cfg.Owner, c.cfg.Repository, ferr.Transport, err)
	}
	return membersFromUsers(users), nil
}

// membersFromUsers converts upstream user objects to DirectoryMembers,
// skipping any entry missing its login -- per spec, a malformed single
// object is dropped rather than failing the whole fetch.
func membersFromUsers(users []*github.User) []member.Member {
	out := make([]member.Member, 0, len(users))
	for _, u := range users {
		if u.GetLogin() == "" {
			continue
		}
		out = append(out, member.Member{
			Login:       u.GetLogin(),
			ID:          u.GetID(),
			Permissions: u.GetPermissions(),
		})
	}
	return out
}
