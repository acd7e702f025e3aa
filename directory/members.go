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

	"github.com/jrepp/forgedir/member"
	"github.com/jrepp/forgedir/permission"
)

// FetchMembers is the single entry point every enumeration and lookup
// operation should use. It dispatches to the repository-collaborator
// path when the configuration targets a repository, filtered to the
// configured permission flag, or to the team-member path otherwise.
func (c *Client) FetchMembers(ctx context.Context) ([]member.Member, error) {
	if c.cfg.RepositoryMode() {
		members, err := c.FetchRepositoryCollaborators(ctx)
		if err != nil {
			return nil, err
		}
		flag, err := c.cfg.PermissionFlag()
		if err != nil {
			return nil, fmt.Errorf("directory: %w", err)
		}
		return permission.Filter(members, flag), nil
	}

	teamID, err := c.ResolveTeamID(ctx, c.cfg.Team)
	if err != nil {
		return nil, err
	}
	return c.FetchTeamMembers(ctx, teamID)
}
