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
	"fmt"
	"net/http"

	"github.com/google/go-github/v70/github"

	"github.com/jrepp/forgedir/ferr"
	"github.com/jrepp/forgedir/member"
)

// NoTeamID is returned by ResolveTeamID when no team matches.
const NoTeamID = -1

// ResolveTeamID finds the numeric ID of the named team within the
// configured organization. Only the first page of teams is consulted;
// an organization with more than PerPage teams may fail to resolve a
// team defined past the first page.
func (c *Client) ResolveTeamID(ctx context.Context, name string) (int64, error) {
	teams, _, err := c.gh.Teams.ListTeams(ctx, c.cfg.Organization, c.listOptions())
	if err != nil {
		return NoTeamID, fmt.Errorf("directory: listing teams: %w: %v", ferr.Transport, err)
	}
	for _, t := range teams {
		if t.GetSlug() == name || t.GetName() == name {
			return t.GetID(), nil
		}
	}
	return NoTeamID, fmt.Errorf("directory: team %q: %w", name, ferr.NotFound)
}

// FetchTeamMembers lists the members of the team with the given
// numeric ID. Team members carry no permission flags of their own --
// PermissionFlag is meaningless in team-mode and every member is
// returned.
//
// This hits the team-id-keyed members endpoint directly --
// teams/{id}/members -- rather than go-github's
// Teams.ListTeamMembersByID, which is pinned to the organization-id-
// keyed /organizations/{org_id}/team/{team_id}/members route and
// would need an extra Organizations.Get round-trip just to learn the
// org's numeric id. Going through c.cache.Get also means this request
// is on-disk cached like every other list call.
func (c *Client) FetchTeamMembers(_ context.Context, teamID int64) ([]member.Member, error) {
	url := fmt.Sprintf("%steams/%d/members?per_page=%d", c.cfg.Endpoint, teamID, PerPage)
	body, status, err := c.cache.Get(url)
	if err != nil {
		return nil, fmt.Errorf("directory: listing members of team %d: %w: %v", teamID, ferr.Transport, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("directory: listing members of team %d: %w: unexpected status %d", teamID, ferr.Transport, status)
	}
	var users []*github.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("directory: parsing members of team %d: %w: %v", teamID, ferr.Parse, err)
	}
	return membersFromUsers(users), nil
}
