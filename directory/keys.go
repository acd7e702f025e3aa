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
	"strings"

	"github.com/jrepp/forgedir/ferr"
)

// UserKeys returns login's public keys, each followed by a newline, as
// reported by the upstream service. An empty result is not an error:
// a member with no registered keys simply contributes nothing.
func (c *Client) UserKeys(ctx context.Context, login string) (string, error) {
	keys, _, err := c.gh.Users.ListKeys(ctx, login, c.listOptions())
	if err != nil {
		return "", fmt.Errorf("directory: listing keys for %q: %w: %v", login, ferr.Transport, err)
	}
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k.GetKey())
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// TeamKeys returns the concatenation of UserKeys for every current
// member, in enumeration order. This is the aggregate handed to
// SharedUsers logins in place of their own key list.
func (c *Client) TeamKeys(ctx context.Context) (string, error) {
	members, err := c.FetchMembers(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, m := range members {
		keys, err := c.UserKeys(ctx, m.Login)
		if err != nil {
			return "", err
		}
		b.WriteString(keys)
	}
	return b.String(), nil
}
