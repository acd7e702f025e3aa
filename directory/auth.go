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

	"github.com/jrepp/forgedir/ferr"
)

// Authenticate verifies that token identifies login on the upstream
// service. It bypasses the on-disk cache entirely -- a revoked token
// must be detected on the next call, not masked by a stale 200 from
// a previous one -- by going through the oauth2-backed client built
// in New rather than through cache.
func (c *Client) Authenticate(ctx context.Context, login, token string) error {
	var gh = c.ghAuth
	if token != c.cfg.Token {
		fresh, err := c.withToken(token)
		if err != nil {
			return err
		}
		gh = fresh
	}

	user, resp, err := gh.Users.Get(ctx, "")
	if err != nil {
		if resp != nil && resp.StatusCode == 401 {
			return fmt.Errorf("directory: authenticating %q: %w", login, ferr.AuthFailed)
		}
		return fmt.Errorf("directory: authenticating %q: %w: %v", login, ferr.Transport, err)
	}
	if user.GetLogin() != login {
		return fmt.Errorf("directory: token does not belong to %q: %w", login, ferr.AuthFailed)
	}
	return nil
}
