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

package forgedir

// IsSharedUser reports whether login is configured to receive the
// aggregated team/collaborator key list instead of its own keys.
// UserKeysFor in service.go is the only caller; this is split out
// because the shared-user decision is a pure configuration lookup,
// independent of the directory fetch it gates.
func (s *Service) IsSharedUser(login string) bool {
	return s.cfg.SharedUsers[login]
}
