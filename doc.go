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

// Package forgedir exposes a code-forge organization's team members
// or repository collaborators as host account, shadow, and group
// data, for a name-service/PAM front end. It enumerates and looks up
// entries by cursor, packs them into caller-supplied fixed buffers,
// authenticates callers by token, and aggregates SSH public keys.
//
// forgedir itself never reads a byte off the wire or off disk: it
// composes config.Config, directory.Client, and entry.Buffer, adding
// the per-kind cursor registry, status classification, shared-user
// resolution, and structured logging around them.
package forgedir
