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

import (
	"sync"

	"github.com/jrepp/forgedir/cursor"
	"github.com/jrepp/forgedir/member"
)

// groupSnapshot is the group kind's one-element virtual array: the
// full current member list, wrapped so Cursor[groupSnapshot] can
// serve it as a single enumerable entity.
type groupSnapshot struct {
	members []member.Member
}

// registry holds the process-wide cursor state: one cursor per kind,
// plus the authentication mutex. It is not tied to any one Config or
// Service -- the host process loads a fresh Config per outer call,
// but the cursors it opens persist across calls exactly as the
// concurrency model requires. The zero value is a closed registry
// with an unlocked auth mutex, so no explicit lazy-init wrapper is
// needed beyond the package-level var below.
type registry struct {
	account cursor.Cursor[member.Member]
	shadow  cursor.Cursor[member.Member]
	group   cursor.Cursor[groupSnapshot]
	authMu  sync.Mutex
}

var globalRegistry = &registry{}
