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

package entry

import (
	"github.com/jrepp/forgedir/ferr"
	"github.com/jrepp/forgedir/member"
)

// allOnes is the flags value for every packed shadow record: every
// bit set, matching glibc's struct spwd sp_flag convention for "no
// flags defined".
const allOnes = ^uint64(0)

// Shadow is the shadow record the host name-service sees. Every
// date/age field is -1 (unset); Flags is all-ones.
type Shadow struct {
	Name          string
	PasswordField string
	LastChange    int
	Min           int
	Max           int
	Warn          int
	Inactive      int
	Expire        int
	Flags         uint64
}

// PackShadow packs m into buf. forgedir never authenticates by
// password, so PasswordField is always the locked-account marker
// "!!".
func PackShadow(buf *Buffer, m member.Member) (Shadow, error) {
	if m.Login == "" {
		return Shadow{}, ferr.Parse
	}

	name, err := buf.PutString(m.Login)
	if err != nil {
		return Shadow{}, err
	}
	pw, err := buf.PutString("!!")
	if err != nil {
		return Shadow{}, err
	}

	return Shadow{
		Name:          name,
		PasswordField: pw,
		LastChange:    -1,
		Min:           -1,
		Max:           -1,
		Warn:          -1,
		Inactive:      -1,
		Expire:        -1,
		Flags:         allOnes,
	}, nil
}
