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
	"github.com/jrepp/forgedir/config"
	"github.com/jrepp/forgedir/ferr"
	"github.com/jrepp/forgedir/member"
)

// GecosField is the fixed gecos literal every packed account carries.
const GecosField = "managed by forgedir"

// Account is the account record the host name-service sees.
type Account struct {
	Name   string
	Passwd string
	UID    int64
	GID    int
	Gecos  string
	Dir    string
	Shell  string
}

// PackAccount packs m into buf under c's uid_base/gid/home-template/
// shell configuration. Every string field of the result aliases buf.
func PackAccount(buf *Buffer, m member.Member, c *config.Config) (Account, error) {
	if m.Login == "" {
		return Account{}, ferr.Parse
	}

	name, err := buf.PutString(m.Login)
	if err != nil {
		return Account{}, err
	}
	passwd, err := buf.PutString("x")
	if err != nil {
		return Account{}, err
	}
	gecos, err := buf.PutString(GecosField)
	if err != nil {
		return Account{}, err
	}
	dir, err := buf.PutString(c.Home(m.Login))
	if err != nil {
		return Account{}, err
	}
	shell, err := buf.PutString(c.Shell)
	if err != nil {
		return Account{}, err
	}

	return Account{
		Name:   name,
		Passwd: passwd,
		UID:    int64(c.UIDBase) + m.ID,
		GID:    c.GID,
		Gecos:  gecos,
		Dir:    dir,
		Shell:  shell,
	}, nil
}
