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
	"github.com/jrepp/forgedir/member"
)

// Group is the group record the host name-service sees. There is
// exactly one group per configuration, synthesized from the
// configured group name and the full current member list.
type Group struct {
	Name    string
	Passwd  string
	GID     int
	Members []string
}

// PackGroup packs the single configured group, preserving members'
// directory order. Every string in the result, including each member
// login, aliases buf.
func PackGroup(buf *Buffer, members []member.Member, c *config.Config) (Group, error) {
	name, err := buf.PutString(c.GroupName)
	if err != nil {
		return Group{}, err
	}
	passwd, err := buf.PutString("x")
	if err != nil {
		return Group{}, err
	}

	logins := make([]string, 0, len(members))
	for _, m := range members {
		login, err := buf.PutString(m.Login)
		if err != nil {
			return Group{}, err
		}
		logins = append(logins, login)
	}

	return Group{
		Name:    name,
		Passwd:  passwd,
		GID:     c.GID,
		Members: logins,
	}, nil
}
