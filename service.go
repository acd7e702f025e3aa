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
	"context"

	"github.com/jrepp/forgedir/config"
	"github.com/jrepp/forgedir/directory"
	"github.com/jrepp/forgedir/entry"
	"github.com/jrepp/forgedir/ferr"
	"github.com/jrepp/forgedir/member"
)

// Service is the ServiceSurface: the seven per-kind operations plus
// authenticate-by-token and list-keys-for-user, bound to one loaded
// Config and the directory.Client built from it. A Service is
// intended to be built fresh per outer call -- Config is immutable
// and short-lived -- while the cursor state it drives through
// globalRegistry persists across Service instances.
type Service struct {
	cfg *config.Config
	dir *directory.Client
	log Logger
}

// NewService builds a ServiceSurface over cfg and dir. log may be nil,
// in which case log lines are discarded.
func NewService(cfg *config.Config, dir *directory.Client, log Logger) *Service {
	return &Service{cfg: cfg, dir: dir, log: log}
}

// SetPasswdEnt opens account enumeration, fetching a fresh member
// snapshot. stayOpen is accepted for NSS-surface parity; this
// implementation has no persistent-connection resource to hold open
// or release based on it.
func (s *Service) SetPasswdEnt(ctx context.Context, stayOpen bool) Status {
	id := logEntry(s.log, "set_pw_ent", stayOpen)
	err := globalRegistry.account.Open(func() ([]member.Member, error) {
		return s.dir.FetchMembers(ctx)
	})
	status := classify(err)
	logExit(s.log, id, "set_pw_ent", status, err)
	return status
}

// GetPasswdEntR packs the next account into buf and advances the
// cursor. TryAgain leaves the cursor at the same element.
func (s *Service) GetPasswdEntR(buf []byte) (entry.Account, Status) {
	id := logEntry(s.log, "get_pw_ent_r", len(buf))
	reg := &globalRegistry.account
	reg.Lock()
	defer reg.Unlock()

	m, ok := reg.PeekLocked()
	if !ok {
		logExit(s.log, id, "get_pw_ent_r", NotFound, nil)
		return entry.Account{}, NotFound
	}
	acct, err := entry.PackAccount(entry.NewBuffer(buf), m, s.cfg)
	status := classify(err)
	if status == Success {
		reg.AdvanceLocked()
	}
	logExit(s.log, id, "get_pw_ent_r", status, err)
	return acct, status
}

// EndPasswdEnt closes account enumeration. Always succeeds, including
// when already closed.
func (s *Service) EndPasswdEnt() Status {
	id := logEntry(s.log, "end_pw_ent")
	globalRegistry.account.Close()
	logExit(s.log, id, "end_pw_ent", Success, nil)
	return Success
}

// GetPasswdNamR looks up one account by login, independent of any
// open enumeration.
func (s *Service) GetPasswdNamR(ctx context.Context, name string, buf []byte) (entry.Account, Status) {
	id := logEntry(s.log, "get_pw_nam_r", name, len(buf))
	globalRegistry.account.Lock()
	defer globalRegistry.account.Unlock()

	m, err := s.findMember(ctx, func(m member.Member) bool { return m.Login == name })
	if err != nil {
		status := classify(err)
		logExit(s.log, id, "get_pw_nam_r", status, err)
		return entry.Account{}, status
	}
	acct, perr := entry.PackAccount(entry.NewBuffer(buf), m, s.cfg)
	status := classify(perr)
	logExit(s.log, id, "get_pw_nam_r", status, perr)
	return acct, status
}

// GetPasswdIdR looks up one account by uid. The directory id is
// recovered as uid - uid_base.
func (s *Service) GetPasswdIdR(ctx context.Context, uid int64, buf []byte) (entry.Account, Status) {
	id := logEntry(s.log, "get_pw_uid_r", uid, len(buf))
	globalRegistry.account.Lock()
	defer globalRegistry.account.Unlock()

	directoryID := uid - int64(s.cfg.UIDBase)
	m, err := s.findMember(ctx, func(m member.Member) bool { return m.ID == directoryID })
	if err != nil {
		status := classify(err)
		logExit(s.log, id, "get_pw_uid_r", status, err)
		return entry.Account{}, status
	}
	acct, perr := entry.PackAccount(entry.NewBuffer(buf), m, s.cfg)
	status := classify(perr)
	logExit(s.log, id, "get_pw_uid_r", status, perr)
	return acct, status
}

// SetShadowEnt opens shadow enumeration over the same member list
// account enumeration uses.
func (s *Service) SetShadowEnt(ctx context.Context, stayOpen bool) Status {
	id := logEntry(s.log, "set_sp_ent", stayOpen)
	err := globalRegistry.shadow.Open(func() ([]member.Member, error) {
		return s.dir.FetchMembers(ctx)
	})
	status := classify(err)
	logExit(s.log, id, "set_sp_ent", status, err)
	return status
}

// GetShadowEntR packs the next shadow record into buf and advances
// the cursor.
func (s *Service) GetShadowEntR(buf []byte) (entry.Shadow, Status) {
	id := logEntry(s.log, "get_sp_ent_r", len(buf))
	reg := &globalRegistry.shadow
	reg.Lock()
	defer reg.Unlock()

	m, ok := reg.PeekLocked()
	if !ok {
		logExit(s.log, id, "get_sp_ent_r", NotFound, nil)
		return entry.Shadow{}, NotFound
	}
	sh, err := entry.PackShadow(entry.NewBuffer(buf), m)
	status := classify(err)
	if status == Success {
		reg.AdvanceLocked()
	}
	logExit(s.log, id, "get_sp_ent_r", status, err)
	return sh, status
}

// EndShadowEnt closes shadow enumeration.
func (s *Service) EndShadowEnt() Status {
	id := logEntry(s.log, "end_sp_ent")
	globalRegistry.shadow.Close()
	logExit(s.log, id, "end_sp_ent", Success, nil)
	return Success
}

// GetShadowNamR looks up one shadow record by login.
func (s *Service) GetShadowNamR(ctx context.Context, name string, buf []byte) (entry.Shadow, Status) {
	id := logEntry(s.log, "get_sp_nam_r", name, len(buf))
	globalRegistry.shadow.Lock()
	defer globalRegistry.shadow.Unlock()

	m, err := s.findMember(ctx, func(m member.Member) bool { return m.Login == name })
	if err != nil {
		status := classify(err)
		logExit(s.log, id, "get_sp_nam_r", status, err)
		return entry.Shadow{}, status
	}
	sh, perr := entry.PackShadow(entry.NewBuffer(buf), m)
	status := classify(perr)
	logExit(s.log, id, "get_sp_nam_r", status, perr)
	return sh, status
}

// SetGroupEnt opens group enumeration. There is exactly one group, so
// this fetches the member list once and wraps it as the single
// virtual element the group cursor serves.
func (s *Service) SetGroupEnt(ctx context.Context, stayOpen bool) Status {
	id := logEntry(s.log, "set_gr_ent", stayOpen)
	err := globalRegistry.group.Open(func() ([]groupSnapshot, error) {
		members, fetchErr := s.dir.FetchMembers(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return []groupSnapshot{{members: members}}, nil
	})
	status := classify(err)
	logExit(s.log, id, "set_gr_ent", status, err)
	return status
}

// GetGroupEntR packs the single group record into buf and advances
// the cursor past its one element.
func (s *Service) GetGroupEntR(buf []byte) (entry.Group, Status) {
	id := logEntry(s.log, "get_gr_ent_r", len(buf))
	reg := &globalRegistry.group
	reg.Lock()
	defer reg.Unlock()

	snap, ok := reg.PeekLocked()
	if !ok {
		logExit(s.log, id, "get_gr_ent_r", NotFound, nil)
		return entry.Group{}, NotFound
	}
	g, err := entry.PackGroup(entry.NewBuffer(buf), snap.members, s.cfg)
	status := classify(err)
	if status == Success {
		reg.AdvanceLocked()
	}
	logExit(s.log, id, "get_gr_ent_r", status, err)
	return g, status
}

// EndGroupEnt closes group enumeration.
func (s *Service) EndGroupEnt() Status {
	id := logEntry(s.log, "end_gr_ent")
	globalRegistry.group.Close()
	logExit(s.log, id, "end_gr_ent", Success, nil)
	return Success
}

// GetGroupNamR looks up the configured group by name; any other name
// is NotFound, since there is exactly one group.
func (s *Service) GetGroupNamR(ctx context.Context, name string, buf []byte) (entry.Group, Status) {
	id := logEntry(s.log, "get_gr_nam_r", name, len(buf))
	globalRegistry.group.Lock()
	defer globalRegistry.group.Unlock()

	if name != s.cfg.GroupName {
		logExit(s.log, id, "get_gr_nam_r", NotFound, nil)
		return entry.Group{}, NotFound
	}
	members, err := s.dir.FetchMembers(ctx)
	if err != nil {
		status := classify(err)
		logExit(s.log, id, "get_gr_nam_r", status, err)
		return entry.Group{}, status
	}
	g, perr := entry.PackGroup(entry.NewBuffer(buf), members, s.cfg)
	status := classify(perr)
	logExit(s.log, id, "get_gr_nam_r", status, perr)
	return g, status
}

// GetGroupIdR looks up the configured group by gid; any other gid is
// NotFound.
func (s *Service) GetGroupIdR(ctx context.Context, gid int, buf []byte) (entry.Group, Status) {
	id := logEntry(s.log, "get_gr_gid_r", gid, len(buf))
	globalRegistry.group.Lock()
	defer globalRegistry.group.Unlock()

	if gid != s.cfg.GID {
		logExit(s.log, id, "get_gr_gid_r", NotFound, nil)
		return entry.Group{}, NotFound
	}
	members, err := s.dir.FetchMembers(ctx)
	if err != nil {
		status := classify(err)
		logExit(s.log, id, "get_gr_gid_r", status, err)
		return entry.Group{}, status
	}
	g, perr := entry.PackGroup(entry.NewBuffer(buf), members, s.cfg)
	status := classify(perr)
	logExit(s.log, id, "get_gr_gid_r", status, perr)
	return g, status
}

// Authenticate verifies token against login, bypassing the on-disk
// cache so a revoked token is caught immediately. It is guarded by
// the registry's authentication mutex, independent of the three kind
// mutexes. The result is Ok (nil), an error wrapping ferr.AuthFailed
// for a login mismatch or an upstream 401, or an error wrapping
// ferr.Transport when the upstream call fails otherwise -- this is an
// error result, not the NSS-facing Status enum the other operations
// return: authenticate either succeeds or fails, it never returns
// NotFound/TryAgain.
func (s *Service) Authenticate(ctx context.Context, login, token string) error {
	id := logEntry(s.log, "authenticate", login, maskToken(token))
	globalRegistry.authMu.Lock()
	defer globalRegistry.authMu.Unlock()

	err := s.dir.Authenticate(ctx, login, token)
	status := Success
	if err != nil {
		status = Unavailable
	}
	logExit(s.log, id, "authenticate", status, err)
	return err
}

// UserKeysFor returns the keys that should be installed for login:
// the aggregated team/collaborator key list if login is a shared
// user, otherwise login's own keys.
func (s *Service) UserKeysFor(ctx context.Context, login string) (string, Status) {
	id := logEntry(s.log, "user_keys", login)
	var keys string
	var err error
	if s.IsSharedUser(login) {
		keys, err = s.dir.TeamKeys(ctx)
	} else {
		keys, err = s.dir.UserKeys(ctx, login)
	}
	status := classify(err)
	logExit(s.log, id, "user_keys", status, err)
	return keys, status
}

// findMember fetches the current member list and returns the first
// element match reports true for. A missing match is ferr.NotFound.
// Duplicate ids in the upstream data resolve to the first match, per
// the documented open question.
func (s *Service) findMember(ctx context.Context, match func(member.Member) bool) (member.Member, error) {
	members, err := s.dir.FetchMembers(ctx)
	if err != nil {
		return member.Member{}, err
	}
	for _, m := range members {
		if match(m) {
			return m, nil
		}
	}
	return member.Member{}, ferr.NotFound
}
