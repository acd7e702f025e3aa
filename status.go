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
	"errors"
	"syscall"

	"github.com/jrepp/forgedir/ferr"
)

// statusCode is the small, fixed result code every ServiceSurface
// operation returns to the host name-service/PAM framework.
type statusCode int

const (
	// success means the result is fully populated.
	success statusCode = iota
	// notFound means the requested entity is not present.
	notFound
	// unavailable means a transport, parse, or configuration error
	// kept the directory from answering.
	unavailable
	// tryAgain means the caller's buffer was too small; the cursor,
	// if any, has not advanced and the call should be retried with a
	// larger buffer.
	tryAgain
)

// Status pairs the host-facing result code with the errno the
// classifying error actually produced. Two causes that collapse to
// the same code -- a ferr.Config vs. a ferr.Transport, both
// Unavailable -- still carry their own errno, so nothing downstream
// has to re-derive it from a discarded error.
type Status struct {
	code  statusCode
	errno syscall.Errno
}

var (
	Success  = Status{code: success}
	NotFound = Status{code: notFound, errno: syscall.ENOENT}
	TryAgain = Status{code: tryAgain, errno: syscall.ERANGE}
	// Unavailable is the zero-cause form, for call sites (Authenticate's
	// own logging) that only need the code, not a specific errno.
	// classify builds a Status{code: unavailable, errno: ...} per
	// cause: a Config-caused or unclassified one equals this value
	// (EIO), while a Transport/Parse-caused one reports ENOENT.
	Unavailable = Status{code: unavailable, errno: syscall.EIO}
)

func (s Status) String() string {
	switch s.code {
	case success:
		return "Success"
	case notFound:
		return "NotFound"
	case unavailable:
		return "Unavailable"
	case tryAgain:
		return "TryAgain"
	default:
		return "Unknown"
	}
}

// Errno returns the errno the host should surface for s, per the
// propagation policy: NotFound/ENOENT, TryAgain/ERANGE,
// Unavailable/EIO for a configuration failure or ENOENT for a
// transport/parse failure. classify is what actually picks between
// the two Unavailable errnos; Errno just reports what it chose.
func (s Status) Errno() syscall.Errno {
	return s.errno
}

// classify maps an error from the lower layers to the Status the
// propagation policy requires, errno included. A nil error is Success.
func classify(err error) Status {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ferr.BufferTooSmall):
		return TryAgain
	case errors.Is(err, ferr.NotFound):
		return NotFound
	case errors.Is(err, ferr.Config):
		return Status{code: unavailable, errno: syscall.EIO}
	case errors.Is(err, ferr.Transport), errors.Is(err, ferr.Parse):
		return Status{code: unavailable, errno: syscall.ENOENT}
	default:
		return Status{code: unavailable, errno: syscall.EIO}
	}
}
