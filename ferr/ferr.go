// Copyright 2025 Jacob Repp <jacobrepp@gmail.com>
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

// Package ferr holds the sentinel error taxonomy shared by every
// layer of forgedir, so the service surface can classify a failure
// with errors.Is without importing the package that produced it.
package ferr

import "errors"

var (
	// Config marks a missing or ill-formed configuration value.
	Config = errors.New("configuration error")
	// Transport marks a network, timeout, or oversized-body failure.
	Transport = errors.New("transport error")
	// Parse marks an unexpected upstream JSON shape.
	Parse = errors.New("parse error")
	// NotFound marks a queried entity that does not exist upstream.
	NotFound = errors.New("not found")
	// BufferTooSmall marks a caller buffer insufficient to hold the
	// packed strings; the caller must retry with a larger buffer, and
	// must not advance any cursor in the meantime.
	BufferTooSmall = errors.New("buffer too small")
	// AuthFailed marks a token/user mismatch or an upstream 401.
	AuthFailed = errors.New("authentication failed")
)
