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

// Package entry packs directory records into a caller-supplied,
// fixed-size buffer, the way the host name-service contract requires:
// every string referenced by a packed record must live inside that
// buffer, for exactly as long as the caller retains it.
package entry

import (
	"unsafe"

	"github.com/jrepp/forgedir/ferr"
)

// Buffer is a bump allocator over a caller-owned byte slice. It never
// grows, never copies a string back out to the heap, and never hides
// the caller's buffer behind an owning string type: every string
// PutString returns aliases the same backing array the caller
// supplied, for the buffer's entire lifetime.
type Buffer struct {
	buf  []byte
	next int
}

// NewBuffer wraps b for packing, zeroing it first so a reused buffer
// never leaks a previous record's bytes past the current one.
func NewBuffer(b []byte) *Buffer {
	clear(b)
	return &Buffer{buf: b}
}

// Len reports the capacity of the wrapped buffer.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// PutString copies s into the buffer's next free bytes, NUL-terminated,
// and returns a string that aliases those bytes directly -- not a
// copy. If s plus its terminator does not fit, it returns
// ferr.BufferTooSmall and leaves the buffer's write position
// unchanged, so a failed pack can be retried from scratch with a
// larger buffer without any partial state surviving.
func (b *Buffer) PutString(s string) (string, error) {
	need := len(s) + 1
	if b.next+need > len(b.buf) {
		return "", ferr.BufferTooSmall
	}
	start := b.next
	copy(b.buf[start:], s)
	b.buf[start+len(s)] = 0
	b.next += need
	if len(s) == 0 {
		return "", nil
	}
	return unsafe.String(&b.buf[start], len(s)), nil
}
