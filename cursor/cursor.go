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

// Package cursor implements the re-entrant enumeration state machine
// shared by the account, shadow, and group kinds: Closed, or
// Open(snapshot, index). A snapshot is published by Open and retained
// until Close, regardless of how many Next calls have consumed it.
package cursor

import "sync"

// Cursor holds one kind's enumeration state, guarded by its own lock.
// The zero value is a closed cursor, ready to use.
type Cursor[T any] struct {
	mu       sync.Mutex
	snapshot []T
	index    int
	isOpen   bool
}

// Open transitions Closed -> Open(fetch(), 0). If fetch fails, the
// cursor remains Closed and the error is returned for the caller to
// translate into Unavailable. Opening an already-open cursor replaces
// its snapshot, matching "a concurrent open ... may re-fetch the same
// upstream data" -- callers are expected to pair every Open with a
// Close before reopening in the normal enumeration protocol.
func (c *Cursor[T]) Open(fetch func() ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot, err := fetch()
	if err != nil {
		return err
	}
	c.snapshot = snapshot
	c.index = 0
	c.isOpen = true
	return nil
}

// Next returns the element at the current index and advances it, or
// reports ok=false if the cursor is closed or exhausted. The snapshot
// is left intact on exhaustion, so a subsequent Close still has
// something to free and a subsequent Next (without an intervening
// Open) keeps returning ok=false rather than panicking.
func (c *Cursor[T]) Next() (value T, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok = c.PeekLocked()
	if ok {
		c.AdvanceLocked()
	}
	return value, ok
}

// PeekLocked returns the current element without advancing past it.
// The caller must hold Lock -- this lets a packing caller try to pack
// the current element and only call AdvanceLocked if packing
// succeeds, so a TryAgain/BufferTooSmall outcome never advances the
// cursor.
func (c *Cursor[T]) PeekLocked() (value T, ok bool) {
	if !c.isOpen || c.index >= len(c.snapshot) {
		var zero T
		return zero, false
	}
	return c.snapshot[c.index], true
}

// AdvanceLocked moves past the element last returned by PeekLocked.
// The caller must hold Lock and must only call this once the element
// has actually been consumed successfully.
func (c *Cursor[T]) AdvanceLocked() {
	c.index++
}

// Close transitions to Closed and frees the snapshot. Closing an
// already-closed cursor is a no-op success.
func (c *Cursor[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = nil
	c.index = 0
	c.isOpen = false
}

// IsOpen reports whether the cursor currently holds a snapshot.
func (c *Cursor[T]) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

// Lock and Unlock let a caller serialize an ad-hoc lookup (by name or
// numeric id) against this kind's Open/Next/Close, without the lookup
// itself changing cursor state. This is how lookup-by-key calls honor
// the same per-kind mutual exclusion as enumeration, per the
// process-wide-lock concurrency model.
func (c *Cursor[T]) Lock()   { c.mu.Lock() }
func (c *Cursor[T]) Unlock() { c.mu.Unlock() }
