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

// Package redact masks secrets before they reach a log line.
package redact

const marker = " ************ REDACTED ************"

// Token returns tok with everything past its first 5 characters
// replaced by the redaction marker. Tokens of 5 characters or fewer
// are masked in full; the function never returns a substring long
// enough to reconstruct the original value.
func Token(tok string) string {
	n := 5
	if len(tok) <= n {
		return marker
	}
	return tok[:n] + marker
}

// TokenPrefix returns the first 6 characters of tok, used to
// namespace on-disk cache entries per credential. Shorter tokens
// return the whole value.
func TokenPrefix(tok string) string {
	n := 6
	if len(tok) < n {
		n = len(tok)
	}
	return tok[:n]
}
