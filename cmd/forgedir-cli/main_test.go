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

package main

import (
	"os"
	"testing"
)

func TestRun_NoArgsPrintsHelp(t *testing.T) {
	if got := run(nil, os.Stdin, os.Stdout, os.Stderr); got != exitHelp {
		t.Fatalf("run(nil) = %d, want %d", got, exitHelp)
	}
}

func TestRun_HelpFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"short", []string{"-h"}},
		{"long", []string{"--help"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args, os.Stdin, os.Stdout, os.Stderr); got != exitHelp {
				t.Fatalf("run(%v) = %d, want %d", tt.args, got, exitHelp)
			}
		})
	}
}

func TestRun_VersionFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"short", []string{"-v"}},
		{"long", []string{"--version"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args, os.Stdin, os.Stdout, os.Stderr); got != exitHelp {
				t.Fatalf("run(%v) = %d, want %d", tt.args, got, exitHelp)
			}
		})
	}
}

func TestRun_UnknownCommandIsArgumentError(t *testing.T) {
	if got := run([]string{"bogus"}, os.Stdin, os.Stdout, os.Stderr); got != exitArgs {
		t.Fatalf("run([bogus]) = %d, want %d", got, exitArgs)
	}
}

func TestRun_KeysRequiresUser(t *testing.T) {
	if got := run([]string{"keys"}, os.Stdin, os.Stdout, os.Stderr); got != exitArgs {
		t.Fatalf("run([keys]) = %d, want %d", got, exitArgs)
	}
}
