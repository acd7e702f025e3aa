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

// Command forgedir-cli is a thin dispatcher over the forgedir service
// surface: it loads configuration, builds a directory client, and
// prints the result the way octopass's own CLI prints nss entries
// (colon-separated, one line per record). It contains no parsing,
// filtering, or packing logic of its own.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/sirupsen/logrus"

	"github.com/jrepp/forgedir"
	"github.com/jrepp/forgedir/config"
	"github.com/jrepp/forgedir/directory"
	"github.com/jrepp/forgedir/httpcache"
)

const (
	exitSuccess = 0
	exitArgs    = 1
	exitHelp    = 2
)

// entryBufSize is the scratch buffer the CLI hands to the Get*EntR
// calls. It is not a real nss caller's buffer, so it is sized
// generously rather than tuned.
const entryBufSize = 4096

const defaultConfigPath = "/etc/forgedir.conf"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr *os.File) int {
	app := kingpin.New("forgedir-cli", "Directory bridge for a code-forge organization or repository.")
	app.Version("forgedir-cli 1.0.0")
	app.Terminate(nil)
	app.HelpFlag.Short('h')
	app.VersionFlag.Short('v')

	// -h/--help and -v/--version exit 2 per the CLI's own surface
	// contract, which differs from kingpin's default of exiting 0 --
	// decide the outcome here rather than trust kingpin's exit path.
	if len(args) == 0 {
		app.Usage(args)
		return exitHelp
	}
	switch args[0] {
	case "-h", "--help":
		app.Usage(args)
		return exitHelp
	case "-v", "--version":
		fmt.Fprintln(stdout, "forgedir-cli 1.0.0")
		return exitHelp
	}

	configPath := app.Flag("config", "Path to the forgedir configuration file").
		Default(defaultConfigPath).String()

	passwdCmd := app.Command("passwd", "Display passwd entries as the nss module would")
	passwdKey := passwdCmd.Arg("key", "Login name or numeric uid; omit to list all entries").String()

	shadowCmd := app.Command("shadow", "Display shadow entries as the nss module would")
	shadowKey := shadowCmd.Arg("key", "Login name; omit to list all entries").String()

	groupCmd := app.Command("group", "Display the synthesized group entry")
	groupKey := groupCmd.Arg("key", "Group name or numeric gid; omit to print it unconditionally").String()

	pamCmd := app.Command("pam", "Authenticate a user against a token read from stdin")
	pamUser := pamCmd.Arg("user", "User to authenticate; defaults to $PAM_USER").String()

	keysCmd := app.Command("keys", "Print a user's public keys (octopass's bare-argument form)")
	keysUser := keysCmd.Arg("user", "User whose keys to print").Required().String()

	selected, err := app.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitArgs
	}

	log := logrus.New()
	log.SetOutput(stderr)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "Error: failed to load config:", err)
		return exitArgs
	}

	cache := httpcache.New("", cfg.Token, cfg.CacheTTL, os.Geteuid())
	dir, err := directory.New(cfg, cache)
	if err != nil {
		fmt.Fprintln(stderr, "Error: failed to build directory client:", err)
		return exitArgs
	}
	svc := forgedir.NewService(cfg, dir, log)
	ctx := context.Background()

	switch selected {
	case passwdCmd.FullCommand():
		return runPasswd(ctx, svc, *passwdKey, stdout, stderr)
	case shadowCmd.FullCommand():
		return runShadow(ctx, svc, *shadowKey, stdout, stderr)
	case groupCmd.FullCommand():
		return runGroup(ctx, svc, *groupKey, stdout, stderr)
	case pamCmd.FullCommand():
		return runPAM(ctx, svc, *pamUser, stdin, stderr)
	case keysCmd.FullCommand():
		return runKeys(ctx, svc, *keysUser, stdout, stderr)
	default:
		app.Usage(args)
		return exitHelp
	}
}

func runPasswd(ctx context.Context, svc *forgedir.Service, key string, stdout, stderr *os.File) int {
	if key == "" {
		if status := svc.SetPasswdEnt(ctx, false); status != forgedir.Success {
			return reportStatus(status, stderr)
		}
		defer svc.EndPasswdEnt()

		for {
			acct, status := svc.GetPasswdEntR(make([]byte, entryBufSize))
			if status == forgedir.NotFound {
				break
			}
			if status != forgedir.Success {
				return reportStatus(status, stderr)
			}
			fmt.Fprintln(stdout, showAccount(acct))
		}
		return exitSuccess
	}

	buf := make([]byte, entryBufSize)
	if uid, convErr := strconv.ParseInt(key, 10, 64); convErr == nil && uid > 0 {
		acct, status := svc.GetPasswdIdR(ctx, uid, buf)
		if status != forgedir.Success {
			return reportStatus(status, stderr)
		}
		fmt.Fprintln(stdout, showAccount(acct))
		return exitSuccess
	}
	acct, status := svc.GetPasswdNamR(ctx, key, buf)
	if status != forgedir.Success {
		return reportStatus(status, stderr)
	}
	fmt.Fprintln(stdout, showAccount(acct))
	return exitSuccess
}

func runShadow(ctx context.Context, svc *forgedir.Service, key string, stdout, stderr *os.File) int {
	if key == "" {
		if status := svc.SetShadowEnt(ctx, false); status != forgedir.Success {
			return reportStatus(status, stderr)
		}
		defer svc.EndShadowEnt()

		for {
			sh, status := svc.GetShadowEntR(make([]byte, entryBufSize))
			if status == forgedir.NotFound {
				break
			}
			if status != forgedir.Success {
				return reportStatus(status, stderr)
			}
			fmt.Fprintln(stdout, showShadow(sh))
		}
		return exitSuccess
	}

	sh, status := svc.GetShadowNamR(ctx, key, make([]byte, entryBufSize))
	if status != forgedir.Success {
		return reportStatus(status, stderr)
	}
	fmt.Fprintln(stdout, showShadow(sh))
	return exitSuccess
}

func runGroup(ctx context.Context, svc *forgedir.Service, key string, stdout, stderr *os.File) int {
	if key == "" {
		if status := svc.SetGroupEnt(ctx, false); status != forgedir.Success {
			return reportStatus(status, stderr)
		}
		defer svc.EndGroupEnt()

		for {
			g, status := svc.GetGroupEntR(make([]byte, entryBufSize))
			if status == forgedir.NotFound {
				break
			}
			if status != forgedir.Success {
				return reportStatus(status, stderr)
			}
			fmt.Fprintln(stdout, showGroup(g))
		}
		return exitSuccess
	}

	buf := make([]byte, entryBufSize)
	if gid, convErr := strconv.Atoi(key); convErr == nil {
		g, status := svc.GetGroupIdR(ctx, gid, buf)
		if status != forgedir.Success {
			return reportStatus(status, stderr)
		}
		fmt.Fprintln(stdout, showGroup(g))
		return exitSuccess
	}
	g, status := svc.GetGroupNamR(ctx, key, buf)
	if status != forgedir.Success {
		return reportStatus(status, stderr)
	}
	fmt.Fprintln(stdout, showGroup(g))
	return exitSuccess
}

func runPAM(ctx context.Context, svc *forgedir.Service, user string, stdin, stderr *os.File) int {
	if user == "" {
		user = os.Getenv("PAM_USER")
	}
	if user == "" {
		fmt.Fprintln(stderr, "Error: user is required")
		return exitArgs
	}

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		fmt.Fprintln(stderr, "Error: failed to read token from stdin")
		return exitArgs
	}
	token := strings.TrimRight(scanner.Text(), "\r\n")

	if err := svc.Authenticate(ctx, user, token); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitArgs
	}
	return exitSuccess
}

func runKeys(ctx context.Context, svc *forgedir.Service, user string, stdout, stderr *os.File) int {
	keys, status := svc.UserKeysFor(ctx, user)
	if status != forgedir.Success {
		return reportStatus(status, stderr)
	}
	// keys is already newline-terminated per key, including the last.
	fmt.Fprint(stdout, keys)
	return exitSuccess
}

// reportStatus mirrors a non-success Status to stderr using its
// associated errno. NotFound, including from a keyed lookup, is not
// treated as an error: nothing is written and the exit code is 0.
func reportStatus(status forgedir.Status, stderr *os.File) int {
	if status == forgedir.NotFound {
		return exitSuccess
	}
	fmt.Fprintf(stderr, "Error: %s (errno %s)\n", status, status.Errno())
	return exitArgs
}
