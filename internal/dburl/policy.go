// netra-dburl: database connection URL resolution and diagnostics for Netra
// SPDX-License-Identifier: MIT
//
// Environment security policy: presence requirements and content rules.

package dburl

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationResult carries the acceptance decision plus ordered issues.
type ValidationResult struct {
	OK     bool     `json:"ok"`
	Issues []string `json:"issues,omitempty"`
}

// Presence requirements in staging/production. Order is fixed so the
// missing-variable issue lists names deterministically.
var requiredInStrictEnvs = []string{KeyHost, KeyUser, KeyDatabase, KeyPassword}

// blockedUsers are literals that must never open a database connection;
// ephemeralUserRe additionally blocks per-PR throwaway users.
var blockedUsers = map[string]struct{}{
	"user_pr": {},
	"user-pr": {},
}

var ephemeralUserRe = regexp.MustCompile(`^user[_-]pr[_-][0-9]+$`)

// placeholderPasswords are rejected case-insensitively in staging and
// production.
var placeholderPasswords = []string{
	"password",
	"123456",
	"admin",
	"development_password",
	"changeme",
	"secret",
	"postgres",
	"test",
}

// Validate checks the configuration snapshot against environment policy.
// Presence requirements (staging/production only) are collected into a
// single issue naming every missing key; content rules after that stop at
// the first failure. The asymmetry is load-bearing: callers parse the
// missing-variable list out of the first issue.
func Validate(cfg map[string]string) ValidationResult {
	env := NormalizeEnvironment(cfg)
	strict := env == EnvStaging || env == EnvProduction

	if strict {
		var missing []string
		for _, key := range requiredInStrictEnvs {
			if cfg[key] == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			return fail("missing required database configuration: " + strings.Join(missing, ", "))
		}
	}

	host := cfg[KeyHost]
	if IsCloudSocket(host) {
		if _, _, _, ok := ParseCloudSocketTriple(host); !ok {
			return fail(fmt.Sprintf("cloud sql socket path must be %sPROJECT:REGION:INSTANCE, got %q", cloudSocketPrefix, host))
		}
	}

	user := cfg[KeyUser]
	if _, blocked := blockedUsers[user]; blocked {
		return fail(fmt.Sprintf("database user %q is blocked", user))
	}
	if ephemeralUserRe.MatchString(user) {
		return fail(fmt.Sprintf("database user %q is an ephemeral PR user", user))
	}

	if strict {
		pw := strings.ToLower(cfg[KeyPassword])
		for _, placeholder := range placeholderPasswords {
			if pw == placeholder {
				return fail("placeholder password is not allowed in " + env)
			}
		}
		hostLower := strings.ToLower(host)
		if (hostLower == "localhost" || hostLower == "127.0.0.1") && cfg[KeyAllowLocalhostDB] != "true" {
			return fail(fmt.Sprintf("host %q is not allowed in %s (set %s=true to override)", host, env, KeyAllowLocalhostDB))
		}
	}

	return ValidationResult{OK: true}
}

func fail(issue string) ValidationResult {
	return ValidationResult{Issues: []string{issue}}
}
