// netra-dburl: database connection URL resolution and diagnostics for Netra
// SPDX-License-Identifier: MIT
//
// Driver-dialect formatting: scheme prefix and TLS parameter spelling.

package dburl

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	dialectSchemeRe = regexp.MustCompile(`^postgres(ql)?\+[A-Za-z0-9_]+://`)
	sslModeParamRe  = regexp.MustCompile(`([?&])sslmode=([^&]*)`)
	sslParamRe      = regexp.MustCompile(`([?&])ssl=([^&]*)`)
)

// Normalize canonicalizes a bare postgres:// scheme to postgresql:// and
// strips TLS parameters from cloud-socket URLs. Unix-socket connections
// reject TLS-negotiation parameters outright on some drivers. Non-URL input
// (no "://") is returned unchanged.
func Normalize(url string) string {
	if !strings.Contains(url, "://") {
		return url
	}
	if strings.HasPrefix(url, "postgres://") {
		url = "postgresql://" + url[len("postgres://"):]
	}
	if isCloudSocketURL(url) {
		url = dropParam(url, sslParamRe)
		url = dropParam(url, sslModeParamRe)
	}
	return url
}

// FormatForDriver rewrites url for the target client-library dialect:
// normalize, reduce any dialect-qualified scheme to bare postgresql://,
// apply the dialect's own prefix, then respell the TLS parameter.
func FormatForDriver(url string, d Dialect) string {
	if !strings.Contains(url, "://") {
		return url
	}
	url = Normalize(url)
	url = dialectSchemeRe.ReplaceAllString(url, "postgresql://")
	if strings.HasPrefix(url, "postgresql://") {
		url = d.SchemePrefix() + "://" + url[len("postgresql://"):]
	}
	if d == DialectAsyncpg {
		return rewriteSSLModeForAsync(url)
	}
	return sslParamRe.ReplaceAllString(url, "${1}sslmode=${2}")
}

// FormatForDirectUse strips every dialect qualifier so the URL can be handed
// straight to a low-level driver connect call, bypassing the ORM. Query
// parameters are left untouched.
func FormatForDirectUse(url string) string {
	if !strings.Contains(url, "://") {
		return url
	}
	url = dialectSchemeRe.ReplaceAllString(url, "postgresql://")
	if strings.HasPrefix(url, "postgres://") {
		url = "postgresql://" + url[len("postgres://"):]
	}
	return url
}

// ValidateForDriver checks that url is shaped for the dialect: the scheme
// prefix must match exactly and the TLS parameter spelling must be one the
// client library accepts. Mismatches are reported, never auto-corrected.
func ValidateForDriver(url string, d Dialect) ValidationResult {
	var issues []string
	prefix := d.SchemePrefix() + "://"
	if !strings.HasPrefix(url, prefix) {
		issues = append(issues, fmt.Sprintf("url scheme does not match %s: want prefix %s", d, prefix))
	}
	hasSSLMode := sslModeParamRe.MatchString(url)
	hasSSL := sslParamRe.MatchString(url)
	if d == DialectAsyncpg {
		if hasSSLMode {
			issues = append(issues, "asyncpg rejects sslmode=; use ssl=")
		}
	} else if hasSSL && !hasSSLMode {
		issues = append(issues, fmt.Sprintf("%s expects sslmode=, not ssl=", d))
	}
	return ValidationResult{OK: len(issues) == 0, Issues: issues}
}

// rewriteSSLModeForAsync maps sslmode=require|disable to ssl=require|disable
// and drops every other sslmode value: asyncpg has no general sslmode
// vocabulary.
func rewriteSSLModeForAsync(url string) string {
	m := sslModeParamRe.FindStringSubmatch(url)
	if m == nil {
		return url
	}
	switch m[2] {
	case "require", "disable":
		return sslModeParamRe.ReplaceAllString(url, "${1}ssl=${2}")
	default:
		return dropParam(url, sslModeParamRe)
	}
}

func isCloudSocketURL(url string) bool {
	return strings.Contains(url, "host="+cloudSocketPrefix)
}

// dropParam removes every occurrence of a query parameter, repairing the
// '?' separator when the dropped parameter introduced the query string.
func dropParam(url string, re *regexp.Regexp) string {
	for {
		loc := re.FindStringSubmatchIndex(url)
		if loc == nil {
			return url
		}
		sep := url[loc[2]:loc[3]]
		rest := url[loc[1]:]
		if sep == "?" && strings.HasPrefix(rest, "&") {
			rest = "?" + rest[1:]
		}
		url = url[:loc[0]] + rest
	}
}
