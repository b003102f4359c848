// netra-dburl: database connection URL resolution and diagnostics for Netra
// SPDX-License-Identifier: MIT
//
// Client-library dialect table: URL scheme prefix and TLS parameter spelling.

package dburl

import "strings"

// Dialect identifies the URL convention a database client library expects.
type Dialect string

const (
	DialectAsyncpg  Dialect = "asyncpg"
	DialectPsycopg2 Dialect = "psycopg2"
	DialectPsycopg3 Dialect = "psycopg3"
	DialectBase     Dialect = "base"
)

type dialectSpec struct {
	schemePrefix    string // scheme without "://"
	tlsParam        string
	supportsSSLMode bool
}

// spec is exhaustive over the closed dialect set; unknown values fall back
// to the base dialect.
func (d Dialect) spec() dialectSpec {
	switch d {
	case DialectAsyncpg:
		return dialectSpec{schemePrefix: "postgresql+asyncpg", tlsParam: "ssl", supportsSSLMode: false}
	case DialectPsycopg2:
		return dialectSpec{schemePrefix: "postgresql", tlsParam: "sslmode", supportsSSLMode: true}
	case DialectPsycopg3:
		return dialectSpec{schemePrefix: "postgresql+psycopg", tlsParam: "sslmode", supportsSSLMode: true}
	default:
		return dialectSpec{schemePrefix: "postgresql", tlsParam: "sslmode", supportsSSLMode: true}
	}
}

// SchemePrefix returns the URL scheme for the dialect, without "://".
func (d Dialect) SchemePrefix() string { return d.spec().schemePrefix }

// TLSParam returns the TLS query parameter name the dialect understands.
func (d Dialect) TLSParam() string { return d.spec().tlsParam }

// ParseDialect maps a client-library name to its dialect. The empty string
// means the base dialect.
func ParseDialect(s string) (Dialect, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "base":
		return DialectBase, true
	case "asyncpg":
		return DialectAsyncpg, true
	case "psycopg2":
		return DialectPsycopg2, true
	case "psycopg", "psycopg3":
		return DialectPsycopg3, true
	default:
		return DialectBase, false
	}
}

func dialectFor(forSync bool) Dialect {
	if forSync {
		return DialectPsycopg2
	}
	return DialectAsyncpg
}
