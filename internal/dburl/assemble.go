// netra-dburl: database connection URL resolution and diagnostics for Netra
// SPDX-License-Identifier: MIT
//
// URL assembly: cloud-socket and TCP strategies over raw config components.

package dburl

import "strings"

const (
	defaultPort         = "5432"
	defaultUser         = "postgres"
	defaultDevPassword  = "postgres"
	defaultDevDatabase  = "netra_dev"
	defaultTestDatabase = "netra_test"
	defaultDatabase     = "netra"
)

// Components are the raw connection pieces taken verbatim from the
// configuration map. Empty string means absent.
type Components struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// ComponentsFrom extracts connection components from a config snapshot.
func ComponentsFrom(cfg map[string]string) Components {
	return Components{
		Host:     cfg[KeyHost],
		Port:     cfg[KeyPort],
		User:     cfg[KeyUser],
		Password: cfg[KeyPassword],
		Database: cfg[KeyDatabase],
	}
}

func defaultDatabaseFor(environment string) string {
	switch environment {
	case EnvDevelopment:
		return defaultDevDatabase
	case EnvTest:
		return defaultTestDatabase
	default:
		return defaultDatabase
	}
}

// Resolve builds the connection URL for the configuration snapshot.
// forSync selects the synchronous driver scheme instead of the async one.
// The boolean is false when no URL can be resolved: outside development and
// test a missing host means there is nothing to connect to.
func Resolve(cfg map[string]string, forSync bool) (string, bool) {
	return resolve(cfg, dialectFor(forSync), IsContainerized(cfg))
}

// ResolveForDialect resolves with an explicit target dialect.
func ResolveForDialect(cfg map[string]string, d Dialect) (string, bool) {
	return resolve(cfg, d, IsContainerized(cfg))
}

func resolve(cfg map[string]string, d Dialect, containerized bool) (string, bool) {
	env := NormalizeEnvironment(cfg)
	c := ComponentsFrom(cfg)
	wantSSL := env == EnvStaging || env == EnvProduction

	switch {
	case IsCloudSocket(c.Host):
		return assembleCloudSocket(c, env, d), true
	case HasTCPConfig(c.Host):
		return assembleTCP(c, env, d, containerized, wantSSL), true
	case env == EnvDevelopment || env == EnvTest:
		// Fully-defaulted local URL. Only these two environments get one.
		c.Host = "localhost"
		if c.User == "" {
			c.User = defaultUser
		}
		if c.Password == "" {
			c.Password = defaultDevPassword
		}
		return assembleTCP(c, env, d, containerized, false), true
	default:
		return "", false
	}
}

// assembleCloudSocket builds {scheme}://user[:pass]@/{db}?host={socketPath}.
// There is no host:port before the '@'; the socket is addressed purely
// through the host= query parameter, and the path itself is not escaped.
func assembleCloudSocket(c Components, environment string, d Dialect) string {
	user := c.User
	if user == "" {
		user = defaultUser
	}
	db := c.Database
	if db == "" {
		db = defaultDatabaseFor(environment)
	}
	var b strings.Builder
	b.WriteString(d.SchemePrefix())
	b.WriteString("://")
	b.WriteString(escapeComponent(user))
	if c.Password != "" {
		b.WriteByte(':')
		b.WriteString(escapeComponent(c.Password))
	}
	b.WriteString("@/")
	b.WriteString(db)
	b.WriteString("?host=")
	b.WriteString(c.Host)
	return b.String()
}

func assembleTCP(c Components, environment string, d Dialect, containerized, wantSSL bool) string {
	host := RewriteHost(environment, c.Host, containerized)
	port := c.Port
	if port == "" {
		port = defaultPort
	}
	user := c.User
	if user == "" {
		user = defaultUser
	}
	db := c.Database
	if db == "" {
		db = defaultDatabaseFor(environment)
	}
	var b strings.Builder
	b.WriteString(d.SchemePrefix())
	b.WriteString("://")
	b.WriteString(escapeComponent(user))
	if c.Password != "" {
		b.WriteByte(':')
		b.WriteString(escapeComponent(c.Password))
	}
	b.WriteByte('@')
	b.WriteString(host)
	b.WriteByte(':')
	b.WriteString(port)
	b.WriteByte('/')
	b.WriteString(db)
	if wantSSL {
		if strings.Contains(b.String(), "?") {
			b.WriteString("&sslmode=require")
		} else {
			b.WriteString("?sslmode=require")
		}
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

// escapeComponent percent-encodes userinfo against the strict unreserved
// set (ALPHA / DIGIT / "-" / "." / "_" / "~"). url.QueryEscape is not usable
// here: it spells space as '+' and leaves characters that break userinfo
// parsing.
func escapeComponent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if isUnreserved(ch) {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[ch>>4])
		b.WriteByte(upperhex[ch&0xF])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}
