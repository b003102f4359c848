// netra-dburl: database connection URL resolution and diagnostics for Netra
// SPDX-License-Identifier: MIT
//
// Credential-safe rendering of connection URLs and config summaries.

package dburl

import (
	"regexp"
	"strings"
)

const fixedMask = "**********"

var userinfoRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+.-]*://)([^/@?]+)@`)

// Mask produces a credential-safe rendering of a connection URL. The mask
// is format-aware rather than blanket: credentialed URLs keep scheme and
// endpoint, in-memory URLs carry no credentials at all, and anything else
// is masked wholesale.
func Mask(url string) string {
	if url == "" {
		return "NOT SET"
	}
	if strings.Contains(url, "memory") {
		return url
	}
	if m := userinfoRe.FindStringSubmatch(url); m != nil {
		return m[1] + "***" + url[len(m[0])-1:]
	}
	if idx := strings.Index(url, "://"); idx >= 0 {
		return url[:idx+3] + fixedMask
	}
	return fixedMask
}

// Summary is a log-safe description of a configuration snapshot: the
// environment tag, topology classification and presence flags only, never
// raw component values. It needs no further masking.
type Summary struct {
	Environment   string       `json:"environment"`
	Topology      TopologyKind `json:"topology"`
	Containerized bool         `json:"containerized"`
	HostSet       bool         `json:"host_set"`
	PortSet       bool         `json:"port_set"`
	UserSet       bool         `json:"user_set"`
	PasswordSet   bool         `json:"password_set"`
	DatabaseSet   bool         `json:"database_set"`
}

// Describe summarizes the snapshot without exposing any component value.
func Describe(cfg map[string]string) Summary {
	return Summary{
		Environment:   NormalizeEnvironment(cfg),
		Topology:      ClassifyTopology(cfg).Kind,
		Containerized: IsContainerized(cfg),
		HostSet:       cfg[KeyHost] != "",
		PortSet:       cfg[KeyPort] != "",
		UserSet:       cfg[KeyUser] != "",
		PasswordSet:   cfg[KeyPassword] != "",
		DatabaseSet:   cfg[KeyDatabase] != "",
	}
}
