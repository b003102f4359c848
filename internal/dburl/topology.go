// netra-dburl: database connection URL resolution and diagnostics for Netra
// SPDX-License-Identifier: MIT
//
// Topology classification: cloud-managed socket proxy vs TCP endpoint.

package dburl

import "strings"

const cloudSocketPrefix = "/cloudsql/"

// TopologyKind tags how the database is reached.
type TopologyKind string

const (
	TopologyCloudSocket TopologyKind = "cloud_socket"
	TopologyTCP         TopologyKind = "tcp"
	TopologyNone        TopologyKind = "none"
)

// Topology describes the resolved network path to the database.
type Topology struct {
	Kind       TopologyKind `json:"kind"`
	SocketPath string       `json:"socket_path,omitempty"`
	Host       string       `json:"host,omitempty"`
	Port       string       `json:"port,omitempty"`
}

// IsCloudSocket reports whether host addresses a cloud-managed Unix-socket
// proxy rather than a TCP endpoint.
func IsCloudSocket(host string) bool {
	return host != "" && strings.Contains(host, cloudSocketPrefix)
}

// HasTCPConfig reports whether host names a plain TCP endpoint.
func HasTCPConfig(host string) bool {
	return host != "" && !IsCloudSocket(host)
}

// ClassifyTopology resolves the topology for a configuration snapshot.
func ClassifyTopology(cfg map[string]string) Topology {
	host := cfg[KeyHost]
	switch {
	case IsCloudSocket(host):
		return Topology{Kind: TopologyCloudSocket, SocketPath: host}
	case HasTCPConfig(host):
		port := cfg[KeyPort]
		if port == "" {
			port = defaultPort
		}
		return Topology{Kind: TopologyTCP, Host: host, Port: port}
	default:
		return Topology{Kind: TopologyNone}
	}
}

// ParseCloudSocketTriple splits a /cloudsql/ socket path into its
// project, region and instance parts. Used by validation only; all three
// parts must be non-empty.
func ParseCloudSocketTriple(host string) (project, region, instance string, ok bool) {
	idx := strings.Index(host, cloudSocketPrefix)
	if idx < 0 {
		return "", "", "", false
	}
	rest := host[idx+len(cloudSocketPrefix):]
	parts := strings.Split(rest, ":")
	if len(parts) != 3 {
		return "", "", "", false
	}
	for _, p := range parts {
		if p == "" {
			return "", "", "", false
		}
	}
	return parts[0], parts[1], parts[2], true
}
