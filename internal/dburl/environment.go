// netra-dburl: database connection URL resolution and diagnostics for Netra
// SPDX-License-Identifier: MIT
//
// Environment tag normalization and container detection.

package dburl

import (
	"os"
	"strings"
)

// Configuration keys read by the engine. Keys are exact and case-sensitive;
// the engine never reads a pre-assembled connection-string key.
const (
	KeyEnvironment = "ENVIRONMENT"

	KeyHost     = "POSTGRES_HOST"
	KeyPort     = "POSTGRES_PORT"
	KeyUser     = "POSTGRES_USER"
	KeyPassword = "POSTGRES_PASSWORD"
	KeyDatabase = "POSTGRES_DB"

	KeyRunningInDocker = "RUNNING_IN_DOCKER"
	KeyDockerContainer = "DOCKER_CONTAINER"
	KeyIsContainer     = "IS_CONTAINER"

	KeyAllowLocalhostDB = "ALLOW_LOCALHOST_DB"
)

// Known environment tags. The set is open: any lower-cased value is
// accepted, but only these four have dedicated policy branches.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

const (
	dockerMarkerPath = "/.dockerenv"
	cgroupPath       = "/proc/1/cgroup"
)

// NormalizeEnvironment lower-cases the ENVIRONMENT value. An absent key
// defaults to development; an explicitly empty value stays empty.
func NormalizeEnvironment(cfg map[string]string) string {
	v, ok := cfg[KeyEnvironment]
	if !ok {
		return EnvDevelopment
	}
	return strings.ToLower(v)
}

// IsContainerized reports whether the process appears to run inside a
// container: a detection flag equal to the exact literal "true", the Docker
// marker file, or a process cgroup file mentioning docker. File probes treat
// any I/O error as "not containerized" and never block.
func IsContainerized(cfg map[string]string) bool {
	return isContainerizedAt(cfg, dockerMarkerPath, cgroupPath)
}

func isContainerizedAt(cfg map[string]string, markerPath, cgroupFile string) bool {
	for _, key := range []string{KeyRunningInDocker, KeyDockerContainer, KeyIsContainer} {
		if cfg[key] == "true" {
			return true
		}
	}
	if _, err := os.Stat(markerPath); err == nil {
		return true
	}
	if b, err := os.ReadFile(cgroupFile); err == nil {
		if strings.Contains(strings.ToLower(string(b)), "docker") {
			return true
		}
	}
	return false
}
