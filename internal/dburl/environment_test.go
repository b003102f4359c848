package dburl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeEnvironment(t *testing.T) {
	if env := NormalizeEnvironment(map[string]string{}); env != EnvDevelopment {
		t.Fatalf("absent key: expected development, got %q", env)
	}
	if env := NormalizeEnvironment(map[string]string{KeyEnvironment: "PRODUCTION"}); env != EnvProduction {
		t.Fatalf("expected production, got %q", env)
	}
	// explicit empty is preserved, not coerced to the default
	if env := NormalizeEnvironment(map[string]string{KeyEnvironment: ""}); env != "" {
		t.Fatalf("explicit empty: expected empty, got %q", env)
	}
}

func TestIsContainerizedFlags(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	for _, key := range []string{KeyRunningInDocker, KeyDockerContainer, KeyIsContainer} {
		if !isContainerizedAt(map[string]string{key: "true"}, missing, missing) {
			t.Fatalf("flag %s=true should detect container", key)
		}
	}
	// flag match is case-sensitive
	if isContainerizedAt(map[string]string{KeyRunningInDocker: "True"}, missing, missing) {
		t.Fatalf("flag value True must not match")
	}
	if isContainerizedAt(map[string]string{}, missing, missing) {
		t.Fatalf("no flags, no files: expected false")
	}
}

func TestIsContainerizedMarkerFile(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, ".dockerenv")
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}
	if !isContainerizedAt(map[string]string{}, marker, filepath.Join(dir, "nope")) {
		t.Fatalf("marker file should detect container")
	}
}

func TestIsContainerizedCgroup(t *testing.T) {
	dir := t.TempDir()
	cgroup := filepath.Join(dir, "cgroup")
	if err := os.WriteFile(cgroup, []byte("12:pids:/Docker/abc123\n"), 0o644); err != nil {
		t.Fatalf("write cgroup: %v", err)
	}
	if !isContainerizedAt(map[string]string{}, filepath.Join(dir, "nope"), cgroup) {
		t.Fatalf("cgroup mentioning docker should detect container")
	}
	if err := os.WriteFile(cgroup, []byte("12:pids:/init.scope\n"), 0o644); err != nil {
		t.Fatalf("write cgroup: %v", err)
	}
	if isContainerizedAt(map[string]string{}, filepath.Join(dir, "nope"), cgroup) {
		t.Fatalf("cgroup without docker should not detect container")
	}
}
