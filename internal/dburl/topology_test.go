package dburl

import "testing"

func TestIsCloudSocket(t *testing.T) {
	if !IsCloudSocket("/cloudsql/proj:region:inst") {
		t.Fatalf("expected cloud socket")
	}
	if IsCloudSocket("db.example.com") {
		t.Fatalf("tcp host is not a cloud socket")
	}
	if IsCloudSocket("") {
		t.Fatalf("empty host is not a cloud socket")
	}
}

func TestHasTCPConfig(t *testing.T) {
	if !HasTCPConfig("db.example.com") {
		t.Fatalf("expected tcp config")
	}
	if HasTCPConfig("/cloudsql/proj:region:inst") {
		t.Fatalf("cloud socket is not tcp")
	}
	if HasTCPConfig("") {
		t.Fatalf("empty host is not tcp")
	}
}

func TestParseCloudSocketTriple(t *testing.T) {
	p, r, i, ok := ParseCloudSocketTriple("/cloudsql/proj:region:inst")
	if !ok || p != "proj" || r != "region" || i != "inst" {
		t.Fatalf("expected proj/region/inst, got %q %q %q ok=%v", p, r, i, ok)
	}
	for _, bad := range []string{
		"/cloudsql/proj:region",
		"/cloudsql/proj:region:inst:extra",
		"/cloudsql/proj::inst",
		"db.example.com",
	} {
		if _, _, _, ok := ParseCloudSocketTriple(bad); ok {
			t.Fatalf("expected parse failure for %q", bad)
		}
	}
}

func TestClassifyTopology(t *testing.T) {
	top := ClassifyTopology(map[string]string{KeyHost: "/cloudsql/p:r:i"})
	if top.Kind != TopologyCloudSocket || top.SocketPath != "/cloudsql/p:r:i" {
		t.Fatalf("unexpected topology %+v", top)
	}
	top = ClassifyTopology(map[string]string{KeyHost: "db", KeyPort: "5433"})
	if top.Kind != TopologyTCP || top.Host != "db" || top.Port != "5433" {
		t.Fatalf("unexpected topology %+v", top)
	}
	top = ClassifyTopology(map[string]string{KeyHost: "db"})
	if top.Port != "5432" {
		t.Fatalf("expected default port, got %+v", top)
	}
	if top := ClassifyTopology(map[string]string{}); top.Kind != TopologyNone {
		t.Fatalf("expected none topology, got %+v", top)
	}
}
