package dburl

import "testing"

func TestRewriteHost(t *testing.T) {
	cases := []struct {
		env           string
		host          string
		containerized bool
		want          string
	}{
		{EnvDevelopment, "localhost", true, "postgres"},
		{EnvTest, "127.0.0.1", true, "postgres"},
		{EnvDevelopment, "localhost", false, "localhost"},
		{EnvDevelopment, "db.internal", true, "db.internal"},
		// never rewritten outside development/test
		{EnvStaging, "localhost", true, "localhost"},
		{EnvProduction, "127.0.0.1", true, "127.0.0.1"},
	}
	for _, c := range cases {
		if got := RewriteHost(c.env, c.host, c.containerized); got != c.want {
			t.Fatalf("RewriteHost(%q, %q, %v) = %q, want %q", c.env, c.host, c.containerized, got, c.want)
		}
	}
}
