package dburl

// RewriteHost maps a loopback host to the compose service name when running
// containerized in development or test. Staging/production orchestrators
// resolve real service hostnames, so the rewrite is confined to the two
// local environments; applying it there would misroute to the wrong
// instance.
func RewriteHost(environment, host string, containerized bool) string {
	if !containerized {
		return host
	}
	if environment != EnvDevelopment && environment != EnvTest {
		return host
	}
	if host == "localhost" || host == "127.0.0.1" {
		return "postgres"
	}
	return host
}
