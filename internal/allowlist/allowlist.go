// Package allowlist decides which hostnames the proxy may fetch.
package allowlist

// Allowlist is an immutable set of permitted hostnames, built once at
// startup and injected into the components that need it.
type Allowlist struct {
	hosts map[string]bool
}

// New builds an Allowlist from the configured hostnames. Blank entries
// are dropped so a stray trailing comma in ALLOWED_HOSTS does not open
// the list up.
func New(hosts []string) *Allowlist {
	set := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		if h != "" {
			set[h] = true
		}
	}
	return &Allowlist{hosts: set}
}

// Allowed reports whether host may be fetched. An empty allowlist is
// permissive — the zero-config development fallback, not a production
// default. Matching is exact and case-sensitive; no wildcards, no
// subdomain matching.
func (a *Allowlist) Allowed(host string) bool {
	if len(a.hosts) == 0 {
		return true
	}
	return a.hosts[host]
}

// Permissive reports whether the allowlist is empty and therefore
// allows every host.
func (a *Allowlist) Permissive() bool {
	return len(a.hosts) == 0
}

// Len returns the number of configured hostnames.
func (a *Allowlist) Len() int {
	return len(a.hosts)
}
