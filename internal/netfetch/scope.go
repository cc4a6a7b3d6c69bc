package netfetch

import (
	"fmt"
	"net/url"
	"strings"
)

// pattern is one compiled allowlist entry.
type pattern struct {
	scheme   string
	host     string // exact host, or suffix when hostWild
	hostWild bool   // "*." prefix on the host
	path     string // exact path, or prefix when pathWild
	pathWild bool   // "/*" suffix on the path
}

// Scope is a compiled URL allowlist. The zero value allows nothing.
type Scope struct {
	patterns []pattern
}

// ParseScope compiles allowlist patterns of the form
// "https://api.example.com/v1/*". A "*." host prefix matches any
// subdomain; a "/*" path suffix matches any path under the prefix.
func ParseScope(raw []string) (*Scope, error) {
	s := &Scope{}
	for _, entry := range raw {
		p, err := parsePattern(entry)
		if err != nil {
			return nil, err
		}
		s.patterns = append(s.patterns, p)
	}
	return s, nil
}

func parsePattern(entry string) (pattern, error) {
	var p pattern

	rest := entry
	if p.pathWild = strings.HasSuffix(rest, "/*"); p.pathWild {
		rest = strings.TrimSuffix(rest, "/*")
	}

	u, err := url.Parse(rest)
	if err != nil {
		return p, fmt.Errorf("scope pattern %q: %w", entry, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return p, fmt.Errorf("scope pattern %q: scheme must be http or https", entry)
	}
	if u.Host == "" {
		return p, fmt.Errorf("scope pattern %q: missing host", entry)
	}

	p.scheme = u.Scheme
	p.host = strings.ToLower(u.Host)
	if strings.HasPrefix(p.host, "*.") {
		p.hostWild = true
		p.host = strings.TrimPrefix(p.host, "*.")
	}
	p.path = u.Path
	return p, nil
}

// Allows reports whether rawURL falls inside the scope.
func (s *Scope) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, p := range s.patterns {
		if p.scheme != u.Scheme {
			continue
		}
		if p.hostWild {
			if host != p.host && !strings.HasSuffix(host, "."+p.host) {
				continue
			}
		} else if host != p.host {
			continue
		}
		if p.pathWild {
			if u.Path == p.path || strings.HasPrefix(u.Path, p.path+"/") {
				return true
			}
			continue
		}
		if u.Path == p.path {
			return true
		}
	}
	return false
}
