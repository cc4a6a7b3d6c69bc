// Package opener lets the frontend open external links in the system
// browser. Only http, https and mailto URLs are allowed so a compromised
// page cannot launch arbitrary local resources.
package opener

import (
	"fmt"
	"net/url"

	"github.com/pkg/browser"

	"github.com/perchhq/perch/internal/host"
)

// allowedSchemes lists the URL schemes handed to the OS. Everything else
// (file, javascript, custom schemes) is rejected.
var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// launch is swapped out in tests.
var launch = browser.OpenURL

// Service is the bound open-external-link capability.
type Service struct{}

// Open validates rawURL and hands it to the system browser.
func (s *Service) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("opener: parse %q: %w", rawURL, err)
	}
	if !allowedSchemes[u.Scheme] {
		return fmt.Errorf("opener: scheme %q not allowed", u.Scheme)
	}
	if err := launch(rawURL); err != nil {
		return fmt.Errorf("opener: %w", err)
	}
	return nil
}

// Integration installs the opener service into the builder.
type Integration struct {
	svc *Service
}

func New() *Integration {
	return &Integration{svc: &Service{}}
}

func (i *Integration) Name() string { return "opener" }

func (i *Integration) Attach(b host.Builder) error {
	b.Bind(i.svc)
	return nil
}
