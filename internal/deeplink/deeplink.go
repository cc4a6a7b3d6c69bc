// Package deeplink handles custom URL-scheme activation: registering the
// scheme with the OS, validating incoming URIs, and exposing the URLs the
// process was launched with to the frontend.
package deeplink

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/perchhq/perch/internal/host"
)

// Link is one parsed deep-link URI.
type Link struct {
	Raw   string `json:"raw"`
	Host  string `json:"host"`
	Path  string `json:"path"`
	Query string `json:"query"`
}

// Parse validates raw against the configured scheme and splits it into
// its components. Scheme comparison is case-insensitive.
func Parse(scheme, raw string) (Link, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Link{}, fmt.Errorf("deeplink: parse %q: %w", raw, err)
	}
	if !strings.EqualFold(u.Scheme, scheme) {
		return Link{}, fmt.Errorf("deeplink: %q is not a %s:// URI", raw, scheme)
	}
	return Link{
		Raw:   raw,
		Host:  u.Host,
		Path:  u.Path,
		Query: u.RawQuery,
	}, nil
}

// FromArgs scans launch arguments for URIs of the given scheme. Anything
// that doesn't parse as a deep link is skipped.
func FromArgs(scheme string, args []string) []Link {
	var links []Link
	for _, arg := range args {
		if !strings.HasPrefix(strings.ToLower(arg), scheme+"://") {
			continue
		}
		link, err := Parse(scheme, arg)
		if err != nil {
			continue
		}
		links = append(links, link)
	}
	return links
}

// Service exposes the launch deep links to the frontend.
type Service struct {
	links []Link
}

// Current returns the deep links present in this process's launch
// arguments, in argv order.
func (s *Service) Current() []Link {
	return s.links
}

// Integration installs deep-link handling into the builder.
type Integration struct {
	svc *Service
}

// New scans args (the process launch arguments, without argv[0]) for
// scheme URIs and builds the integration around them.
func New(scheme string, args []string) *Integration {
	return &Integration{svc: &Service{links: FromArgs(scheme, args)}}
}

func (i *Integration) Name() string { return "deeplink" }

// Links returns the launch deep links the integration was built with.
func (i *Integration) Links() []Link { return i.svc.links }

func (i *Integration) Attach(b host.Builder) error {
	b.Bind(i.svc)
	return nil
}
