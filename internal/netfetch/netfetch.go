// Package netfetch gives the frontend a scoped outbound-HTTP capability.
// Requests are matched against a URL allowlist before any connection is
// made; everything outside the scope is rejected.
package netfetch

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/perchhq/perch/internal/host"
)

// client is a shared HTTP client with a 30-second timeout to avoid
// indefinite hangs on unresponsive servers.
var client = &http.Client{Timeout: 30 * time.Second}

// maxBodyBytes caps the response body returned to the frontend.
const maxBodyBytes = 2 << 20 // 2 MiB

// Request describes one frontend fetch.
type Request struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
}

// Response is the result returned to the frontend. Body is truncated at
// maxBodyBytes.
type Response struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}

// Service is the bound fetch capability.
type Service struct {
	scope  *Scope
	client *http.Client
}

// Fetch performs the request if its URL is inside the scope.
func (s *Service) Fetch(req Request) (Response, error) {
	if !s.scope.Allows(req.URL) {
		return Response{}, fmt.Errorf("netfetch: url %q not allowed by scope", req.URL)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}
	httpReq, err := http.NewRequest(method, req.URL, body)
	if err != nil {
		return Response{}, fmt.Errorf("netfetch: new request: %w", err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("netfetch: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{}, fmt.Errorf("netfetch: read body: %w", err)
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}
	return Response{Status: resp.StatusCode, Headers: headers, Body: string(data)}, nil
}

// Integration installs the fetch service into the builder.
type Integration struct {
	svc *Service
}

// New compiles the scope patterns into a network integration.
func New(scopePatterns []string) (*Integration, error) {
	scope, err := ParseScope(scopePatterns)
	if err != nil {
		return nil, err
	}
	return &Integration{svc: &Service{scope: scope, client: client}}, nil
}

func (i *Integration) Name() string { return "network" }

func (i *Integration) Attach(b host.Builder) error {
	b.Bind(i.svc)
	return nil
}
