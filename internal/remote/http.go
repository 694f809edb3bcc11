package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/imroc/req"
)

// HTTPSource lists subscriptions and namespaces from the Payara Cloud API.
type HTTPSource struct {
	baseURL string
	token   string
	client  *req.Req
}

// NewHTTPSource returns a Source talking to baseURL. token is sent as a
// bearer token when non-empty.
func NewHTTPSource(baseURL, token string) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  req.New(),
	}
}

func (s *HTTPSource) Subscriptions(ctx context.Context) ([]Link, error) {
	return s.list(ctx, "/subscriptions")
}

func (s *HTTPSource) Namespaces(ctx context.Context, subscription string) ([]Link, error) {
	return s.list(ctx, "/subscriptions/"+url.PathEscape(subscription)+"/namespaces")
}

func (s *HTTPSource) list(ctx context.Context, path string) ([]Link, error) {
	header := req.Header{"Accept": "application/json"}
	if s.token != "" {
		header["Authorization"] = "Bearer " + s.token
	}

	resp, err := s.client.Get(s.baseURL+path, header, ctx)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if code := resp.Response().StatusCode; code != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", path, code)
	}

	var links []Link
	if err := resp.ToJSON(&links); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return links, nil
}

var _ Source = (*HTTPSource)(nil)
