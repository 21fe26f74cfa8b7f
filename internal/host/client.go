package host

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/reglabs/coaflow/internal/common"
	"github.com/reglabs/coaflow/internal/service"
)

// Client talks to the document host over HTTP. Any failure, transport
// or host-reported, surfaces as a host-insertion error: phase-two
// failures are not classified further.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a document host client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: host URL", common.ErrMissingConfig)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: trimmed,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Insert places markup into the document at the given location. The
// host applies the insertion atomically per call.
func (c *Client) Insert(ctx context.Context, markup string, loc service.InsertLocation) error {
	payload, err := json.Marshal(map[string]string{
		"markup":   markup,
		"location": string(loc),
	})
	if err != nil {
		return common.HostInsertion("failed to build insertion request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/insert", bytes.NewReader(payload))
	if err != nil {
		return common.HostInsertion("failed to create insertion request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.HostInsertion("document host unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return common.HostInsertion(
			fmt.Sprintf("document host rejected insertion: %d %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	return nil
}
