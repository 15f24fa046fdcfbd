package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RelayClient posts survey responses to a site's own relay endpoint over HTTP.
// It is the collector.Submitter used outside the web process.
type RelayClient struct {
	SiteURL string
	HTTP    *http.Client
}

func NewRelayClient(siteURL string) *RelayClient {
	return &RelayClient{
		SiteURL: strings.TrimRight(siteURL, "/"),
		HTTP:    &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *RelayClient) SubmitResponses(ctx context.Context, surveyID string, payload []byte) (int, []byte, error) {
	endpoint := fmt.Sprintf("%s/api/surveys/%s/responses", c.SiteURL, url.PathEscape(surveyID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}
