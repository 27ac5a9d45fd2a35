package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPOracle calls an external similarity ranking service.
type HTTPOracle struct {
	BaseURL string
	Client  *http.Client
}

var _ Oracle = &HTTPOracle{}

func NewHTTPOracle(baseURL string) *HTTPOracle {
	return &HTTPOracle{
		BaseURL: baseURL,
		Client: &http.Client{
			// Vector lookups are cheap; a slow oracle should not stall the
			// fallback chain.
			Timeout: 10 * time.Second,
		},
	}
}

func (o *HTTPOracle) Rank(ctx context.Context, rankReq *RankRequest) (*RankResponse, error) {
	payload, err := json.Marshal(rankReq)
	if err != nil {
		return nil, fmt.Errorf("marshal rank request: %w", err)
	}

	url := o.BaseURL + "/rank"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := o.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("similarity request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("similarity error: status %d, body: %s", res.StatusCode, string(resBody))
	}

	var rankRes RankResponse
	if err := json.Unmarshal(resBody, &rankRes); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &rankRes, nil
}
