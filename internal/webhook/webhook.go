package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"startpost/pkg/httputil"
)

const (
	processCompletePath = "/api/webhook/process-complete"
	defaultTimeout      = 30 * time.Second
)

type Version struct {
	Format       string `json:"format"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type ProcessComplete struct {
	VideoID  string    `json:"video_id"`
	Versions []Version `json:"versions"`
}

type Notifier struct {
	baseURL    string
	httpClient *http.Client
}

func NewNotifier(baseURL string, timeout time.Duration) *Notifier {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Notifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ProcessComplete tells the backend which renditions exist for a video.
func (n *Notifier) ProcessComplete(ctx context.Context, payload ProcessComplete) error {
	if n.baseURL == "" {
		return fmt.Errorf("webhook base url is not configured")
	}
	if payload.Versions == nil {
		payload.Versions = []Version{}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+processCompletePath, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := httputil.CheckResponse(resp); err != nil {
		return fmt.Errorf("notify process complete: %w", err)
	}

	return nil
}
