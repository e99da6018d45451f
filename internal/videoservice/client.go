package videoservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"startpost/pkg/httputil"
)

const (
	DefaultBaseURL  = "https://josdev1215.pythonanywhere.com"
	defaultTimeout  = 60 * time.Second
	defaultFileName = "video"
)

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type UploadRequest struct {
	File        io.Reader
	FileName    string
	Title       string
	Description string
}

type SEORequest struct {
	Content  string   `json:"content"`
	Platform string   `json:"platform"`
	Keywords []string `json:"keywords"`
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// UploadVideo sends the file and its metadata as a multipart form to /videos.
func (c *Client) UploadVideo(ctx context.Context, upload UploadRequest) (Result, error) {
	const op = "upload video"

	if upload.File == nil {
		return Result{}, c.fail(op, &TransportError{Op: op, Err: errors.New("no file to upload")})
	}

	body, contentType := encodeUpload(upload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/videos", body)
	if err != nil {
		_ = body.Close()
		return Result{}, c.fail(op, &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)})
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(op, req)
}

func (c *Client) UploadFile(ctx context.Context, path, title, description string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open video: %w", err)
	}
	defer func() { _ = file.Close() }()

	return c.UploadVideo(ctx, UploadRequest{
		File:        file,
		FileName:    filepath.Base(path),
		Title:       title,
		Description: description,
	})
}

func (c *Client) CheckVideoStatus(ctx context.Context, videoID string) (Result, error) {
	const op = "check video status"

	reqURL := fmt.Sprintf("%s/videos/%s", c.baseURL, url.PathEscape(videoID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{}, c.fail(op, &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)})
	}

	return c.do(op, req)
}

func (c *Client) OptimizeSEO(ctx context.Context, seo SEORequest) (Result, error) {
	const op = "optimize seo"

	if seo.Keywords == nil {
		seo.Keywords = []string{}
	}

	data, err := json.Marshal(seo)
	if err != nil {
		return Result{}, c.fail(op, &TransportError{Op: op, Err: fmt.Errorf("marshal request: %w", err)})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/seo/optimize", bytes.NewReader(data))
	if err != nil {
		return Result{}, c.fail(op, &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)})
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(op, req)
}

func (c *Client) do(op string, req *http.Request) (Result, error) {
	c.logger.Debug("backend request", "op", op, "method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, c.fail(op, &TransportError{Op: op, Err: fmt.Errorf("send request: %w", err)})
	}
	defer func() { _ = resp.Body.Close() }()

	if err := httputil.CheckResponse(resp); err != nil {
		reqErr := &RequestError{Op: op, StatusCode: resp.StatusCode}
		var statusErr *httputil.StatusError
		if errors.As(err, &statusErr) {
			reqErr.Body = statusErr.Body
		}
		return Result{}, c.fail(op, reqErr)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, c.fail(op, &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)})
	}

	return result, nil
}

func (c *Client) fail(op string, err error) error {
	attrs := []any{"op", op, "error", err}
	if code, ok := StatusCode(err); ok {
		attrs = append(attrs, "status", code)
	}
	c.logger.Error("backend request failed", attrs...)
	return err
}

// encodeUpload streams the multipart form through a pipe so the video is
// never held in memory. A write failure surfaces as the request's error.
func encodeUpload(upload UploadRequest) (*io.PipeReader, string) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUpload(writer, upload))
	}()

	return pr, writer.FormDataContentType()
}

func writeUpload(writer *multipart.Writer, upload UploadRequest) error {
	fileName := upload.FileName
	if fileName == "" {
		fileName = defaultFileName
	}

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}

	if _, err := io.Copy(part, upload.File); err != nil {
		return fmt.Errorf("copy video: %w", err)
	}

	if err := writer.WriteField("title", upload.Title); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	if err := writer.WriteField("description", upload.Description); err != nil {
		return fmt.Errorf("write description: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}

	return nil
}
