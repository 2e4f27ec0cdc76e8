// Package calc talks to the remote calculation service.
package calc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"calcboard/board/proto"
	"calcboard/internal/buildinfo"
	"calcboard/internal/logging"
)

const (
	// DefaultTimeout applies when Config.Timeout is zero and no HTTPClient is
	// supplied.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody bounds the response body kept in a StatusError.
	maxErrorBody = 512

	dataURIPrefix = "data:image/png;base64,"
)

// ErrNoBaseURL is returned by New when Config.BaseURL is empty.
var ErrNoBaseURL = errors.New("calc: empty base url")

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// MaxImageSide downscales images whose larger side exceeds it before
	// encoding. Zero sends images at full size.
	MaxImageSide int
	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client posts drawings to the calculation service.
type Client struct {
	baseURL      string
	maxImageSide int
	http         *http.Client
	log          *slog.Logger
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	// Body holds at most the first 512 bytes of the response body.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("calc: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("calc: unexpected status %d: %s", e.Code, e.Body)
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, ErrNoBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:      base,
		maxImageSide: cfg.MaxImageSide,
		http:         hc,
		log:          logging.OrDiscard(cfg.Logger),
	}, nil
}

// BaseURL returns the normalized service URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Calculate sends img and vars to the service and returns the decoded
// response. Any failure returns a nil response.
func (c *Client) Calculate(ctx context.Context, img image.Image, vars map[string]string) (*proto.CalculateResponse, error) {
	if img == nil {
		return nil, errors.New("calc: nil image")
	}
	if c.maxImageSide > 0 {
		b := img.Bounds()
		if b.Dx() > c.maxImageSide || b.Dy() > c.maxImageSide {
			img = imaging.Fit(img, c.maxImageSide, c.maxImageSide, imaging.Lanczos)
		}
	}
	uri, err := EncodeDataURI(img)
	if err != nil {
		return nil, err
	}
	if vars == nil {
		vars = map[string]string{}
	}

	body, err := json.Marshal(proto.CalculateRequest{Image: uri, DictOfVars: vars})
	if err != nil {
		return nil, fmt.Errorf("calc: encode request: %w", err)
	}

	url := c.baseURL + proto.CalculatePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("calc: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	start := time.Now()
	c.log.Debug("calculate request", "url", url, "bytes", len(body), "vars", len(vars))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calc: post %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var out proto.CalculateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("calc: decode response: %w", err)
	}
	if out.Data == nil {
		out.Data = []proto.Result{}
	}

	c.log.Debug("calculate response",
		"status", out.Status,
		"entries", len(out.Data),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return &out, nil
}

// EncodeDataURI encodes img as a base64 PNG data URI.
func EncodeDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("calc: encode png: %w", err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURI reverses EncodeDataURI.
func DecodeDataURI(uri string) (image.Image, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return nil, errors.New("calc: not a png data uri")
	}
	raw, err := base64.StdEncoding.DecodeString(uri[len(dataURIPrefix):])
	if err != nil {
		return nil, fmt.Errorf("calc: decode base64: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("calc: decode png: %w", err)
	}
	return img, nil
}
