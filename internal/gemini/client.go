package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash-latest"
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 4 << 20
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration

	// HTTPClient is optional; its own Timeout is left untouched.
	HTTPClient *http.Client
}

// Client calls the generateContent endpoint with the API key as a query
// parameter.
type Client struct {
	http     *http.Client
	endpoint string
	apiKey   string
	model    string
	timeout  time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", baseURL, model)
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid gemini endpoint: %w", err)
	}

	return &Client{
		http:     httpClient,
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		model:    model,
		timeout:  timeout,
	}, nil
}

// ModelID returns the configured model name.
func (c *Client) ModelID() string {
	return c.model
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// Generate sends prompt as a single user turn and returns the extracted reply.
// Every transport or decoding failure is an *UnavailableError.
func (c *Client) Generate(ctx context.Context, prompt string) (Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return Reply{}, &UnavailableError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+url.QueryEscape(c.apiKey), bytes.NewReader(body))
	if err != nil {
		return Reply{}, &UnavailableError{Err: c.redact(err)}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Reply{}, &UnavailableError{Err: c.redact(err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Reply{}, &UnavailableError{Err: fmt.Errorf("read response body: %w", err)}
	}

	log.Debug().
		Str("model", c.model).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("gemini response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Reply{}, &UnavailableError{Err: statusError(resp, raw)}
	}

	if !gjson.ValidBytes(raw) {
		return Reply{}, &UnavailableError{Err: errors.New("response body is not valid JSON")}
	}

	return ExtractReply(gjson.ParseBytes(raw)), nil
}

// redact rewrites *url.Error so the query string holding the key is dropped.
func (c *Client) redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s %q: %w", uerr.Op, c.endpoint, uerr.Err)
	}
	return err
}

func statusError(resp *http.Response, raw []byte) error {
	msg := fmt.Sprintf("generation API returned %s", resp.Status)
	if detail := gjson.GetBytes(raw, "error.message"); detail.Type == gjson.String && detail.Str != "" {
		msg += ": " + detail.Str
	}
	return errors.New(msg)
}
