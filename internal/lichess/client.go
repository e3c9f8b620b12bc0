package lichess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/models"
)

const (
	DefaultBaseURL = "https://lichess.org"

	embedURLTemplate = "https://lichess.org/embed/game/%s?theme=auto&bg=auto"
	noIDMessage      = "no id/url returned"
)

// EmbedURL returns the embeddable viewer URL for an imported game.
func EmbedURL(id string) string {
	return fmt.Sprintf(embedURLTemplate, id)
}

// Client submits games to the Lichess import endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	log        *logger.Logger

	initOnce   sync.Once
	authHeader string
}

// Option configures a Client.
type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithToken sets the optional API token. Without one, imports run
// unauthenticated under the anonymous rate limit.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    DefaultBaseURL,
		log:        logger.Default().WithPrefix("lichess"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ensureInitialized() {
	c.initOnce.Do(func() {
		if c.token == "" {
			c.log.Info("no api token configured, importing anonymously")
			return
		}
		c.authHeader = "Bearer " + c.token
		c.log.Debug("api token configured")
	})
}

type importResp struct {
	ID    string          `json:"id"`
	URL   string          `json:"url"`
	Error json.RawMessage `json:"error"`
}

// ImportGame uploads a PGN and returns the assigned id, browse URL and embed
// URL. It never retries; the caller decides whether to move on.
func (c *Client) ImportGame(ctx context.Context, pgn string) (models.ImportResult, error) {
	c.ensureInitialized()
	log := logger.FromContext(ctx).WithPrefix("lichess")

	form := url.Values{}
	form.Set("pgn", pgn)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/import", strings.NewReader(form.Encode()))
	if err != nil {
		return models.ImportResult{}, errors.NewImportFailedError(err.Error(), err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("import request failed: %v", err)
		return models.ImportResult{}, errors.NewImportFailedError(err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		log.Error("failed to read import response: %v", err)
		return models.ImportResult{}, errors.NewImportFailedError(err.Error(), err)
	}
	log.Debug("import response received in %v, status=%d", time.Since(start), resp.StatusCode)

	var out importResp
	decodeErr := json.Unmarshal(body, &out)

	if out.ID == "" || out.URL == "" {
		msg := failureMessage(resp.StatusCode, out.Error, decodeErr)
		log.Warn("import rejected: status=%d, message=%s", resp.StatusCode, msg)
		return models.ImportResult{}, errors.NewImportFailedError(msg, nil)
	}

	log.Info("imported game %s", out.ID)
	return models.ImportResult{
		ID:       out.ID,
		URL:      out.URL,
		EmbedURL: EmbedURL(out.ID),
	}, nil
}

// failureMessage extracts the service's error payload. String payloads are
// returned as-is, structured ones as compact JSON.
func failureMessage(status int, payload json.RawMessage, decodeErr error) string {
	if len(payload) > 0 && string(payload) != "null" {
		var s string
		if err := json.Unmarshal(payload, &s); err == nil {
			return s
		}
		return string(payload)
	}
	if decodeErr != nil && status >= 300 {
		return fmt.Sprintf("%d %s", status, http.StatusText(status))
	}
	return noIDMessage
}
