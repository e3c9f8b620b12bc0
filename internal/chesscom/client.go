package chesscom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/models"
)

const (
	DefaultBaseURL   = "https://api.chess.com/pub"
	DefaultUserAgent = "ChessGameReviewApp/0.1 (personal review tool)"

	// maxArchives bounds how many monthly archives one call may fetch.
	maxArchives = 2
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithUserAgent sets the client identifier header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		log:        logger.Default().WithPrefix("chesscom"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type archivesResp struct {
	Archives []string `json:"archives"`
}

type monthlyResp struct {
	Games []models.SourceGame `json:"games"`
}

func (c *Client) FetchArchives(ctx context.Context, username string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("username", username)
	url := fmt.Sprintf("%s/player/%s/games/archives", c.baseURL, strings.ToLower(username))

	log.Debug("fetching archives from: %s", url)
	var out archivesResp
	if err := c.getJSON(ctx, log, "archives", url, &out); err != nil {
		return nil, err
	}

	log.Info("fetched %d archives for user %s", len(out.Archives), username)
	return out.Archives, nil
}

func (c *Client) FetchMonthly(ctx context.Context, archiveURL string) ([]models.SourceGame, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("archive_url", archiveURL)

	log.Debug("fetching monthly games")
	var payload monthlyResp
	if err := c.getJSON(ctx, log, "monthly", archiveURL, &payload); err != nil {
		return nil, err
	}

	log.Info("fetched %d games from archive", len(payload.Games))
	return payload.Games, nil
}

// GetRecentGames returns at most count games, newest first. It reads the
// newest monthly archive and falls back to the one before it only when the
// newest holds fewer than count games. No more than two archives are fetched,
// so fewer than count games may come back.
func (c *Client) GetRecentGames(ctx context.Context, username string, count int) ([]models.SourceGame, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithFields(map[string]any{
		"username": username,
		"count":    count,
	})

	archives, err := c.FetchArchives(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(archives) == 0 || count <= 0 {
		log.Debug("no archives to read")
		return []models.SourceGame{}, nil
	}

	var all []models.SourceGame
	stop := len(archives) - maxArchives
	if stop < 0 {
		stop = 0
	}
	for i := len(archives) - 1; i >= stop; i-- {
		games, err := c.FetchMonthly(ctx, archives[i])
		if err != nil {
			return nil, err
		}
		all = append(all, games...)
		if len(all) >= count {
			break
		}
	}

	sortNewestFirst(all)
	if len(all) > count {
		all = all[:count]
	}
	log.Debug("returning %d recent games", len(all))
	return all, nil
}

func sortNewestFirst(games []models.SourceGame) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].EndTime > games[j].EndTime
	})
}

func (c *Client) getJSON(ctx context.Context, log *logger.Logger, what, url string, dst any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return errors.NewSourceUnavailableError(what+" request invalid", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch %s: %v", what, err)
		return errors.NewSourceUnavailableError("chess.com unreachable", err)
	}
	defer resp.Body.Close()

	log.Debug("%s response received in %v, status=%d", what, time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("%s request failed: status=%d, body=%s", what, resp.StatusCode, string(body))
		return errors.NewSourceUnavailableError(
			fmt.Sprintf("Chess.com API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		log.Error("failed to decode %s response: %v", what, err)
		return errors.NewSourceUnavailableError("chess.com returned malformed "+what, err)
	}
	return nil
}
