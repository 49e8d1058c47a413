package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/racehub/internal/config"
	"github.com/yourusername/racehub/internal/metrics"
	"github.com/yourusername/racehub/internal/models"
)

// Endpoint names used in logs and metrics
const (
	EndpointRaceList     = "race_list"
	EndpointLogin        = "login"
	EndpointLogout       = "logout"
	EndpointProfile      = "profile"
	EndpointProfileSave  = "profile_save"
	EndpointRaceSearch   = "race_search"
	EndpointRaceConfirm  = "race_confirm"
	EndpointRaceDelete   = "race_delete"
	EndpointResultSearch = "result_search"
	EndpointShareToken   = "share_token"
)

// maxErrorBody bounds how much of an error body is read for the detail message
const maxErrorBody = 1 << 20

// Client provides access to the race backend
type Client struct {
	transport *Transport
	baseURL   *url.URL
	logger    *logrus.Logger
}

// NewClient creates a new backend client. jar carries the session cookie and
// may be nil for anonymous use.
func NewClient(cfg *config.APIConfig, jar http.CookieJar, logger *logrus.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	transport := NewTransport(TransportConfig{
		Timeout:      cfg.RequestTimeout(),
		MaxRetries:   cfg.RetryAttempts,
		RetryWaitMin: cfg.RetryWaitMin(),
		RetryWaitMax: cfg.RetryWaitMax(),
		RateLimit:    cfg.RateLimit,
	}, jar, logger)

	return &Client{
		transport: transport,
		baseURL:   base,
		logger:    logger,
	}, nil
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Close releases idle connections
func (c *Client) Close() error {
	return c.transport.Close()
}

// ListRaces fetches every race of the current user. A missing session yields
// ErrUnauthorized.
func (c *Client) ListRaces(ctx context.Context) ([]models.Race, error) {
	var races []models.Race
	if err := c.do(ctx, EndpointRaceList, http.MethodGet, nil, &races, "carreras"); err != nil {
		return nil, err
	}
	if races == nil {
		races = []models.Race{}
	}
	return races, nil
}

// Login opens a session for email; the session cookie lands in the jar
func (c *Client) Login(ctx context.Context, email string) error {
	return c.do(ctx, EndpointLogin, http.MethodPost, models.LoginRequest{Email: email}, nil, "auth", "login")
}

// Logout closes the current session
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, EndpointLogout, http.MethodPost, nil, nil, "auth", "logout")
}

// Profile fetches the user's profile
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, EndpointProfile, http.MethodGet, nil, &profile, "perfil"); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile updates the user's display name
func (c *Client) SaveProfile(ctx context.Context, name string) error {
	return c.do(ctx, EndpointProfileSave, http.MethodPost, models.ProfileUpdate{FullName: name}, nil, "perfil")
}

// SearchRace asks the backend to resolve a race by name
func (c *Client) SearchRace(ctx context.Context, query string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.do(ctx, EndpointRaceSearch, http.MethodPost, models.SearchRequest{Name: query}, &candidate, "carreras", "buscar"); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// ConfirmRace persists a candidate exactly as the search returned it
func (c *Client) ConfirmRace(ctx context.Context, candidate *models.Candidate) error {
	return c.do(ctx, EndpointRaceConfirm, http.MethodPost, candidate, nil, "carreras", "confirmar")
}

// DeleteRace removes a race
func (c *Client) DeleteRace(ctx context.Context, id models.RaceID) error {
	if id == "" {
		return models.ErrInvalidRaceID
	}
	return c.do(ctx, EndpointRaceDelete, http.MethodDelete, nil, nil, "carreras", id.String())
}

// SearchResult looks up a personal result
func (c *Client) SearchResult(ctx context.Context, query models.ResultQuery) (*models.ResultLookup, error) {
	var lookup models.ResultLookup
	if err := c.do(ctx, EndpointResultSearch, http.MethodPost, query, &lookup, "resultados", "buscar"); err != nil {
		return nil, err
	}
	return &lookup, nil
}

// ShareToken requests the shareable calendar path
func (c *Client) ShareToken(ctx context.Context) (*models.ShareToken, error) {
	var token models.ShareToken
	if err := c.do(ctx, EndpointShareToken, http.MethodGet, nil, &token, "share", "token"); err != nil {
		return nil, err
	}
	if token.ShareURL == "" {
		return nil, fmt.Errorf("%w: empty share_url", ErrInvalidResponse)
	}
	return &token, nil
}

// do sends one JSON request and decodes the answer into out when non-nil
func (c *Client) do(ctx context.Context, endpoint, method string, in, out interface{}, segments ...string) error {
	start := time.Now()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL.JoinPath(segments...)
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.WithFields(logrus.Fields{
		"endpoint":   endpoint,
		"method":     method,
		"request_id": requestID,
	})

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		metrics.RecordAPIRequest(endpoint, 0, time.Since(start))
		log.WithError(err).Warn("Backend request failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)
	metrics.RecordAPIRequest(endpoint, resp.StatusCode, duration)
	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := NewAPIError(endpoint, resp.StatusCode, data)
		if resp.StatusCode == http.StatusUnauthorized {
			log.Debug("Backend rejected session")
		} else {
			log.WithField("detail", apiErr.Detail).Warn("Backend returned error status")
		}
		return apiErr
	}

	log.Debug("Backend request completed")

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, endpoint, err)
	}
	return nil
}
