// Package github reads repository metadata and root listings from the GitHub
// REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com/"

// Config configures a Client.
type Config struct {
	Token   string
	BaseURL string // defaults to DefaultBaseURL
	Timeout time.Duration
}

// Client is a minimal GitHub API client for scoring repositories.
type Client struct {
	gh *gh.Client
}

// NewClient creates a client. Requests are authenticated with Token when set.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var httpClient *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(ctx, ts)
	} else {
		httpClient = &http.Client{}
	}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	client := gh.NewClient(httpClient)
	if cfg.BaseURL != "" && cfg.BaseURL != DefaultBaseURL {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parsing API base URL %q: %w", cfg.BaseURL, err)
		}
		client.BaseURL = u
	}
	return &Client{gh: client}, nil
}

// APIError is a failed call to the GitHub API: the request could not be sent
// or GitHub answered with an error status.
type APIError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GitHub API %s returned %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("GitHub API %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// NotFound reports whether GitHub answered 404.
func (e *APIError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

func apiError(op string, resp *gh.Response, err error) error {
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}
	var ghErr *gh.ErrorResponse
	if status == 0 && errors.As(err, &ghErr) && ghErr.Response != nil {
		status = ghErr.Response.StatusCode
	}
	return &APIError{Op: op, StatusCode: status, Err: err}
}
