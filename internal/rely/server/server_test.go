package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/build-flow-labs/rely/internal/rely/github"
	"github.com/build-flow-labs/rely/internal/rely/metric"
	"github.com/build-flow-labs/rely/internal/rely/repo"
	"github.com/build-flow-labs/rely/internal/rely/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScorer struct {
	err   error
	calls []string
}

func (f *fakeScorer) ScoreRepository(ctx context.Context, rawURL string) (*service.Result, error) {
	id, err := repo.ParseIdentifier(rawURL)
	if err != nil {
		return nil, err
	}
	return f.ScoreIdentifier(ctx, id)
}

func (f *fakeScorer) ScoreIdentifier(_ context.Context, id repo.Identifier) (*service.Result, error) {
	f.calls = append(f.calls, id.FullName())
	if f.err != nil {
		return nil, f.err
	}
	return &service.Result{
		RequestID:    "req-42",
		RepoURL:      id.URL(),
		Owner:        id.Owner,
		Name:         id.Name,
		OverallScore: 0.875,
		Percent:      87,
		Grade:        "B",
		License:      "Apache-2.0",
		Metrics: []metric.Serialized{{
			NormalizedName: "star_count_metric",
			PrettifiedName: "Number of stars",
			Weight:         0.65,
			Value:          metric.IntValue(600),
			Score:          3,
			WeightedScore:  1.95,
		}},
	}, nil
}

func newTestServer(t *testing.T, scorer Scorer) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(Config{Addr: "127.0.0.1:0", Version: "test"}, scorer, logger)
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestScoreRepo(t *testing.T) {
	scorer := &fakeScorer{}
	s := newTestServer(t, scorer)

	rec := get(t, s, "/score_repo?repo_url="+url.QueryEscape("https://github.com/octo/demo"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "octo", body["owner"])
	assert.Equal(t, float64(87), body["overall_score_percent"])
	assert.Equal(t, []string{"octo/demo"}, scorer.calls)
}

func TestScoreRepoErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"missing parameter", "/score_repo", nil, http.StatusBadRequest},
		{"invalid url", "/score_repo?repo_url=https://gitlab.com/octo/demo", nil, http.StatusBadRequest},
		{
			"not found on github",
			"/score_repo?repo_url=https://github.com/octo/missing",
			fmt.Errorf("fetching repository octo/missing: %w", &github.APIError{Op: "GET", StatusCode: http.StatusNotFound, Err: errors.New("404")}),
			http.StatusNotFound,
		},
		{
			"github failure",
			"/score_repo?repo_url=https://github.com/octo/demo",
			&github.APIError{Op: "GET", StatusCode: http.StatusInternalServerError, Err: errors.New("500")},
			http.StatusBadGateway,
		},
		{
			"transport failure",
			"/score_repo?repo_url=https://github.com/octo/demo",
			&github.APIError{Op: "GET", Err: errors.New("connection refused")},
			http.StatusBadGateway,
		},
		{
			"internal failure",
			"/score_repo?repo_url=https://github.com/octo/demo",
			metric.ErrEmptyRegistry,
			http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeScorer{err: tt.err})
			rec := get(t, s, tt.target)
			assert.Equal(t, tt.want, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestFormDefaults(t *testing.T) {
	scorer := &fakeScorer{}
	s := newTestServer(t, scorer)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, `value="1cph93"`)
	assert.Contains(t, body, `value="bcolz"`)
	assert.Empty(t, scorer.calls)
}

func TestFormScores(t *testing.T) {
	scorer := &fakeScorer{}
	s := newTestServer(t, scorer)

	rec := get(t, s, "/?owner=octo&name=demo")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="octo"`)
	assert.Contains(t, body, ">B<")
	assert.Contains(t, body, "87%")
	assert.Contains(t, body, "Number of stars")
	assert.Contains(t, body, "License: Apache-2.0")
	assert.Contains(t, body, "1.95")
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, []string{"octo/demo"}, scorer.calls)
}

func TestFormError(t *testing.T) {
	scorer := &fakeScorer{err: &github.APIError{Op: "GET", StatusCode: http.StatusNotFound, Err: errors.New("404")}}
	s := newTestServer(t, scorer)

	rec := get(t, s, "/?owner=octo&name=missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="error"`)
}

func TestFormRejectsSlashInName(t *testing.T) {
	scorer := &fakeScorer{}
	s := newTestServer(t, scorer)

	rec := get(t, s, "/?owner=octo&name="+url.QueryEscape("demo/extra"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, scorer.calls)
}

func TestUnknownPath(t *testing.T) {
	s := newTestServer(t, &fakeScorer{})
	assert.Equal(t, http.StatusNotFound, get(t, s, "/nope").Code)
}

func TestHealthAndStatus(t *testing.T) {
	s := newTestServer(t, &fakeScorer{})

	rec := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))

	get(t, s, "/score_repo?repo_url=https://github.com/octo/demo")
	get(t, s, "/score_repo")

	rec = get(t, s, "/status")
	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, float64(1), status["requests_served"])
	assert.Equal(t, float64(1), status["requests_failed"])
	assert.Equal(t, "test", status["version"])
	assert.NotEmpty(t, status["last_request_at"])
}

func TestStartStopsOnCancel(t *testing.T) {
	s := newTestServer(t, &fakeScorer{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestUnsafeIdentifiersNeverReachGitHub(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.RequestURI())
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(api.Close)

	client, err := github.NewClient(context.Background(), github.Config{Token: "secret", BaseURL: api.URL})
	require.NoError(t, err)
	registry, err := metric.Default()
	require.NoError(t, err)
	svc, err := service.New(client, registry, service.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	s := newTestServer(t, svc)

	for _, target := range []string{
		"/score_repo?repo_url=" + url.QueryEscape("https://github.com/../user"),
		"/score_repo?repo_url=" + url.QueryEscape("https://github.com/%2e%2e/user"),
		"/?owner=..&name=" + url.QueryEscape("user?x=1"),
		"/?owner=octo&name=" + url.QueryEscape(".."),
	} {
		rec := get(t, s, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, paths)
}

func TestWriteTimeoutOutlastsUpstreamReads(t *testing.T) {
	tests := []struct {
		upstream time.Duration
		want     time.Duration
	}{
		{0, 70 * time.Second},
		{30 * time.Second, 70 * time.Second},
		{5 * time.Second, 20 * time.Second},
		{2 * time.Minute, 250 * time.Second},
	}
	for _, tt := range tests {
		cfg := Config{UpstreamTimeout: tt.upstream}
		got := cfg.writeTimeout()
		assert.Equal(t, tt.want, got, "upstream %s", tt.upstream)
		upstream := tt.upstream
		if upstream == 0 {
			upstream = defaultUpstreamTimeout
		}
		assert.Greater(t, got, 2*upstream)
	}
}
