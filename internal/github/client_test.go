package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/gitgrant/internal/core"
)

func newTestClient(t *testing.T, mux http.Handler) Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	gh := github.NewClient(srv.Client())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = base

	return NewGitHubClient(gh, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestListOpenIssues_PaginatesAndSkipsPullRequests(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/repos/acme/widgets/issues", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "open", req.URL.Query().Get("state"))
		switch req.URL.Query().Get("page") {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<http://%s/repos/acme/widgets/issues?page=2>; rel="next"`, req.Host))
			_, _ = io.WriteString(w, `[
				{"number": 1, "title": "crash on start", "labels": [{"name": "bug"}]},
				{"number": 2, "title": "a pr", "pull_request": {"url": "x"}}
			]`)
		case "2":
			_, _ = io.WriteString(w, `[{"number": 3, "title": "docs"}]`)
		default:
			t.Errorf("unexpected page %q", req.URL.Query().Get("page"))
		}
	})

	client := newTestClient(t, r)
	issues, err := client.ListOpenIssues(context.Background(), "acme", "widgets")
	require.NoError(t, err)

	require.Len(t, issues, 2)
	assert.Equal(t, 1, issues[0].GetNumber())
	assert.Equal(t, 3, issues[1].GetNumber())
}

func TestListOpenIssues_Error(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/repos/acme/widgets/issues", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "boom"}`, http.StatusInternalServerError)
	})

	_, err := newTestClient(t, r).ListOpenIssues(context.Background(), "acme", "widgets")
	assert.Error(t, err)
}

func TestGetRepoConfig(t *testing.T) {
	t.Run("file present", func(t *testing.T) {
		yml := "custom_instructions:\n  - Mention the affected package.\nexclude_labels:\n  - wontfix\n"
		r := chi.NewRouter()
		r.Get("/repos/acme/widgets/contents/.gitgrant.yml", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprintf(w, `{"type": "file", "encoding": "base64", "content": %q}`,
				base64.StdEncoding.EncodeToString([]byte(yml)))
		})

		cfg, err := newTestClient(t, r).GetRepoConfig(context.Background(), "acme", "widgets")
		require.NoError(t, err)
		assert.Equal(t, []string{"Mention the affected package."}, cfg.CustomInstructions)
		assert.Equal(t, []string{"wontfix"}, cfg.ExcludeLabels)
	})

	t.Run("file missing", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/repos/acme/widgets/contents/.gitgrant.yml", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message": "Not Found"}`)
		})

		cfg, err := newTestClient(t, r).GetRepoConfig(context.Background(), "acme", "widgets")
		require.NoError(t, err)
		assert.Equal(t, core.DefaultRepoConfig(), cfg)
	})

	t.Run("server error", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/repos/acme/widgets/contents/.gitgrant.yml", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := newTestClient(t, r).GetRepoConfig(context.Background(), "acme", "widgets")
		assert.Error(t, err)
	})
}

func TestParseRepoConfig_Invalid(t *testing.T) {
	_, err := ParseRepoConfig([]byte("exclude_labels: [unterminated"))
	assert.Error(t, err)
}

func TestIssueFetcher_IssueDetails(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/repos/acme/widgets/issues/7", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"number": 7, "title": "Leak", "body": "memory grows", "state": "open"}`)
	})
	r.Get("/repos/acme/widgets/issues/7/labels", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"name": "bug"}, {"name": "help wanted"}]`)
	})
	r.Get("/repos/acme/widgets/issues/7/comments", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"body": "seen it too", "user": {"login": "octocat"}}]`)
	})

	fetcher := NewIssueFetcher(newTestClient(t, r), slog.New(slog.NewTextHandler(io.Discard, nil)))
	details, err := fetcher.IssueDetails(context.Background(), core.IssueRef{Owner: "acme", Repo: "widgets", Number: 7})
	require.NoError(t, err)

	assert.Equal(t, &core.IssueDetails{
		Number:   7,
		Title:    "Leak",
		Body:     "memory grows",
		State:    "open",
		Labels:   []string{"bug", "help wanted"},
		Comments: []core.IssueComment{{Author: "octocat", Body: "seen it too"}},
	}, details)
}

func TestIssueFetcher_OpenIssues(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/repos/acme/widgets/issues", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"number": 4, "title": "t", "state": "open", "labels": [{"name": "wontfix"}]}]`)
	})

	fetcher := NewIssueFetcher(newTestClient(t, r), slog.New(slog.NewTextHandler(io.Discard, nil)))
	issues, err := fetcher.OpenIssues(context.Background(), "acme", "widgets")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 4, issues[0].Number)
	assert.Equal(t, []string{"wontfix"}, issues[0].Labels)
}
