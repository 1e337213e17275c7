package gitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/gitgrant/internal/core"
)

func TestParsePullRequestURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    core.IssueRef
		wantErr bool
	}{
		{
			name: "Valid HTTPS URL",
			url:  "https://github.com/sevigo/gitgrant/pull/123",
			want: core.IssueRef{Owner: "sevigo", Repo: "gitgrant", Number: 123},
		},
		{
			name: "Valid URL without scheme",
			url:  "github.com/sevigo/gitgrant/pull/456",
			want: core.IssueRef{Owner: "sevigo", Repo: "gitgrant", Number: 456},
		},
		{
			name: "URL with trailing slash",
			url:  "https://github.com/sevigo/gitgrant/pull/789/",
			want: core.IssueRef{Owner: "sevigo", Repo: "gitgrant", Number: 789},
		},
		{
			name:    "Invalid PR ID",
			url:     "https://github.com/sevigo/gitgrant/pull/abc",
			wantErr: true,
		},
		{
			name:    "Issue URL is not a pull request",
			url:     "https://github.com/sevigo/gitgrant/issues/123",
			wantErr: true,
		},
		{
			name:    "Too many segments",
			url:     "https://github.com/sevigo/gitgrant/pull/123/files",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParsePullRequestURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ref)
		})
	}
}

func TestParseIssueURL(t *testing.T) {
	ref, err := ParseIssueURL("https://github.com/acme/widgets/issues/42")
	assert.NoError(t, err)
	assert.Equal(t, core.IssueRef{Owner: "acme", Repo: "widgets", Number: 42}, ref)
	assert.Equal(t, "acme/widgets#42", ref.String())

	_, err = ParseIssueURL("https://github.com/acme/widgets/pull/42")
	assert.Error(t, err)
}

func TestParseRepository(t *testing.T) {
	tests := []struct {
		raw       string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{raw: "acme/widgets", wantOwner: "acme", wantRepo: "widgets"},
		{raw: "https://github.com/acme/widgets", wantOwner: "acme", wantRepo: "widgets"},
		{raw: "https://github.com/acme/widgets.git", wantOwner: "acme", wantRepo: "widgets"},
		{raw: "github.com/acme/my.repo/", wantOwner: "acme", wantRepo: "my.repo"},
		{raw: "widgets", wantErr: true},
		{raw: "acme/widgets/issues", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			owner, repo, err := ParseRepository(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantRepo, repo)
		})
	}
}
