// Package gitutil parses the GitHub references users type on the command line.
package gitutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sevigo/gitgrant/internal/core"
)

var (
	prURLRegex    = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)$`)
	issueURLRegex = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/issues/(\d+)$`)
	repoRegex     = regexp.MustCompile(`^(?:(?:https?://)?github\.com/)?([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+?)(?:\.git)?$`)
)

// ParsePullRequestURL parses a GitHub Pull Request URL and extracts the owner, repo, and PR number.
// Supported format: https://github.com/{owner}/{repo}/pull/{number}
func ParsePullRequestURL(url string) (core.IssueRef, error) {
	return parseNumbered(prURLRegex, "pull request", url)
}

// ParseIssueURL parses https://github.com/{owner}/{repo}/issues/{number}.
func ParseIssueURL(url string) (core.IssueRef, error) {
	return parseNumbered(issueURLRegex, "issue", url)
}

// ParseRepository accepts "owner/repo" or a repository URL.
func ParseRepository(raw string) (owner, repo string, err error) {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "/")
	matches := repoRegex.FindStringSubmatch(raw)
	if len(matches) != 3 {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/repo", raw)
	}
	return matches[1], matches[2], nil
}

func parseNumbered(re *regexp.Regexp, kind, url string) (core.IssueRef, error) {
	// Normalize URL
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")

	matches := re.FindStringSubmatch(url)
	if len(matches) != 4 {
		return core.IssueRef{}, fmt.Errorf("invalid %s URL format: %s", kind, url)
	}

	number, err := strconv.Atoi(matches[3])
	if err != nil {
		return core.IssueRef{}, fmt.Errorf("invalid %s number '%s': %w", kind, matches[3], err)
	}

	return core.IssueRef{Owner: matches[1], Repo: matches[2], Number: number}, nil
}
