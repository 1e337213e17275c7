package llm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrNoRating is returned when a rating reply contains no integer.
	ErrNoRating = errors.New("no rating found in LLM response")
	// ErrInvalidRating is returned for ratings below 1, which would read as unrated.
	ErrInvalidRating = errors.New("rating must be at least 1")
)

var (
	integerRegex     = regexp.MustCompile(`-?\d+`)
	integerLineRegex = regexp.MustCompile(`^-?\d+$`)
	// Scale mentions such as "1 to 100", "1-100", "out of 100" or "/100".
	scaleRegex = regexp.MustCompile(`(?i)\b\d+\s*(?:-|–|to)\s*\d+\b|(?:\bout of|/)\s*\d+`)
	// Matches: Fixes #12, closes: #3, Resolves https://github.com/o/r/issues/7
	closingKeywordRegex = regexp.MustCompile(`(?i)\b(?:close[sd]?|fix(?:e[sd])?|resolve[sd]?)\b:?\s+(?:#(\d+)|https?://github\.com/([^/\s]+)/([^/\s]+)/issues/(\d+))`)
)

// ParseRating extracts a rating from an LLM reply. A line holding only an
// integer wins; otherwise the last integer outside any scale mention is used.
func ParseRating(reply string) (int, error) {
	text := stripMarkdownFence(reply)

	match := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(strings.Trim(strings.TrimSpace(line), "*_`"), ".")
		if integerLineRegex.MatchString(line) {
			match = line
		}
	}
	if match == "" {
		all := integerRegex.FindAllString(scaleRegex.ReplaceAllString(text, " "), -1)
		if len(all) > 0 {
			match = all[len(all)-1]
		}
	}
	if match == "" {
		return 0, fmt.Errorf("%w: %q", ErrNoRating, truncate(reply, 80))
	}

	rating, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNoRating, match)
	}
	if rating < 1 {
		return 0, fmt.Errorf("%w, got %d", ErrInvalidRating, rating)
	}
	return rating, nil
}

// parseIssueNumber reads an issue number from an LLM reply. Zero means the
// model found no linked issue.
func parseIssueNumber(reply string) (int, error) {
	match := integerRegex.FindString(strings.TrimPrefix(strings.TrimSpace(reply), "#"))
	if match == "" {
		return 0, fmt.Errorf("no issue number found in LLM response: %q", truncate(reply, 80))
	}
	n, err := strconv.Atoi(match)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid issue number %q", match)
	}
	return n, nil
}

// linkedIssueFromBody finds the issue closed by a pull request body using
// GitHub's closing keywords. URLs pointing at another repository are ignored.
func linkedIssueFromBody(body, owner, repo string) (int, bool) {
	for _, m := range closingKeywordRegex.FindAllStringSubmatch(body, -1) {
		if m[1] != "" {
			n, err := strconv.Atoi(m[1])
			return n, err == nil
		}
		if strings.EqualFold(m[2], owner) && strings.EqualFold(m[3], repo) {
			n, err := strconv.Atoi(m[4])
			return n, err == nil
		}
	}
	return 0, false
}

// stripMarkdownFence removes a ``` fence the model sometimes wraps replies in.
func stripMarkdownFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	// Find the end of the opening fence line
	idx := strings.Index(trimmed, "\n")
	if idx < 0 {
		return strings.Trim(trimmed, "`")
	}
	inner := trimmed[idx+1:]
	if lastFence := strings.LastIndex(inner, "```"); lastFence >= 0 {
		inner = inner[:lastFence]
	}
	return strings.TrimSpace(inner)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
