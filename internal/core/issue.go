package core

import "fmt"

// IssueRef identifies a single issue in a repository.
type IssueRef struct {
	Owner  string
	Repo   string
	Number int
}

func (r IssueRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// IssueComment is a single comment on an issue, reduced to what the
// evaluation prompt needs.
type IssueComment struct {
	Author string
	Body   string
}

// IssueDetails is the internal view of an issue assembled from the issue,
// label and comment endpoints.
type IssueDetails struct {
	Number   int
	Title    string
	Body     string
	State    string
	Labels   []string
	Comments []IssueComment
}

// Contribution describes a pull request and the issue it closes.
type Contribution struct {
	Author      string `json:"author"`
	PRState     string `json:"pr_state"`
	Merged      bool   `json:"merged"`
	LinkedIssue int    `json:"linked_issue"`
	// IssueState is "N/A" when the pull request does not reference an issue.
	IssueState string `json:"issue_state"`
}
