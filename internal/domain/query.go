package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Wildcard marks an unbounded side of a search window.
const Wildcard = "*"

// searchTimeLayout is ISO-8601 at second precision, always rendered in UTC.
const searchTimeLayout = "2006-01-02T15:04:05Z"

// QueryWindow describes one open-issue search: a repository and a creation-date range.
type QueryWindow struct {
	OwnerLogin string
	RepoName   string
	From       string
	Till       string
}

// WindowOption bounds one side of a QueryWindow.
type WindowOption func(*QueryWindow)

// Since bounds the window from below.
func Since(t time.Time) WindowOption {
	return func(w *QueryWindow) { w.From = FormatSearchTime(t) }
}

// Until bounds the window from above.
func Until(t time.Time) WindowOption {
	return func(w *QueryWindow) { w.Till = FormatSearchTime(t) }
}

// NewQueryWindow builds a window over owner/repo. Without options both sides are unbounded.
func NewQueryWindow(owner, repo string, opts ...WindowOption) QueryWindow {
	w := QueryWindow{
		OwnerLogin: owner,
		RepoName:   repo,
		From:       Wildcard,
		Till:       Wildcard,
	}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

// FormatSearchTime renders t the way the search API expects a created: bound.
func FormatSearchTime(t time.Time) string {
	return t.UTC().Format(searchTimeLayout)
}

// Query returns the search qualifier string, with terms joined by '+'.
// The result is already in its encoded form and goes into the q parameter verbatim.
func (w QueryWindow) Query() string {
	terms := []string{
		fmt.Sprintf("repo:%s/%s", url.QueryEscape(w.OwnerLogin), url.QueryEscape(w.RepoName)),
		"is:open",
		"is:issue",
		fmt.Sprintf("created:%s..%s", w.From, w.Till),
	}
	return strings.Join(terms, "+")
}

// Repo returns "owner/repo".
func (w QueryWindow) Repo() string {
	return w.OwnerLogin + "/" + w.RepoName
}
