// internal/github/query.go
package github

import (
	"fmt"
	"net/url"
	"strings"

	"github-contrib-finder/internal/model"
)

// encodeSearchQuery renders SearchCriteria in the search API's query grammar.
// Clauses are appended in a fixed order: stars, language, archived,
// good-first-issues, help-wanted-issues, pushed. Results are sorted by stars
// descending.
func encodeSearchQuery(c model.SearchCriteria) string {
	var stars string
	if c.MaxStars != nil {
		stars = fmt.Sprintf("stars:%d..%d", c.MinStars, *c.MaxStars)
	} else {
		stars = fmt.Sprintf("stars:>=%d", c.MinStars)
	}
	return fmt.Sprintf(
		"q=%s+language:%s+archived:false+good-first-issues:>=%d+help-wanted-issues:>=%d+pushed:>=%s&sort=stars&order=desc",
		stars, c.Language, c.GoodFirstIssues, c.HelpWanted, c.LastPushed,
	)
}

// encodeIssueQuery renders IssueSearchCriteria as issue-listing query
// parameters. Unset fields take their documented defaults. The labels
// parameter is always present, even when the label set is empty. Values are
// percent-encoded; labels like "good first issue" carry spaces.
func encodeIssueQuery(c model.IssueSearchCriteria) string {
	state := c.State
	if state == "" {
		state = model.IssueStateAll
	}
	assignee := c.Assignee
	if assignee == "" {
		assignee = model.NoAssignee
	}
	sortKey := c.SortKey
	if sortKey == "" {
		sortKey = model.IssueSortCreated
	}
	order := c.SortOrder
	if order == "" {
		order = model.OrderDescending
	}
	labels := make([]string, len(c.Labels))
	for i, label := range c.Labels {
		labels[i] = url.QueryEscape(label)
	}

	return fmt.Sprintf(
		"state=%s&assignee=%s&labels=%s&sort=%s&direction=%s",
		url.QueryEscape(state.String()), url.QueryEscape(assignee),
		strings.Join(labels, ","), url.QueryEscape(sortKey.String()), url.QueryEscape(order.String()),
	)
}
