// internal/github/query_test.go
package github

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github-contrib-finder/internal/model"
)

func intPtr(v int) *int { return &v }

func TestEncodeSearchQuery(t *testing.T) {
	t.Run("bounded star range when max is present", func(t *testing.T) {
		q := encodeSearchQuery(model.SearchCriteria{
			MinStars:        1000,
			MaxStars:        intPtr(1001),
			LastPushed:      "2024-09-07",
			Language:        "go",
			GoodFirstIssues: 1,
			HelpWanted:      1,
		})

		assert.Equal(t,
			"q=stars:1000..1001+language:go+archived:false+good-first-issues:>=1+help-wanted-issues:>=1+pushed:>=2024-09-07&sort=stars&order=desc",
			q,
		)
	})

	t.Run("open lower bound when max is absent", func(t *testing.T) {
		q := encodeSearchQuery(model.SearchCriteria{
			MinStars:   500,
			LastPushed: "2024-01-01",
			Language:   "rust",
		})

		assert.Contains(t, q, "stars:>=500")
		assert.NotContains(t, q, "..")
	})

	t.Run("clauses appear in fixed order", func(t *testing.T) {
		q := encodeSearchQuery(model.SearchCriteria{MinStars: 1, Language: "go"})

		order := []string{"language:go", "archived:false", "good-first-issues:>=0", "help-wanted-issues:>=0", "pushed:>="}
		last := -1
		for _, clause := range order {
			idx := strings.Index(q, clause)
			assert.Greater(t, idx, last, "clause %q out of order in %q", clause, q)
			last = idx
		}
	})

	t.Run("sorted by stars descending", func(t *testing.T) {
		q := encodeSearchQuery(model.SearchCriteria{MinStars: 0})
		assert.Contains(t, q, "&sort=stars&order=desc")
	})
}

func TestEncodeIssueQuery(t *testing.T) {
	t.Run("renders documented defaults for unset fields", func(t *testing.T) {
		q := encodeIssueQuery(model.IssueSearchCriteria{})

		assert.Equal(t, "state=all&assignee=none&labels=&sort=created&direction=desc", q)
	})

	t.Run("renders explicit values via lower-case names", func(t *testing.T) {
		q := encodeIssueQuery(model.IssueSearchCriteria{
			State:     model.IssueStateOpen,
			Assignee:  "octocat",
			Labels:    []string{"bug", "good first issue"},
			SortKey:   model.IssueSortComments,
			SortOrder: model.OrderAscending,
		})

		assert.Equal(t, "state=open&assignee=octocat&labels=bug,good+first+issue&sort=comments&direction=asc", q)
	})

	t.Run("percent-encodes reserved characters in values", func(t *testing.T) {
		q := encodeIssueQuery(model.IssueSearchCriteria{
			Assignee: "anne&bob",
			Labels:   []string{"help wanted", "a=b"},
		})

		assert.Equal(t, "state=all&assignee=anne%26bob&labels=help+wanted,a%3Db&sort=created&direction=desc", q)
	})

	t.Run("empty label set renders an empty labels parameter", func(t *testing.T) {
		q := encodeIssueQuery(model.IssueSearchCriteria{Labels: nil})
		assert.Contains(t, q, "&labels=&")
	})

	t.Run("encoding is deterministic", func(t *testing.T) {
		criteria := model.IssueSearchCriteria{
			State:  model.IssueStateClosed,
			Labels: []string{"help wanted"},
		}
		assert.Equal(t, encodeIssueQuery(criteria), encodeIssueQuery(criteria))
	})
}
