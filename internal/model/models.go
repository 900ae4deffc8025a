// internal/model/models.go
package model

import (
	"encoding/json"
	"time"
)

// SearchCriteria is the caller-supplied filter set for repository discovery.
// MaxStars is optional; when present it must be >= MinStars.
type SearchCriteria struct {
	MinStars        int    `json:"min_stars"`
	MaxStars        *int   `json:"max_stars,omitempty"`
	LastPushed      string `json:"last_pushed"`
	Language        string `json:"language"`
	GoodFirstIssues int    `json:"good_first_issues_count"`
	HelpWanted      int    `json:"help_wanted_count"`
}

// Owner is the account that owns a repository.
type Owner struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Repository is an immutable snapshot of a repository's metadata at fetch time.
type Repository struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	StargazersCount int    `json:"stargazers_count"`
	URL             string `json:"url"`
	Description     string `json:"description"`
	Owner           Owner  `json:"owner"`
}

// RepositoryCollection is a page of search results. TotalCount is the total
// reported by the search API and may exceed len(Items).
type RepositoryCollection struct {
	TotalCount int          `json:"total_count"`
	Items      []Repository `json:"items"`
}

// ReadmeResult is the outcome of a README fetch. Found=false is a normal
// outcome, not a fault; Content is nil in that case.
type ReadmeResult struct {
	Found   bool    `json:"found"`
	Content *string `json:"content"`
}

// IssueState filters issues by their open/closed state.
type IssueState string

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
	IssueStateAll    IssueState = "all"
)

func (s IssueState) String() string { return string(s) }

// IssueSortKey selects the field issues are sorted by.
type IssueSortKey string

const (
	IssueSortCreated  IssueSortKey = "created"
	IssueSortUpdated  IssueSortKey = "updated"
	IssueSortComments IssueSortKey = "comments"
)

func (k IssueSortKey) String() string { return string(k) }

// SortOrder is the direction applied to the sort key.
type SortOrder string

const (
	OrderAscending  SortOrder = "asc"
	OrderDescending SortOrder = "desc"
)

func (o SortOrder) String() string { return string(o) }

// NoAssignee is the sentinel assignee value meaning "no assignee filter".
const NoAssignee = "none"

// IssueSearchCriteria filters an issue listing. Zero values render as the
// documented defaults at encoding time: state "all", assignee "none",
// sort "created", order "desc".
type IssueSearchCriteria struct {
	State     IssueState   `json:"state"`
	Assignee  string       `json:"assignee"`
	Labels    []string     `json:"labels"`
	SortKey   IssueSortKey `json:"sort_key"`
	SortOrder SortOrder    `json:"sort_order"`
}

// Issue is a single issue as returned by the code-hosting API.
type Issue struct {
	URL   string  `json:"url"`
	Title string  `json:"title"`
	Body  *string `json:"body"`
}

// InquiryStatus is either the language model's numeric transport status or the
// distinct readme-not-found marker. It serializes as {"status_code": N} or
// "readme_not_found".
type InquiryStatus struct {
	Code           int
	ReadmeNotFound bool
}

// StatusReadmeNotFound marks an inquiry whose target repository has no README.
var StatusReadmeNotFound = InquiryStatus{ReadmeNotFound: true}

// StatusCode wraps a raw transport status.
func StatusCode(code int) InquiryStatus {
	return InquiryStatus{Code: code}
}

func (s InquiryStatus) MarshalJSON() ([]byte, error) {
	if s.ReadmeNotFound {
		return json.Marshal("readme_not_found")
	}
	return json.Marshal(map[string]int{"status_code": s.Code})
}

func (s *InquiryStatus) UnmarshalJSON(data []byte) error {
	var marker string
	if err := json.Unmarshal(data, &marker); err == nil {
		*s = InquiryStatus{ReadmeNotFound: marker == "readme_not_found"}
		return nil
	}
	var wrapped struct {
		Code int `json:"status_code"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*s = InquiryStatus{Code: wrapped.Code}
	return nil
}

// InquiryResult carries the language model's reply, or the readme-not-found
// marker with empty text.
type InquiryResult struct {
	Status InquiryStatus `json:"status"`
	Text   string        `json:"text"`
}

// StoredRepository is one row of the local repository mirror.
type StoredRepository struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"repo_name"`
	Language    string    `json:"lang"`
	Stars       int       `json:"stars"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Readme      string    `json:"readme"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
