// internal/github/decode.go
package github

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	errs "github-contrib-finder/internal/errors"
	"github-contrib-finder/internal/model"
)

// Wire shapes of the code-hosting API.
type searchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []searchItem `json:"items"`
}

type searchItem struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	StargazersCount int    `json:"stargazers_count"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	Owner           struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	} `json:"owner"`
}

type readmePayload struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type issueItem struct {
	HTMLURL string  `json:"html_url"`
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Body    *string `json:"body"`
}

// decodeSearchResponse parses a repository search payload. A parse failure is
// fatal for the call; there is no partial recovery.
func decodeSearchResponse(body string) (model.RepositoryCollection, error) {
	var res searchResponse
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		return model.RepositoryCollection{}, fmt.Errorf("decoding search response: %w", err)
	}

	items := make([]model.Repository, len(res.Items))
	for i, item := range res.Items {
		items[i] = model.Repository{
			ID:              item.ID,
			Name:            item.Name,
			FullName:        item.FullName,
			StargazersCount: item.StargazersCount,
			URL:             item.HTMLURL,
			Description:     item.Description,
			Owner: model.Owner{
				ID:        item.Owner.ID,
				Name:      item.Owner.Login,
				AvatarURL: item.Owner.AvatarURL,
			},
		}
	}

	return model.RepositoryCollection{
		TotalCount: res.TotalCount,
		Items:      items,
	}, nil
}

// decodeReadme interprets a README fetch. A 404 status is the defined
// not-found outcome and the body is not parsed. Any other status is parsed as
// {content, encoding}; only base64 content is supported.
func decodeReadme(resp Response) (model.ReadmeResult, error) {
	if resp.Status == http.StatusNotFound {
		return model.ReadmeResult{Found: false, Content: nil}, nil
	}

	var payload readmePayload
	if err := json.Unmarshal([]byte(resp.Body), &payload); err != nil {
		return model.ReadmeResult{}, fmt.Errorf("decoding readme response: %w", err)
	}

	if payload.Encoding != "base64" {
		return model.ReadmeResult{}, errs.ErrUnknownEncoding
	}

	content, err := decodeBase64Text(payload.Content)
	if err != nil {
		return model.ReadmeResult{}, err
	}

	return model.ReadmeResult{Found: true, Content: &content}, nil
}

// decodeBase64Text decodes transport-encoded README content to UTF-8 text.
// The API wraps base64 lines with literal newlines, which must be stripped
// before decoding.
func decodeBase64Text(input string) (string, error) {
	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(input)
	raw, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", fmt.Errorf("decoding readme content: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("readme content is not valid UTF-8")
	}
	return string(raw), nil
}

// decodeIssues parses an issue-listing payload. An empty array is a valid,
// non-error result.
func decodeIssues(body string) ([]model.Issue, error) {
	var items []issueItem
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, fmt.Errorf("decoding issues response: %w", err)
	}

	issues := make([]model.Issue, len(items))
	for i, item := range items {
		url := item.HTMLURL
		if url == "" {
			url = item.URL
		}
		issues[i] = model.Issue{
			URL:   url,
			Title: item.Title,
			Body:  item.Body,
		}
	}
	return issues, nil
}
