// internal/service/repository.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	errs "github-contrib-finder/internal/errors"
	"github-contrib-finder/internal/model"
)

// RepositoryClient is the code-hosting fetch capability the service
// coordinates.
type RepositoryClient interface {
	FetchRepositories(ctx context.Context, criteria model.SearchCriteria) (model.RepositoryCollection, error)
	FetchTopReadme(ctx context.Context, owner, repo string) (model.ReadmeResult, error)
	FetchIssues(ctx context.Context, owner, repo string, criteria model.IssueSearchCriteria) ([]model.Issue, error)
}

// RepositoryMirror is the local persistence capability.
type RepositoryMirror interface {
	FindList(ctx context.Context, criteria model.SearchCriteria) ([]model.StoredRepository, error)
	BulkUpsert(ctx context.Context, repos []model.StoredRepository) error
}

// RepositoryService coordinates the fetch client and the mirror store. It
// owns no state of its own; every call is independent.
type RepositoryService struct {
	client RepositoryClient
	mirror RepositoryMirror
	logger *slog.Logger
}

// NewRepositoryService creates the enrichment service.
func NewRepositoryService(client RepositoryClient, mirror RepositoryMirror, logger *slog.Logger) *RepositoryService {
	return &RepositoryService{
		client: client,
		mirror: mirror,
		logger: logger,
	}
}

// FetchRepositories runs a repository search. Persistence is a separate,
// explicit operation; nothing is stored here.
func (s *RepositoryService) FetchRepositories(ctx context.Context, criteria model.SearchCriteria) (model.RepositoryCollection, error) {
	if criteria.MaxStars != nil && *criteria.MaxStars < criteria.MinStars {
		return model.RepositoryCollection{}, fmt.Errorf("max_stars %d is below min_stars %d", *criteria.MaxStars, criteria.MinStars)
	}
	return s.client.FetchRepositories(ctx, criteria)
}

// FetchTopReadme fetches a repository's README. A missing README surfaces as
// the typed ErrReadmeNotFound, distinct from transport errors.
func (s *RepositoryService) FetchTopReadme(ctx context.Context, owner, repo string) (model.ReadmeResult, error) {
	result, err := s.client.FetchTopReadme(ctx, owner, repo)
	if err != nil {
		return model.ReadmeResult{}, err
	}
	if !result.Found {
		return model.ReadmeResult{}, errs.ErrReadmeNotFound
	}
	return result, nil
}

// FetchIssues lists a repository's issues. No persistence.
func (s *RepositoryService) FetchIssues(ctx context.Context, owner, repo string, criteria model.IssueSearchCriteria) ([]model.Issue, error) {
	return s.client.FetchIssues(ctx, owner, repo, criteria)
}

// SaveRepositories mirrors fetched snapshots into local storage. Rows are
// overwritten wholesale on re-fetch. language is the search filter the
// snapshots were fetched under; search items do not carry it themselves.
func (s *RepositoryService) SaveRepositories(ctx context.Context, language string, repos []model.Repository) error {
	now := time.Now().UTC()
	rows := make([]model.StoredRepository, len(repos))
	for i, r := range repos {
		rows[i] = toStoredRepository(r, language, now)
	}

	if err := s.mirror.BulkUpsert(ctx, rows); err != nil {
		return err
	}
	s.logger.Info("Saved repositories to mirror", "count", len(rows))
	return nil
}

// ListStoredRepositories reads previously mirrored repositories under the
// given filter.
func (s *RepositoryService) ListStoredRepositories(ctx context.Context, criteria model.SearchCriteria) ([]model.StoredRepository, error) {
	return s.mirror.FindList(ctx, criteria)
}

// toStoredRepository translates a fetched snapshot to its storage form. The
// repo_name column carries the fully-qualified owner/name so mirrored rows
// can be re-fetched later.
func toStoredRepository(r model.Repository, language string, now time.Time) model.StoredRepository {
	return model.StoredRepository{
		ID:          r.ID,
		OwnerID:     r.Owner.ID,
		Name:        r.FullName,
		Language:    language,
		Stars:       r.StargazersCount,
		URL:         r.URL,
		Description: r.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
