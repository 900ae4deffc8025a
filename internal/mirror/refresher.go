// internal/mirror/refresher.go
package mirror

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	gh "github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	errs "github-contrib-finder/internal/errors"
	"github-contrib-finder/internal/model"
)

// Store is the persistence capability the refresher needs.
type Store interface {
	FindList(ctx context.Context, criteria model.SearchCriteria) ([]model.StoredRepository, error)
	BulkUpsert(ctx context.Context, repos []model.StoredRepository) error
}

// RepositoryFetcher fetches a single repository's current metadata and README.
type RepositoryFetcher interface {
	Fetch(ctx context.Context, owner, name string) (*gh.Repository, string, error)
}

// Refresher periodically re-fetches mirrored repositories so stored snapshots
// do not go stale. Each cycle refreshes the rows stored under the configured
// languages and overwrites them wholesale.
type Refresher struct {
	fetcher     RepositoryFetcher
	store       Store
	logger      *slog.Logger
	languages   []string
	interval    time.Duration
	concurrency int
}

// NewRefresher creates a Refresher. interval <= 0 disables the loop.
func NewRefresher(fetcher RepositoryFetcher, store Store, logger *slog.Logger, languages []string, interval time.Duration, concurrency int) *Refresher {
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Refresher{
		fetcher:     fetcher,
		store:       store,
		logger:      logger,
		languages:   languages,
		interval:    interval,
		concurrency: concurrency,
	}
}

// Start begins the continuous refresh process. It blocks until ctx is done.
func (r *Refresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info("Mirror refresher disabled")
		return
	}

	r.logger.Info("Starting mirror refresher", "interval", r.interval.String(), "concurrency", r.concurrency)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.runCycle(ctx)

	for {
		select {
		case <-ticker.C:
			r.runCycle(ctx)
		case <-ctx.Done():
			r.logger.Info("Mirror refresher shutting down", "reason", ctx.Err())
			return
		}
	}
}

// runCycle refreshes all mirrored rows for the configured languages.
func (r *Refresher) runCycle(ctx context.Context) {
	for _, language := range r.languages {
		rows, err := r.store.FindList(ctx, model.SearchCriteria{Language: language})
		if err != nil {
			r.logger.Error("Failed to list mirrored repositories", "language", language, "error", err)
			continue
		}
		if len(rows) == 0 {
			continue
		}

		refreshed := r.refreshRows(ctx, rows)
		if len(refreshed) == 0 {
			continue
		}

		if err := r.store.BulkUpsert(ctx, refreshed); err != nil {
			r.logger.Error("Failed to persist refreshed repositories", "language", language, "error", err)
			continue
		}
		r.logger.Info("Refreshed mirrored repositories", "language", language, "count", len(refreshed))
	}
}

// refreshRows fetches current snapshots for the given rows concurrently.
// Rows that fail to refresh are logged and skipped; the rest still persist.
func (r *Refresher) refreshRows(ctx context.Context, rows []model.StoredRepository) []model.StoredRepository {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	var mu sync.Mutex
	var refreshed []model.StoredRepository

	for _, row := range rows {
		row := row
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			snapshot, err := r.refreshRow(gctx, row)
			if err != nil && !errors.Is(err, context.Canceled) {
				r.logger.Error("Failed to refresh repository", "repo", row.Name, "error", err)
				return nil
			}
			if err == nil {
				mu.Lock()
				refreshed = append(refreshed, snapshot)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return refreshed
}

// refreshRow re-fetches one mirrored repository by its stored owner/name.
func (r *Refresher) refreshRow(ctx context.Context, row model.StoredRepository) (model.StoredRepository, error) {
	owner, name, err := splitFullName(row.Name)
	if err != nil {
		return model.StoredRepository{}, err
	}

	repo, readme, err := r.fetcher.Fetch(ctx, owner, name)
	if err != nil {
		return model.StoredRepository{}, err
	}

	return model.StoredRepository{
		ID:          repo.GetID(),
		OwnerID:     repo.GetOwner().GetID(),
		Name:        repo.GetFullName(),
		Language:    row.Language,
		Stars:       repo.GetStargazersCount(),
		URL:         repo.GetHTMLURL(),
		Description: repo.GetDescription(),
		Readme:      readme,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}, nil
}

// splitFullName parses a stored 'owner/name' reference.
func splitFullName(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &errs.ErrInvalidRepoPath{Path: fullName}
	}
	return parts[0], parts[1], nil
}

// GithubFetcher is the production RepositoryFetcher, backed by the GitHub SDK.
type GithubFetcher struct {
	gh *gh.Client
}

// NewGithubFetcher builds a fetcher authenticated with the given token.
func NewGithubFetcher(token string) *GithubFetcher {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return &GithubFetcher{gh: gh.NewClient(tc)}
}

// Fetch returns the repository's current metadata and decoded README text. A
// repository without a README yields empty text, not an error.
func (f *GithubFetcher) Fetch(ctx context.Context, owner, name string) (*gh.Repository, string, error) {
	repo, _, err := f.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, "", err
	}

	readme, resp, err := f.gh.Repositories.GetReadme(ctx, owner, name, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			return repo, "", nil
		}
		return nil, "", err
	}
	content, err := readme.GetContent()
	if err != nil {
		return nil, "", err
	}

	return repo, content, nil
}
