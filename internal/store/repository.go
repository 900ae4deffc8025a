// internal/store/repository.go
package store

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github-contrib-finder/internal/model"
)

const repoColumns = "id, owner_id, repo_name, lang, stars, url, description, readme, created_at, updated_at"

// unboundedStars substitutes for a missing upper bound so the range predicate
// always binds two concrete parameters.
const unboundedStars = math.MaxInt32

// Conn is the subset of pgxpool.Pool the store needs. The pool is safe for
// concurrent use; every query goes through a pooled connection.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RepositoryStore mirrors fetched repository metadata in the gh_repo table.
// All values are bound as parameters, never interpolated.
type RepositoryStore struct {
	db     Conn
	logger *slog.Logger
}

// NewRepositoryStore creates a store over the given connection pool.
func NewRepositoryStore(db Conn, logger *slog.Logger) *RepositoryStore {
	return &RepositoryStore{
		db:     db,
		logger: logger,
	}
}

// FindList returns mirrored repositories matching the language exactly and
// falling in the inclusive star range, ordered by stars descending.
func (s *RepositoryStore) FindList(ctx context.Context, criteria model.SearchCriteria) ([]model.StoredRepository, error) {
	query, args := buildFindListQuery(criteria)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying mirrored repositories: %w", err)
	}
	defer rows.Close()

	var repos []model.StoredRepository
	for rows.Next() {
		var r model.StoredRepository
		err := rows.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Language, &r.Stars,
			&r.URL, &r.Description, &r.Readme, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning mirrored repository: %w", err)
		}
		repos = append(repos, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return repos, nil
}

// BulkUpsert persists all rows in a single multi-row statement, overwriting
// existing rows wholesale. An empty batch executes no statement at all. A
// failure is whole-batch; no partial-row success is reported.
func (s *RepositoryStore) BulkUpsert(ctx context.Context, repos []model.StoredRepository) error {
	query, args, ok := buildBulkUpsertQuery(repos)
	if !ok {
		return nil
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("bulk upserting %d repositories: %w", len(repos), err)
	}

	s.logger.Debug("Mirrored repositories", "count", len(repos))
	return nil
}

// buildFindListQuery renders the parameterized select for FindList. When the
// caller supplies no upper star bound, an effectively-unbounded sentinel is
// substituted.
func buildFindListQuery(criteria model.SearchCriteria) (string, []any) {
	maxStars := unboundedStars
	if criteria.MaxStars != nil {
		maxStars = *criteria.MaxStars
	}

	query := "SELECT " + repoColumns + " FROM gh_repo" +
		" WHERE lang = $1 AND stars >= $2 AND stars <= $3" +
		" ORDER BY stars DESC"
	args := []any{criteria.Language, criteria.MinStars, maxStars}
	return query, args
}

// buildBulkUpsertQuery renders one multi-row insert covering all rows. ok is
// false for an empty batch; a statement with zero value rows is never emitted.
func buildBulkUpsertQuery(repos []model.StoredRepository) (string, []any, bool) {
	if len(repos) == 0 {
		return "", nil, false
	}

	var b strings.Builder
	b.WriteString("INSERT INTO gh_repo (" + repoColumns + ") VALUES ")

	args := make([]any, 0, len(repos)*10)
	for i, r := range repos {
		if i > 0 {
			b.WriteString(", ")
		}
		base := i * 10
		b.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10))
		args = append(args, r.ID, r.OwnerID, r.Name, r.Language, r.Stars,
			r.URL, r.Description, r.Readme, r.CreatedAt, r.UpdatedAt)
	}

	b.WriteString(" ON CONFLICT (id) DO UPDATE SET" +
		" owner_id = EXCLUDED.owner_id, repo_name = EXCLUDED.repo_name," +
		" lang = EXCLUDED.lang, stars = EXCLUDED.stars, url = EXCLUDED.url," +
		" description = EXCLUDED.description, readme = EXCLUDED.readme," +
		" updated_at = EXCLUDED.updated_at")

	return b.String(), args, true
}
