// internal/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	errs "github-contrib-finder/internal/errors"
	"github-contrib-finder/internal/model"
)

// RepositoryService is the enrichment capability the API exposes.
type RepositoryService interface {
	FetchRepositories(ctx context.Context, criteria model.SearchCriteria) (model.RepositoryCollection, error)
	FetchTopReadme(ctx context.Context, owner, repo string) (model.ReadmeResult, error)
	FetchIssues(ctx context.Context, owner, repo string, criteria model.IssueSearchCriteria) ([]model.Issue, error)
	SaveRepositories(ctx context.Context, language string, repos []model.Repository) error
	ListStoredRepositories(ctx context.Context, criteria model.SearchCriteria) ([]model.StoredRepository, error)
}

// InquiryService is the AI inquiry capability the API exposes.
type InquiryService interface {
	AskHowToContribute(ctx context.Context, owner, repo string) (model.InquiryResult, error)
}

// Handler is the container for API dependencies.
type Handler struct {
	repos   RepositoryService
	inquiry InquiryService
	logger  *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(repos RepositoryService, inquiry InquiryService, logger *slog.Logger) http.Handler {
	h := &Handler{
		repos:   repos,
		inquiry: inquiry,
		logger:  logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Route("/github/repositories", func(r chi.Router) {
			r.Post("/search-list", h.searchRepositories)
			r.Get("/stored", h.listStoredRepositories)
			r.Post("/stored", h.saveRepositories)
			r.Get("/{owner}/{name}/top-readme", h.getTopReadme)
			r.Get("/{owner}/{name}/issues", h.getIssues)
		})
		r.Get("/ai/{owner}/{name}/how-to-contribute", h.askHowToContribute)
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// searchRepositories runs a repository search against the code-hosting API.
// POST /v1/github/repositories/search-list
func (h *Handler) searchRepositories(w http.ResponseWriter, r *http.Request) {
	var criteria model.SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	collection, err := h.repos.FetchRepositories(r.Context(), criteria)
	if err != nil {
		h.logger.Error("Failed to search repositories", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, collection)
}

// getTopReadme fetches a repository's decoded README.
// GET /v1/github/repositories/{owner}/{name}/top-readme
func (h *Handler) getTopReadme(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	name := chi.URLParam(r, "name")

	readme, err := h.repos.FetchTopReadme(r.Context(), owner, name)
	if err != nil {
		if errors.Is(err, errs.ErrReadmeNotFound) {
			respondWithError(w, http.StatusNotFound, "README not found")
			return
		}
		h.logger.Error("Failed to fetch readme", "owner", owner, "repo", name, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, readme)
}

// getIssues lists a repository's issues under query-parameter filters.
// GET /v1/github/repositories/{owner}/{name}/issues
func (h *Handler) getIssues(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	name := chi.URLParam(r, "name")

	criteria := issueCriteriaFromQuery(r)
	issues, err := h.repos.FetchIssues(r.Context(), owner, name, criteria)
	if err != nil {
		h.logger.Error("Failed to fetch issues", "owner", owner, "repo", name, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, issues)
}

// listStoredRepositories reads the local mirror.
// GET /v1/github/repositories/stored?language=go&min_stars=100&max_stars=500
func (h *Handler) listStoredRepositories(w http.ResponseWriter, r *http.Request) {
	criteria := model.SearchCriteria{
		Language: r.URL.Query().Get("language"),
	}
	if v := r.URL.Query().Get("min_stars"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid 'min_stars' parameter")
			return
		}
		criteria.MinStars = n
	}
	if v := r.URL.Query().Get("max_stars"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid 'max_stars' parameter")
			return
		}
		criteria.MaxStars = &n
	}

	repos, err := h.repos.ListStoredRepositories(r.Context(), criteria)
	if err != nil {
		h.logger.Error("Failed to list stored repositories", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, repos)
}

// saveRepositories mirrors a fetched collection into local storage.
// POST /v1/github/repositories/stored
func (h *Handler) saveRepositories(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string             `json:"language"`
		Items    []model.Repository `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.repos.SaveRepositories(r.Context(), req.Language, req.Items); err != nil {
		h.logger.Error("Failed to save repositories", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"saved": len(req.Items)})
}

// askHowToContribute runs the AI inquiry path for a repository.
// GET /v1/ai/{owner}/{name}/how-to-contribute
func (h *Handler) askHowToContribute(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	name := chi.URLParam(r, "name")

	result, err := h.inquiry.AskHowToContribute(r.Context(), owner, name)
	if err != nil {
		h.logger.Error("AI inquiry failed", "owner", owner, "repo", name, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// issueCriteriaFromQuery maps query parameters onto IssueSearchCriteria.
// Absent parameters stay zero; the encoder applies the documented defaults.
func issueCriteriaFromQuery(r *http.Request) model.IssueSearchCriteria {
	q := r.URL.Query()
	criteria := model.IssueSearchCriteria{
		State:     model.IssueState(q.Get("state")),
		Assignee:  q.Get("assignee"),
		SortKey:   model.IssueSortKey(q.Get("sort_key")),
		SortOrder: model.SortOrder(q.Get("sort_order")),
	}
	if labels := q.Get("labels"); labels != "" {
		criteria.Labels = strings.Split(labels, ",")
	}
	return criteria
}
