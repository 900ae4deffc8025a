// internal/service/ai.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	errs "github-contrib-finder/internal/errors"
	"github-contrib-finder/internal/model"
	"github-contrib-finder/internal/openai"
)

// ReadmeFetcher is the capability the inquiry path needs from the enrichment
// service.
type ReadmeFetcher interface {
	FetchTopReadme(ctx context.Context, owner, repo string) (model.ReadmeResult, error)
}

// GenAIClient delegates a composed prompt to the language model and surfaces
// its raw transport status and reply text.
type GenAIClient interface {
	Inquire(ctx context.Context, content string) (openai.Reply, error)
}

// InquiryService composes contribution questions from repository READMEs.
type InquiryService struct {
	ai     GenAIClient
	repos  ReadmeFetcher
	logger *slog.Logger
}

// NewInquiryService creates the inquiry assembler.
func NewInquiryService(ai GenAIClient, repos ReadmeFetcher, logger *slog.Logger) *InquiryService {
	return &InquiryService{
		ai:     ai,
		repos:  repos,
		logger: logger,
	}
}

// AskHowToContribute fetches the repository's README and asks the language
// model how to start contributing. A missing README is a successful result
// carrying the readme_not_found status, not an error. Model transport errors
// propagate unchanged.
func (s *InquiryService) AskHowToContribute(ctx context.Context, owner, repo string) (model.InquiryResult, error) {
	readme, err := s.repos.FetchTopReadme(ctx, owner, repo)
	if errors.Is(err, errs.ErrReadmeNotFound) {
		s.logger.Info("Repository has no README", "owner", owner, "repo", repo)
		return model.InquiryResult{Status: model.StatusReadmeNotFound, Text: ""}, nil
	}
	if err != nil {
		return model.InquiryResult{}, err
	}

	prompt := fmt.Sprintf(
		"What do I have to study to contribute to %s/%s?\nReadme of the repository is below\n%s",
		owner, repo, *readme.Content,
	)

	reply, err := s.ai.Inquire(ctx, prompt)
	if err != nil {
		return model.InquiryResult{}, err
	}

	return model.InquiryResult{
		Status: model.StatusCode(reply.Status),
		Text:   reply.Text,
	}, nil
}
