package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopbay/storefront-platform/internal/config"
	appErrors "github.com/shopbay/storefront-platform/internal/errors"
	"github.com/shopbay/storefront-platform/internal/metrics"
	"github.com/shopbay/storefront-platform/internal/models"
	repository "github.com/shopbay/storefront-platform/internal/repositories"
)

// SurveyService accepts at most one response per email and hands out a
// sequential discount code to the first N accepted submissions. Allocation
// atomicity lives in the repository transaction; this layer owns validation
// and normalization.
type SurveyService interface {
	Submit(ctx context.Context, req *models.SubmitSurveyRequest) (*models.SubmitSurveyResponse, error)
	Status(ctx context.Context) (*models.SurveyStatus, error)
}

type surveyService struct {
	repo      repository.SurveyRepository
	cfg       config.Survey
	sanitizer *bluemonday.Policy
}

func NewSurveyService(repo repository.SurveyRepository, cfg config.Survey) SurveyService {
	return &surveyService{
		repo:      repo,
		cfg:       cfg,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *surveyService) Submit(ctx context.Context, req *models.SubmitSurveyRequest) (*models.SubmitSurveyResponse, error) {

	// Emails are compared case-insensitively: the same address with
	// different casing is the same submitter.
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to check for an existing response").WithError(err)
	}

	if exists {
		return nil, appErrors.DuplicateEntryError("This email has already been used for a survey")
	}

	resp := &models.SurveyResponse{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Rating:       req.Rating,
		Feedback:     s.sanitizer.Sanitize(req.Feedback),
		Improvements: dedupe(req.Improvements),
	}

	sequence, err := s.repo.InsertWithAllocation(ctx, resp, s.cfg.PromoLimit)
	if err != nil {

		// The unique constraint is authoritative; the pre-check above only
		// exists to answer fast without burning a transaction.
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.DuplicateEntryError("This email has already been used for a survey")
		}

		return nil, appErrors.DatabaseError("Failed to record survey response").WithError(err)
	}

	result := &models.SubmitSurveyResponse{}

	if sequence <= s.cfg.PromoLimit {
		result.Eligible = true
		result.Sequence = sequence
		result.DiscountCode = s.FormatCode(sequence)

		metrics.PromoCodeIssued()
	}

	return result, nil
}

func (s *surveyService) Status(ctx context.Context) (*models.SurveyStatus, error) {

	total, err := s.repo.CountResponses(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to count survey responses").WithError(err)
	}

	remaining := s.cfg.PromoLimit - total
	if remaining < 0 {
		remaining = 0
	}

	return &models.SurveyStatus{
		TotalResponses: total,
		RemainingSlots: remaining,
	}, nil
}

// FormatCode derives the discount code from the allocation sequence, e.g.
// sequence 7 becomes SURVEY007.
func (s *surveyService) FormatCode(sequence int) string {
	return fmt.Sprintf("%s%0*d", s.cfg.PromoPrefix, s.cfg.SequenceDigits, sequence)
}

// dedupe keeps the first occurrence of each tag; selection order is not
// meaningful but stable output makes the stored row deterministic.
func dedupe(tags []string) []string {

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))

	for _, tag := range tags {

		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}

		if _, ok := seen[tag]; ok {
			continue
		}

		seen[tag] = struct{}{}

		out = append(out, tag)
	}

	return out
}
