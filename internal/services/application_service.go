package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-corner/internal/apperrors"
	"github.com/justsurfingit/job-corner/internal/auth"
	"github.com/justsurfingit/job-corner/internal/models"
	"github.com/justsurfingit/job-corner/internal/repository"
)

// ApplicationService owns applications. Jobs are only looked up, never modified.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	logger       *slog.Logger
}

func NewApplicationService(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	logger *slog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		jobs:         jobs,
		logger:       resolveLogger(logger),
	}
}

// Apply records the caller's application to jobID. At most one application per
// (applicant, job) can ever exist; the storage constraint decides concurrent races.
func (s *ApplicationService) Apply(ctx context.Context, p *auth.Principal, jobID string) (models.Application, error) {
	if err := auth.Authorize(p, auth.ActionApply, nil).Err(); err != nil {
		return models.Application{}, err
	}
	id, ok := parseID(jobID)
	if !ok {
		return models.Application{}, apperrors.ErrJobNotFound
	}
	if _, err := s.jobs.GetJob(ctx, id); err != nil {
		return models.Application{}, err
	}

	// Fast path only. CreateApplication is authoritative.
	applied, err := s.applications.HasApplied(ctx, p.AccountID, id)
	if err != nil {
		return models.Application{}, err
	}
	if applied {
		return models.Application{}, apperrors.ErrAlreadyApplied
	}

	application := &models.Application{
		ID:          uuid.NewString(),
		ApplicantID: p.AccountID,
		JobID:       id,
		Status:      models.ApplicationStatusSubmitted,
	}
	if err := s.applications.CreateApplication(ctx, application); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyApplied) {
			s.logger.Info("duplicate application rejected by constraint",
				"event", "application_conflict",
				"module", "services/application",
				"applicant_id", p.AccountID,
				"job_id", id,
			)
		}
		return models.Application{}, err
	}
	s.logger.Info("application submitted",
		"event", "application_submitted",
		"module", "services/application",
		"application_id", application.ID,
		"applicant_id", p.AccountID,
		"job_id", id,
	)
	return *application, nil
}

// ListForApplicant returns the caller's applications, most recent first.
func (s *ApplicationService) ListForApplicant(ctx context.Context, p *auth.Principal) ([]models.ApplicationView, error) {
	if err := auth.Authorize(p, auth.ActionListOwnApplications, nil).Err(); err != nil {
		return nil, err
	}
	return s.applications.ListApplicationsByApplicant(ctx, p.AccountID)
}

// ListForJob returns every applicant to a job owned by the calling company.
func (s *ApplicationService) ListForJob(ctx context.Context, p *auth.Principal, jobID string) ([]models.ApplicantView, error) {
	job, err := loadOwnedJob(ctx, s.jobs, p, auth.ActionListJobApplicants, jobID)
	if err != nil {
		return nil, err
	}
	return s.applications.ListApplicantsByJob(ctx, job.ID)
}
