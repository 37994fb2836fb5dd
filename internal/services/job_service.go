package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-corner/internal/apperrors"
	"github.com/justsurfingit/job-corner/internal/auth"
	"github.com/justsurfingit/job-corner/internal/models"
	"github.com/justsurfingit/job-corner/internal/repository"
)

// JobService owns the job posting lifecycle.
type JobService struct {
	jobs   repository.JobRepository
	logger *slog.Logger
}

func NewJobService(jobs repository.JobRepository, logger *slog.Logger) *JobService {
	return &JobService{
		jobs:   jobs,
		logger: resolveLogger(logger),
	}
}

// List is public; it never consults the session.
func (s *JobService) List(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	return s.jobs.ListJobs(ctx, filter)
}

func (s *JobService) Get(ctx context.Context, jobID string) (models.Job, error) {
	id, ok := parseID(jobID)
	if !ok {
		return models.Job{}, apperrors.ErrJobNotFound
	}
	return s.jobs.GetJob(ctx, id)
}

// Create posts a job owned by the calling company. The owner always comes from the session.
func (s *JobService) Create(ctx context.Context, p *auth.Principal, fields models.JobFields) (models.Job, error) {
	if err := auth.Authorize(p, auth.ActionCreateJob, nil).Err(); err != nil {
		return models.Job{}, err
	}
	fields = trimFields(fields)
	if err := validateJobFields(fields); err != nil {
		return models.Job{}, err
	}

	job := &models.Job{
		ID:           uuid.NewString(),
		CompanyID:    p.AccountID,
		Title:        fields.Title,
		Skills:       fields.Skills,
		Education:    fields.Education,
		WorkingMode:  fields.WorkingMode,
		WorkingHours: fields.WorkingHours,
		Experience:   fields.Experience,
		Package:      fields.Package,
		Location:     fields.Location,
	}
	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return models.Job{}, err
	}
	s.logger.Info("job posted",
		"event", "job_created",
		"module", "services/job",
		"job_id", job.ID,
		"company_id", job.CompanyID,
	)
	return s.jobs.GetJob(ctx, job.ID)
}

func (s *JobService) Update(ctx context.Context, p *auth.Principal, jobID string, patch models.JobPatch) (models.Job, error) {
	job, err := loadOwnedJob(ctx, s.jobs, p, auth.ActionUpdateJob, jobID)
	if err != nil {
		return models.Job{}, err
	}
	if err := validateJobPatch(patch); err != nil {
		return models.Job{}, err
	}
	updated, err := s.jobs.UpdateJob(ctx, job.ID, patch)
	if err != nil {
		return models.Job{}, err
	}
	s.logger.Info("job updated",
		"event", "job_updated",
		"module", "services/job",
		"job_id", job.ID,
		"company_id", p.AccountID,
	)
	return updated, nil
}

// Delete removes the posting and cascades to its applications.
func (s *JobService) Delete(ctx context.Context, p *auth.Principal, jobID string) error {
	job, err := loadOwnedJob(ctx, s.jobs, p, auth.ActionDeleteJob, jobID)
	if err != nil {
		return err
	}
	removed, err := s.jobs.DeleteJob(ctx, job.ID)
	if err != nil {
		return err
	}
	s.logger.Info("job deleted",
		"event", "job_deleted",
		"module", "services/job",
		"job_id", job.ID,
		"company_id", p.AccountID,
		"removed_applications", removed,
	)
	return nil
}

// loadOwnedJob runs the role check, resolves the job and then the ownership check, in that order.
func loadOwnedJob(ctx context.Context, jobs repository.JobRepository, p *auth.Principal, action auth.Action, jobID string) (models.Job, error) {
	if err := auth.RequireRole(p, action); err != nil {
		return models.Job{}, err
	}
	id, ok := parseID(jobID)
	if !ok {
		return models.Job{}, apperrors.ErrJobNotFound
	}
	job, err := jobs.GetJob(ctx, id)
	if err != nil {
		return models.Job{}, err
	}
	if err := auth.Authorize(p, action, &auth.Resource{OwnerID: job.CompanyID}).Err(); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

func trimFields(f models.JobFields) models.JobFields {
	return models.JobFields{
		Title:        strings.TrimSpace(f.Title),
		Skills:       strings.TrimSpace(f.Skills),
		Education:    strings.TrimSpace(f.Education),
		WorkingMode:  strings.TrimSpace(f.WorkingMode),
		WorkingHours: strings.TrimSpace(f.WorkingHours),
		Experience:   strings.TrimSpace(f.Experience),
		Package:      strings.TrimSpace(f.Package),
		Location:     strings.TrimSpace(f.Location),
	}
}

func validateJobFields(f models.JobFields) error {
	verr := apperrors.NewValidationError()
	for name, value := range map[string]string{
		"title":         f.Title,
		"skills":        f.Skills,
		"education":     f.Education,
		"working_mode":  f.WorkingMode,
		"working_hours": f.WorkingHours,
		"experience":    f.Experience,
		"package":       f.Package,
		"location":      f.Location,
	} {
		if value == "" {
			verr.Add(name, "required")
		}
	}
	return verr.OrNil()
}

// validateJobPatch rejects fields that are present but blank.
func validateJobPatch(p models.JobPatch) error {
	verr := apperrors.NewValidationError()
	for name, value := range map[string]*string{
		"title":         p.Title,
		"skills":        p.Skills,
		"education":     p.Education,
		"working_mode":  p.WorkingMode,
		"working_hours": p.WorkingHours,
		"experience":    p.Experience,
		"package":       p.Package,
		"location":      p.Location,
	} {
		if value != nil && strings.TrimSpace(*value) == "" {
			verr.Add(name, "must not be empty")
		}
	}
	return verr.OrNil()
}

func parseID(raw string) (string, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
