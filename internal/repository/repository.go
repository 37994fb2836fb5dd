// Package repository holds the persistence boundary for accounts, job postings,
// applications and sessions, with a gorm/PostgreSQL adapter and an in-memory adapter.
package repository

import (
	"context"

	"github.com/justsurfingit/job-corner/internal/auth"
	"github.com/justsurfingit/job-corner/internal/models"
)

type AccountRepository interface {
	// CreateAccount inserts the account and its profile atomically.
	// A duplicate email yields apperrors.ErrEmailTaken.
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByEmail(ctx context.Context, email string) (models.Account, error)
	// GetAccount loads the account with its role-specific profile.
	GetAccount(ctx context.Context, accountID string) (models.Account, error)
}

type JobRepository interface {
	ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	GetJob(ctx context.Context, jobID string) (models.Job, error)
	CreateJob(ctx context.Context, job *models.Job) error
	UpdateJob(ctx context.Context, jobID string, patch models.JobPatch) (models.Job, error)
	// DeleteJob removes the posting and every application against it in one transaction.
	DeleteJob(ctx context.Context, jobID string) (removedApplications int64, err error)
}

type ApplicationRepository interface {
	HasApplied(ctx context.Context, applicantID, jobID string) (bool, error)
	// CreateApplication relies on the (applicant_id, job_id) unique constraint;
	// a duplicate yields apperrors.ErrAlreadyApplied.
	CreateApplication(ctx context.Context, application *models.Application) error
	ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]models.ApplicationView, error)
	ListApplicantsByJob(ctx context.Context, jobID string) ([]models.ApplicantView, error)
}

// Store is the full persistence surface used by the API process.
type Store interface {
	AccountRepository
	JobRepository
	ApplicationRepository
	auth.SessionRepository
}
