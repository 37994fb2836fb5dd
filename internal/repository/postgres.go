package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justsurfingit/job-corner/internal/apperrors"
	"github.com/justsurfingit/job-corner/internal/auth"
	"github.com/justsurfingit/job-corner/internal/models"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Postgres struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPostgres(db *gorm.DB, logger *slog.Logger) *Postgres {
	if logger == nil {
		logger = slog.Default()
	}
	return &Postgres{db: db, logger: logger}
}

func (r *Postgres) CreateAccount(ctx context.Context, account *models.Account) error {
	// gorm creates the has-one profile in the same transaction as the account row.
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrEmailTaken
		}
		return r.logError("repo_create_account_failed", err, "email", account.Email)
	}
	return nil
}

func (r *Postgres) GetAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	var row models.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Account{}, apperrors.ErrAccountNotFound
		}
		return models.Account{}, r.logError("repo_get_account_by_email_failed", err)
	}
	return row, nil
}

func (r *Postgres) GetAccount(ctx context.Context, accountID string) (models.Account, error) {
	var row models.Account
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Company").
		Where("id = ?", accountID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Account{}, apperrors.ErrAccountNotFound
		}
		return models.Account{}, r.logError("repo_get_account_failed", err, "account_id", accountID)
	}
	return row, nil
}

func (r *Postgres) jobsWithCompany(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Job{}).
		Select("jobs.*, COALESCE(company_profiles.company_name, '') AS company_name").
		Joins("LEFT JOIN company_profiles ON company_profiles.account_id = jobs.company_id")
}

func (r *Postgres) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	tx := r.jobsWithCompany(ctx)
	if v := strings.TrimSpace(filter.Location); v != "" {
		tx = tx.Where("LOWER(jobs.location) = LOWER(?)", v)
	}
	if v := strings.TrimSpace(filter.WorkingMode); v != "" {
		tx = tx.Where("LOWER(jobs.working_mode) = LOWER(?)", v)
	}
	if v := strings.TrimSpace(filter.Query); v != "" {
		pattern := "%" + v + "%"
		tx = tx.Where("jobs.title ILIKE ? OR jobs.skills ILIKE ?", pattern, pattern)
	}

	jobs := []models.Job{}
	if err := tx.Order("jobs.created_at DESC").Find(&jobs).Error; err != nil {
		return nil, r.logError("repo_list_jobs_failed", err)
	}
	return jobs, nil
}

func (r *Postgres) GetJob(ctx context.Context, jobID string) (models.Job, error) {
	var job models.Job
	err := r.jobsWithCompany(ctx).Where("jobs.id = ?", jobID).Take(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Job{}, apperrors.ErrJobNotFound
		}
		return models.Job{}, r.logError("repo_get_job_failed", err, "job_id", jobID)
	}
	return job, nil
}

func (r *Postgres) CreateJob(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return r.logError("repo_create_job_failed", err, "company_id", job.CompanyID)
	}
	return nil
}

func (r *Postgres) UpdateJob(ctx context.Context, jobID string, patch models.JobPatch) (models.Job, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Job
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", jobID).
			Take(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrJobNotFound
			}
			return err
		}
		updates := patchColumns(patch)
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&row).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrJobNotFound) {
			return models.Job{}, err
		}
		return models.Job{}, r.logError("repo_update_job_failed", err, "job_id", jobID)
	}
	return r.GetJob(ctx, jobID)
}

func (r *Postgres) DeleteJob(ctx context.Context, jobID string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apps := tx.Where("job_id = ?", jobID).Delete(&models.Application{})
		if apps.Error != nil {
			return apps.Error
		}
		job := tx.Where("id = ?", jobID).Delete(&models.Job{})
		if job.Error != nil {
			return job.Error
		}
		if job.RowsAffected == 0 {
			return apperrors.ErrJobNotFound
		}
		removed = apps.RowsAffected
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrJobNotFound) {
			return 0, err
		}
		return 0, r.logError("repo_delete_job_failed", err, "job_id", jobID)
	}
	return removed, nil
}

func (r *Postgres) HasApplied(ctx context.Context, applicantID, jobID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("applicant_id = ? AND job_id = ?", applicantID, jobID).
		Count(&count).Error
	if err != nil {
		return false, r.logError("repo_has_applied_failed", err,
			"applicant_id", applicantID,
			"job_id", jobID,
		)
	}
	return count > 0, nil
}

func (r *Postgres) CreateApplication(ctx context.Context, application *models.Application) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		switch {
		case isUniqueViolation(err):
			return apperrors.ErrAlreadyApplied
		case isForeignKeyViolation(err):
			return apperrors.ErrJobNotFound
		}
		return r.logError("repo_create_application_failed", err,
			"applicant_id", application.ApplicantID,
			"job_id", application.JobID,
		)
	}
	return nil
}

func (r *Postgres) ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]models.ApplicationView, error) {
	views := []models.ApplicationView{}
	err := r.db.WithContext(ctx).
		Table("applications AS a").
		Select(`a.id AS application_id, a.job_id, j.title, j.location, j.package,
			COALESCE(cp.company_name, '') AS company_name, a.status, a.created_at AS applied_at`).
		Joins("JOIN jobs AS j ON j.id = a.job_id").
		Joins("LEFT JOIN company_profiles AS cp ON cp.account_id = j.company_id").
		Where("a.applicant_id = ?", applicantID).
		Order("a.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, r.logError("repo_list_applications_by_applicant_failed", err, "applicant_id", applicantID)
	}
	return views, nil
}

func (r *Postgres) ListApplicantsByJob(ctx context.Context, jobID string) ([]models.ApplicantView, error) {
	views := []models.ApplicantView{}
	err := r.db.WithContext(ctx).
		Table("applications AS a").
		Select(`a.applicant_id, acc.email,
			COALESCE(ep.name, '') AS name, COALESCE(ep.skills, '') AS skills,
			COALESCE(ep.education, '') AS education, COALESCE(ep.experience, '') AS experience,
			COALESCE(ep.location, '') AS location, COALESCE(ep.date_of_birth, '') AS date_of_birth,
			a.status, a.created_at AS applied_at`).
		Joins("JOIN accounts AS acc ON acc.id = a.applicant_id").
		Joins("LEFT JOIN employee_profiles AS ep ON ep.account_id = a.applicant_id").
		Where("a.job_id = ?", jobID).
		Order("a.created_at ASC").
		Scan(&views).Error
	if err != nil {
		return nil, r.logError("repo_list_applicants_by_job_failed", err, "job_id", jobID)
	}
	return views, nil
}

func (r *Postgres) CreateSession(ctx context.Context, session auth.Session) error {
	row := models.Session{
		Token:     session.Token,
		AccountID: session.AccountID,
		Role:      session.Role,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("repo_create_session_failed", err, "account_id", session.AccountID)
	}
	return nil
}

func (r *Postgres) GetSession(ctx context.Context, token string) (auth.Session, error) {
	var row models.Session
	err := r.db.WithContext(ctx).Where("token = ?", token).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, r.logError("repo_get_session_failed", err)
	}
	return auth.Session{
		Token:     row.Token,
		AccountID: row.AccountID,
		Role:      row.Role,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

func (r *Postgres) DeleteSession(ctx context.Context, token string) error {
	res := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{})
	if res.Error != nil {
		return r.logError("repo_delete_session_failed", res.Error)
	}
	if res.RowsAffected == 0 {
		return auth.ErrSessionNotFound
	}
	return nil
}

func (r *Postgres) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+6)
	fields = append(fields,
		"event", event,
		"module", "repository",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("repository operation failed", fields...)
	return err
}

func patchColumns(patch models.JobPatch) map[string]any {
	updates := map[string]any{}
	set := func(column string, value *string) {
		if value != nil {
			updates[column] = strings.TrimSpace(*value)
		}
	}
	set("title", patch.Title)
	set("skills", patch.Skills)
	set("education", patch.Education)
	set("working_mode", patch.WorkingMode)
	set("working_hours", patch.WorkingHours)
	set("experience", patch.Experience)
	set("package", patch.Package)
	set("location", patch.Location)
	return updates
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

var _ Store = (*Postgres)(nil)
