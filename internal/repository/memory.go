package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/justsurfingit/job-corner/internal/apperrors"
	"github.com/justsurfingit/job-corner/internal/auth"
	"github.com/justsurfingit/job-corner/internal/models"
)

type applicationKey struct {
	applicantID string
	jobID       string
}

// Memory is a process-local Store. A single mutex makes every method atomic,
// which stands in for the unique constraints and transactions of the SQL schema.
type Memory struct {
	mu sync.RWMutex

	accounts       map[string]models.Account
	accountByEmail map[string]string

	jobs     map[string]models.Job
	jobOrder []string

	applications map[applicationKey]models.Application
	appSeq       map[applicationKey]int64
	seq          int64

	sessions map[string]auth.Session

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		accounts:       map[string]models.Account{},
		accountByEmail: map[string]string{},
		jobs:           map[string]models.Job{},
		applications:   map[applicationKey]models.Application{},
		appSeq:         map[applicationKey]int64{},
		sessions:       map[string]auth.Session{},
		now:            time.Now,
	}
}

func (m *Memory) CreateAccount(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(account.Email))
	if _, exists := m.accountByEmail[email]; exists {
		return apperrors.ErrEmailTaken
	}
	now := m.now().UTC()
	account.Email = email
	account.CreatedAt = now
	account.UpdatedAt = now
	if account.Employee != nil {
		account.Employee.AccountID = account.ID
	}
	if account.Company != nil {
		account.Company.AccountID = account.ID
	}
	m.accounts[account.ID] = cloneAccount(*account)
	m.accountByEmail[email] = account.ID
	return nil
}

func (m *Memory) GetAccountByEmail(_ context.Context, email string) (models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.accountByEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return models.Account{}, apperrors.ErrAccountNotFound
	}
	return cloneAccount(m.accounts[id]), nil
}

func (m *Memory) GetAccount(_ context.Context, accountID string) (models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[accountID]
	if !ok {
		return models.Account{}, apperrors.ErrAccountNotFound
	}
	return cloneAccount(account), nil
}

func (m *Memory) ListJobs(_ context.Context, filter models.JobFilter) ([]models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	location := strings.TrimSpace(filter.Location)
	mode := strings.TrimSpace(filter.WorkingMode)
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	out := []models.Job{}
	for i := len(m.jobOrder) - 1; i >= 0; i-- {
		job := m.jobs[m.jobOrder[i]]
		if location != "" && !strings.EqualFold(job.Location, location) {
			continue
		}
		if mode != "" && !strings.EqualFold(job.WorkingMode, mode) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(job.Title), query) &&
			!strings.Contains(strings.ToLower(job.Skills), query) {
			continue
		}
		out = append(out, m.withCompanyName(job))
	}
	return out, nil
}

func (m *Memory) GetJob(_ context.Context, jobID string) (models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return models.Job{}, apperrors.ErrJobNotFound
	}
	return m.withCompanyName(job), nil
}

func (m *Memory) CreateJob(_ context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	job.CompanyName = ""
	m.jobs[job.ID] = *job
	m.jobOrder = append(m.jobOrder, job.ID)
	return nil
}

func (m *Memory) UpdateJob(_ context.Context, jobID string, patch models.JobPatch) (models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return models.Job{}, apperrors.ErrJobNotFound
	}
	apply := func(dst *string, value *string) {
		if value != nil {
			*dst = strings.TrimSpace(*value)
		}
	}
	apply(&job.Title, patch.Title)
	apply(&job.Skills, patch.Skills)
	apply(&job.Education, patch.Education)
	apply(&job.WorkingMode, patch.WorkingMode)
	apply(&job.WorkingHours, patch.WorkingHours)
	apply(&job.Experience, patch.Experience)
	apply(&job.Package, patch.Package)
	apply(&job.Location, patch.Location)
	job.UpdatedAt = m.now().UTC()
	m.jobs[jobID] = job
	return m.withCompanyName(job), nil
}

func (m *Memory) DeleteJob(_ context.Context, jobID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[jobID]; !ok {
		return 0, apperrors.ErrJobNotFound
	}
	var removed int64
	for key := range m.applications {
		if key.jobID == jobID {
			delete(m.applications, key)
			delete(m.appSeq, key)
			removed++
		}
	}
	delete(m.jobs, jobID)
	for i, id := range m.jobOrder {
		if id == jobID {
			m.jobOrder = append(m.jobOrder[:i], m.jobOrder[i+1:]...)
			break
		}
	}
	return removed, nil
}

func (m *Memory) HasApplied(_ context.Context, applicantID, jobID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.applications[applicationKey{applicantID: applicantID, jobID: jobID}]
	return ok, nil
}

func (m *Memory) CreateApplication(_ context.Context, application *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[application.JobID]; !ok {
		return apperrors.ErrJobNotFound
	}
	key := applicationKey{applicantID: application.ApplicantID, jobID: application.JobID}
	if _, exists := m.applications[key]; exists {
		return apperrors.ErrAlreadyApplied
	}
	application.CreatedAt = m.now().UTC()
	if application.Status == "" {
		application.Status = models.ApplicationStatusSubmitted
	}
	m.seq++
	m.applications[key] = *application
	m.appSeq[key] = m.seq
	return nil
}

func (m *Memory) ListApplicationsByApplicant(_ context.Context, applicantID string) ([]models.ApplicationView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]applicationKey, 0)
	for key := range m.applications {
		if key.applicantID == applicantID {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return m.appSeq[keys[i]] > m.appSeq[keys[j]] })

	views := make([]models.ApplicationView, 0, len(keys))
	for _, key := range keys {
		app := m.applications[key]
		job := m.withCompanyName(m.jobs[key.jobID])
		views = append(views, models.ApplicationView{
			ApplicationID: app.ID,
			JobID:         job.ID,
			Title:         job.Title,
			Location:      job.Location,
			Package:       job.Package,
			CompanyName:   job.CompanyName,
			Status:        app.Status,
			AppliedAt:     app.CreatedAt,
		})
	}
	return views, nil
}

func (m *Memory) ListApplicantsByJob(_ context.Context, jobID string) ([]models.ApplicantView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]applicationKey, 0)
	for key := range m.applications {
		if key.jobID == jobID {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return m.appSeq[keys[i]] < m.appSeq[keys[j]] })

	views := make([]models.ApplicantView, 0, len(keys))
	for _, key := range keys {
		app := m.applications[key]
		account := m.accounts[key.applicantID]
		view := models.ApplicantView{
			ApplicantID: key.applicantID,
			Email:       account.Email,
			Status:      app.Status,
			AppliedAt:   app.CreatedAt,
		}
		if p := account.Employee; p != nil {
			view.Name = p.Name
			view.Skills = p.Skills
			view.Education = p.Education
			view.Experience = p.Experience
			view.Location = p.Location
			view.DateOfBirth = p.DateOfBirth
		}
		views = append(views, view)
	}
	return views, nil
}

func (m *Memory) CreateSession(_ context.Context, session auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Token] = session
	return nil
}

func (m *Memory) GetSession(_ context.Context, token string) (auth.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[token]
	if !ok {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return session, nil
}

func (m *Memory) DeleteSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[token]; !ok {
		return auth.ErrSessionNotFound
	}
	delete(m.sessions, token)
	return nil
}

// withCompanyName must be called with the lock held.
func (m *Memory) withCompanyName(job models.Job) models.Job {
	if owner, ok := m.accounts[job.CompanyID]; ok && owner.Company != nil {
		job.CompanyName = owner.Company.CompanyName
	}
	return job
}

func cloneAccount(account models.Account) models.Account {
	if account.Employee != nil {
		p := *account.Employee
		account.Employee = &p
	}
	if account.Company != nil {
		p := *account.Company
		account.Company = &p
	}
	return account
}

var _ Store = (*Memory)(nil)
