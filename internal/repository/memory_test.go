package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/justsurfingit/job-corner/internal/apperrors"
	"github.com/justsurfingit/job-corner/internal/auth"
	"github.com/justsurfingit/job-corner/internal/models"
)

func seedCompany(t *testing.T, store *Memory, id, name string) {
	t.Helper()
	err := store.CreateAccount(context.Background(), &models.Account{
		ID:      id,
		Email:   id + "@corp.example",
		Role:    auth.RoleCompany,
		Company: &models.CompanyProfile{CompanyName: name},
	})
	if err != nil {
		t.Fatalf("seed company failed: %v", err)
	}
}

func seedJob(t *testing.T, store *Memory, id, companyID, title string) {
	t.Helper()
	err := store.CreateJob(context.Background(), &models.Job{
		ID:        id,
		CompanyID: companyID,
		Title:     title,
		Skills:    "Go,SQL",
		Location:  "Remote",
	})
	if err != nil {
		t.Fatalf("seed job failed: %v", err)
	}
}

func TestMemoryEmailUniqueCaseInsensitive(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	if err := store.CreateAccount(ctx, &models.Account{ID: "a1", Email: "Ana@Example.com", Role: auth.RoleEmployee}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := store.CreateAccount(ctx, &models.Account{ID: "a2", Email: "ana@example.COM ", Role: auth.RoleCompany})
	if !errors.Is(err, apperrors.ErrEmailTaken) || !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected email taken conflict, got %v", err)
	}
	account, err := store.GetAccountByEmail(ctx, "ANA@example.com")
	if err != nil || account.ID != "a1" {
		t.Fatalf("unexpected lookup result %+v %v", account, err)
	}
}

func TestMemoryApplicationUniquenessUnderConcurrency(t *testing.T) {
	store := NewMemory()
	seedCompany(t, store, "c1", "Acme")
	seedJob(t, store, "j1", "c1", "Backend Engineer")

	var wg sync.WaitGroup
	var succeeded, conflicted atomic.Int64
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.CreateApplication(context.Background(), &models.Application{
				ID:          fmt.Sprintf("app-%d", i),
				ApplicantID: "e1",
				JobID:       "j1",
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, apperrors.ErrAlreadyApplied):
				conflicted.Add(1)
			default:
				t.Errorf("unexpected error %v", err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded.Load() != 1 || conflicted.Load() != 31 {
		t.Fatalf("expected 1 success and 31 conflicts, got %d and %d", succeeded.Load(), conflicted.Load())
	}
}

func TestMemoryCreateApplicationUnknownJob(t *testing.T) {
	store := NewMemory()
	err := store.CreateApplication(context.Background(), &models.Application{ID: "x", ApplicantID: "e1", JobID: "missing"})
	if !errors.Is(err, apperrors.ErrJobNotFound) {
		t.Fatalf("expected job not found, got %v", err)
	}
}

func TestMemoryDeleteJobCascadesApplications(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	seedCompany(t, store, "c1", "Acme")
	seedJob(t, store, "j1", "c1", "Backend Engineer")
	seedJob(t, store, "j2", "c1", "Frontend Engineer")

	for _, app := range []models.Application{
		{ID: "a1", ApplicantID: "e1", JobID: "j1"},
		{ID: "a2", ApplicantID: "e2", JobID: "j1"},
		{ID: "a3", ApplicantID: "e1", JobID: "j2"},
	} {
		app := app
		if err := store.CreateApplication(ctx, &app); err != nil {
			t.Fatalf("create application failed: %v", err)
		}
	}

	removed, err := store.DeleteJob(ctx, "j1")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed applications, got %d", removed)
	}
	if applied, _ := store.HasApplied(ctx, "e1", "j1"); applied {
		t.Fatalf("expected application for deleted job to be gone")
	}
	if applied, _ := store.HasApplied(ctx, "e1", "j2"); !applied {
		t.Fatalf("expected application for other job to remain")
	}
	if _, err := store.DeleteJob(ctx, "j1"); !errors.Is(err, apperrors.ErrJobNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	jobs, _ := store.ListJobs(ctx, models.JobFilter{})
	if len(jobs) != 1 || jobs[0].ID != "j2" {
		t.Fatalf("unexpected remaining jobs %+v", jobs)
	}
}

func TestMemoryListJobsFiltersAndCompanyName(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	seedCompany(t, store, "c1", "Acme")
	seedJob(t, store, "j1", "c1", "Backend Engineer")
	seedJob(t, store, "j2", "c1", "Designer")

	all, err := store.ListJobs(ctx, models.JobFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != "j2" {
		t.Fatalf("expected newest first, got %+v", all)
	}
	if all[0].CompanyName != "Acme" {
		t.Fatalf("expected company name, got %q", all[0].CompanyName)
	}

	filtered, _ := store.ListJobs(ctx, models.JobFilter{Query: "backend", Location: "remote"})
	if len(filtered) != 1 || filtered[0].ID != "j1" {
		t.Fatalf("unexpected filtered jobs %+v", filtered)
	}
}

func TestMemoryListApplicationsNewestFirst(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	seedCompany(t, store, "c1", "Acme")
	seedJob(t, store, "j1", "c1", "First")
	seedJob(t, store, "j2", "c1", "Second")

	for _, app := range []models.Application{
		{ID: "a1", ApplicantID: "e1", JobID: "j1"},
		{ID: "a2", ApplicantID: "e1", JobID: "j2"},
	} {
		app := app
		if err := store.CreateApplication(ctx, &app); err != nil {
			t.Fatalf("create application failed: %v", err)
		}
	}
	views, err := store.ListApplicationsByApplicant(ctx, "e1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 || views[0].JobID != "j2" || views[1].JobID != "j1" {
		t.Fatalf("expected newest first, got %+v", views)
	}
	if views[0].CompanyName != "Acme" || views[0].Status != models.ApplicationStatusSubmitted {
		t.Fatalf("unexpected view %+v", views[0])
	}
}

func TestMemorySessions(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	if err := store.CreateSession(ctx, auth.Session{Token: "t1", AccountID: "a1", Role: auth.RoleEmployee}); err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if s, err := store.GetSession(ctx, "t1"); err != nil || s.AccountID != "a1" {
		t.Fatalf("unexpected session %+v %v", s, err)
	}
	if err := store.DeleteSession(ctx, "t1"); err != nil {
		t.Fatalf("delete session failed: %v", err)
	}
	if _, err := store.GetSession(ctx, "t1"); !errors.Is(err, auth.ErrSessionNotFound) {
		t.Fatalf("expected session not found, got %v", err)
	}
}
