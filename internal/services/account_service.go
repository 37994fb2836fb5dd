package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-corner/internal/apperrors"
	"github.com/justsurfingit/job-corner/internal/auth"
	"github.com/justsurfingit/job-corner/internal/models"
	"github.com/justsurfingit/job-corner/internal/repository"
)

type RegisterInput struct {
	Email    string
	Password string
	Role     auth.Role
	Employee *models.EmployeeProfile
	Company  *models.CompanyProfile
}

type AccountService struct {
	accounts repository.AccountRepository
	sessions *auth.SessionStore
	logger   *slog.Logger
}

func NewAccountService(accounts repository.AccountRepository, sessions *auth.SessionStore, logger *slog.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		sessions: sessions,
		logger:   resolveLogger(logger),
	}
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (models.Account, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	verr := apperrors.NewValidationError()
	if email == "" || !strings.Contains(email, "@") {
		verr.Add("email", "a valid email is required")
	}
	if in.Password == "" {
		verr.Add("password", "required")
	}
	if !in.Role.Valid() {
		verr.Add("user_type", "must be employee or company")
	}
	switch in.Role {
	case auth.RoleEmployee:
		if in.Employee == nil || strings.TrimSpace(in.Employee.Name) == "" {
			verr.Add("name", "required")
		}
	case auth.RoleCompany:
		if in.Company == nil || strings.TrimSpace(in.Company.CompanyName) == "" {
			verr.Add("company_name", "required")
		}
	}
	if err := verr.OrNil(); err != nil {
		return models.Account{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.Account{}, err
	}
	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	// Only the profile matching the role is persisted.
	if in.Role == auth.RoleEmployee {
		profile := *in.Employee
		account.Employee = &profile
	} else {
		profile := *in.Company
		account.Company = &profile
	}

	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return models.Account{}, err
	}
	s.logger.Info("account registered",
		"event", "account_registered",
		"module", "services/account",
		"account_id", account.ID,
		"role", account.Role.String(),
	)
	return *account, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (models.Account, auth.Session, error) {
	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrAccountNotFound) {
		return models.Account{}, auth.Session{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return models.Account{}, auth.Session{}, err
	}
	ok, err := auth.CheckPassword(account.PasswordHash, password)
	if err != nil {
		return models.Account{}, auth.Session{}, err
	}
	if !ok {
		return models.Account{}, auth.Session{}, apperrors.ErrInvalidCredentials
	}
	session, err := s.sessions.Establish(ctx, account.ID, account.Role)
	if err != nil {
		return models.Account{}, auth.Session{}, err
	}
	return account, session, nil
}

func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

func (s *AccountService) Profile(ctx context.Context, p *auth.Principal) (models.Account, error) {
	if p == nil || p.AccountID == "" {
		return models.Account{}, apperrors.ErrUnauthenticated
	}
	return s.accounts.GetAccount(ctx, p.AccountID)
}
