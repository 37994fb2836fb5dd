package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-corner/internal/apperrors"
	"github.com/justsurfingit/job-corner/internal/auth"
	"github.com/justsurfingit/job-corner/internal/dtos"
	"github.com/justsurfingit/job-corner/internal/models"
	"github.com/justsurfingit/job-corner/internal/services"
)

type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	AccountService *services.AccountService
	Cookie         CookieConfig
	Logger         *slog.Logger
}

func NewAuthHandler(a *services.AccountService, cookie CookieConfig, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{AccountService: a, Cookie: cookie, Logger: logger}
}

// Register is POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	role, err := auth.ParseRole(req.UserType)
	if err != nil {
		verr := apperrors.NewValidationError()
		verr.Add("user_type", "must be employee or company")
		respondError(c, h.Logger, verr)
		return
	}

	in := services.RegisterInput{Email: req.Email, Password: req.Password, Role: role}
	switch role {
	case auth.RoleEmployee:
		in.Employee = &models.EmployeeProfile{
			Name:        req.Name,
			Skills:      req.Skills,
			Education:   req.Education,
			Experience:  req.Experience,
			Location:    req.Location,
			DateOfBirth: req.DateOfBirth,
		}
	case auth.RoleCompany:
		in.Company = &models.CompanyProfile{
			Name:               req.Name,
			CompanyName:        req.CompanyName,
			Industry:           req.Industry,
			CompanyDescription: req.CompanyDescription,
		}
	}

	account, err := h.AccountService.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully", "user_id": account.ID})
}

// Login is POST /login. The session token goes out as an HttpOnly cookie and in the body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	account, session, err := h.AccountService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	h.setCookie(c, session.Token, int(time.Until(session.ExpiresAt).Seconds()))
	c.JSON(http.StatusOK, dtos.LoginResponse{
		Message: "Login successful",
		User: dtos.LoginUser{
			Email:    account.Email,
			UserType: account.Role.String(),
			UserID:   account.ID,
		},
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	})
}

// Logout is POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(tokenKey)
	if principalFrom(c) == nil || token == "" {
		respondError(c, h.Logger, apperrors.ErrUnauthenticated)
		return
	}
	if err := h.AccountService.Logout(c.Request.Context(), token); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Profile is GET /profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	account, err := h.AccountService.Profile(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile fetched successfully", "user": account})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	// Cross-site SPA requests need SameSite=None, which browsers only accept on secure cookies.
	if h.Cookie.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.Cookie.Name, value, maxAge, "/", "", h.Cookie.Secure, true)
}
