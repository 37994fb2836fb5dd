package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-corner/internal/apperrors"
	"github.com/justsurfingit/job-corner/internal/dtos"
	"github.com/justsurfingit/job-corner/internal/services"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
	Logger             *slog.Logger
}

func NewApplicationHandler(a *services.ApplicationService, logger *slog.Logger) *ApplicationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationHandler{ApplicationService: a, Logger: logger}
}

// Apply is POST /apply (job_id in the body) and POST /apply/:jobId.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplyRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}
	jobID := strings.TrimSpace(c.Param("jobId"))
	if jobID == "" {
		jobID = strings.TrimSpace(req.JobID)
	}

	principal := principalFrom(c)
	if principal != nil && req.UserID != "" && req.UserID != principal.AccountID {
		respondError(c, h.Logger, apperrors.ErrForbidden)
		return
	}
	if principal != nil && jobID == "" {
		verr := apperrors.NewValidationError()
		verr.Add("job_id", "required")
		respondError(c, h.Logger, verr)
		return
	}

	application, err := h.ApplicationService.Apply(c.Request.Context(), principal, jobID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Application submitted successfully!",
		"application": application,
	})
}

// AppliedJobs is GET /applied-jobs.
func (h *ApplicationHandler) AppliedJobs(c *gin.Context) {
	views, err := h.ApplicationService.ListForApplicant(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied_jobs": views})
}

// JobApplicants is GET /job-applicants/:id.
func (h *ApplicationHandler) JobApplicants(c *gin.Context) {
	views, err := h.ApplicationService.ListForJob(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
