package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-corner/internal/dtos"
	"github.com/justsurfingit/job-corner/internal/models"
	"github.com/justsurfingit/job-corner/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
	Logger     *slog.Logger
}

func NewJobHandler(j *services.JobService, logger *slog.Logger) *JobHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobHandler{JobService: j, Logger: logger}
}

// ListJobs is GET /jobs. No session required.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var q dtos.JobListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	jobs, err := h.JobService.List(c.Request.Context(), models.JobFilter{
		Location:    q.Location,
		WorkingMode: q.WorkingMode,
		Query:       q.Query,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob is GET /job/:id.
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob is POST /company/post-job.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.JobService.Create(c.Request.Context(), principalFrom(c), req.Fields())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job posted successfully", "job": job})
}

// UpdateJob is PUT/PATCH /company/update-job/:id.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dtos.JobUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.JobService.Update(c.Request.Context(), principalFrom(c), c.Param("id"), req.Patch())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job updated successfully", "job": job})
}

// DeleteJob is DELETE /company/delete-job/:id.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.JobService.Delete(c.Request.Context(), principalFrom(c), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
