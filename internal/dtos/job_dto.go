package dtos

import "github.com/justsurfingit/job-corner/internal/models"

// JobCreationRequest carries no binding rules. The job service
// reports every missing field at once.
type JobCreationRequest struct {
	Title        string `json:"title"`
	Skills       string `json:"skills"`
	Education    string `json:"education"`
	WorkingMode  string `json:"working_mode"`
	WorkingHours string `json:"working_hours"`
	Experience   string `json:"experience"`
	Package      string `json:"package"`
	Location     string `json:"location"`
}

func (r JobCreationRequest) Fields() models.JobFields {
	return models.JobFields{
		Title:        r.Title,
		Skills:       r.Skills,
		Education:    r.Education,
		WorkingMode:  r.WorkingMode,
		WorkingHours: r.WorkingHours,
		Experience:   r.Experience,
		Package:      r.Package,
		Location:     r.Location,
	}
}

// JobUpdateRequest carries a partial update; omitted keys stay unchanged.
type JobUpdateRequest struct {
	Title        *string `json:"title"`
	Skills       *string `json:"skills"`
	Education    *string `json:"education"`
	WorkingMode  *string `json:"working_mode"`
	WorkingHours *string `json:"working_hours"`
	Experience   *string `json:"experience"`
	Package      *string `json:"package"`
	Location     *string `json:"location"`
}

func (r JobUpdateRequest) Patch() models.JobPatch {
	return models.JobPatch{
		Title:        r.Title,
		Skills:       r.Skills,
		Education:    r.Education,
		WorkingMode:  r.WorkingMode,
		WorkingHours: r.WorkingHours,
		Experience:   r.Experience,
		Package:      r.Package,
		Location:     r.Location,
	}
}

type JobListQuery struct {
	Location    string `form:"location"`
	WorkingMode string `form:"working_mode"`
	Query       string `form:"q"`
}

type ApplyRequest struct {
	JobID string `json:"job_id"`
	// UserID is accepted for compatibility with older clients and must match the session.
	UserID string `json:"user_id"`
}
