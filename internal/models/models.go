package models

import (
	"time"

	"github.com/justsurfingit/job-corner/internal/auth"
)

const ApplicationStatusSubmitted = "submitted"

type Account struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	// Role is written once at registration.
	Role auth.Role `gorm:"type:varchar(16);not null;<-:create" json:"user_type"`

	Employee *EmployeeProfile `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"employee_details,omitempty"`
	Company  *CompanyProfile  `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"company_details,omitempty"`
}

type EmployeeProfile struct {
	AccountID   string `gorm:"primaryKey;type:uuid" json:"-"`
	Name        string `json:"name"`
	Skills      string `gorm:"type:text" json:"skills"`
	Education   string `json:"education"`
	Experience  string `json:"experience"`
	Location    string `json:"location"`
	DateOfBirth string `json:"date_of_birth"`
}

type CompanyProfile struct {
	AccountID          string `gorm:"primaryKey;type:uuid" json:"-"`
	Name               string `json:"name"`
	CompanyName        string `gorm:"not null" json:"company_name"`
	Industry           string `json:"industry"`
	CompanyDescription string `gorm:"type:text" json:"company_description"`
}

type Job struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owning company. Never updated after insert.
	CompanyID   string `gorm:"type:uuid;not null;index;<-:create" json:"company_id"`
	CompanyName string `gorm:"-:migration;->" json:"company_name,omitempty"`

	Title        string `gorm:"not null" json:"title"`
	Skills       string `gorm:"type:text;not null" json:"skills"`
	Education    string `gorm:"not null" json:"education"`
	WorkingMode  string `gorm:"not null" json:"working_mode"`
	WorkingHours string `gorm:"not null" json:"working_hours"`
	Experience   string `gorm:"not null" json:"experience"`
	Package      string `gorm:"not null" json:"package"`
	Location     string `gorm:"not null" json:"location"`

	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

// JobFields is the full set of caller-supplied posting attributes.
type JobFields struct {
	Title        string
	Skills       string
	Education    string
	WorkingMode  string
	WorkingHours string
	Experience   string
	Package      string
	Location     string
}

// JobPatch is a partial update; nil fields are left unchanged.
type JobPatch struct {
	Title        *string
	Skills       *string
	Education    *string
	WorkingMode  *string
	WorkingHours *string
	Experience   *string
	Package      *string
	Location     *string
}

type JobFilter struct {
	Location    string
	WorkingMode string
	Query       string
}

type Application struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	ApplicantID string    `gorm:"type:uuid;not null;uniqueIndex:idx_applications_applicant_job" json:"applicant_id"`
	JobID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_applications_applicant_job;index" json:"job_id"`
	Status      string    `gorm:"type:varchar(16);not null;default:'submitted'" json:"status"`
}

// ApplicationView is an application as seen by its applicant.
type ApplicationView struct {
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	Title         string    `json:"title"`
	Location      string    `json:"location"`
	Package       string    `json:"package"`
	CompanyName   string    `json:"company_name"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"applied_at"`
}

// ApplicantView is an applicant's profile as seen by the posting company.
type ApplicantView struct {
	ApplicantID string    `json:"applicant_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Skills      string    `json:"skills"`
	Education   string    `json:"education"`
	Experience  string    `json:"experience"`
	Location    string    `json:"location"`
	DateOfBirth string    `json:"date_of_birth"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

type Session struct {
	Token     string    `gorm:"primaryKey;size:64"`
	AccountID string    `gorm:"type:uuid;index;not null"`
	Role      auth.Role `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
}
