package models

import "time"

// Job statuses as reported by the backend.
const (
	JobStatusDraft     = "DRAFT"
	JobStatusPublished = "PUBLISHED"
)

// Job represents a job posting.
type Job struct {
	ID          int        `json:"id"`
	CompanyID   int        `json:"companyId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category,omitempty"`
	Location    string     `json:"location,omitempty"`
	JobType     string     `json:"jobType,omitempty"`
	SalaryMin   *int       `json:"salaryMin,omitempty"`
	SalaryMax   *int       `json:"salaryMax,omitempty"`
	Status      string     `json:"status,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	Company     *Company   `json:"company,omitempty"`
}

// Application is a job application submitted by a user.
type Application struct {
	ID             int       `json:"id"`
	JobID          int       `json:"jobId"`
	UserID         int       `json:"userId"`
	Status         string    `json:"status"`
	CVURL          string    `json:"cvUrl,omitempty"`
	ExpectedSalary *int      `json:"expectedSalary,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	Job            *Job      `json:"job,omitempty"`
}
