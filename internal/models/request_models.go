package models

import "time"

// SignInRequest is the sign-in form.
type SignInRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

// SocialSignInRequest carries a Google credential issued to the browser.
type SocialSignInRequest struct {
	Credential string `form:"credential" json:"credential" binding:"required"`
}

// ResetPasswordRequest is the reset-password form.
type ResetPasswordRequest struct {
	Password        string `form:"password" json:"password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" json:"-" binding:"required,eqfield=Password"`
}

// ResendVerificationRequest asks the backend for a fresh verification mail.
type ResendVerificationRequest struct {
	Email string `form:"email" json:"email" binding:"required,email"`
}

// JobInput is the create/update job form.
// Pointers on salary distinguish "not provided" from zero.
type JobInput struct {
	Title       string     `form:"title" json:"title" binding:"required,max=120"`
	Description string     `form:"description" json:"description" binding:"required"`
	Category    string     `form:"category" json:"category,omitempty"`
	Location    string     `form:"location" json:"location" binding:"required"`
	JobType     string     `form:"jobType" json:"jobType" binding:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP REMOTE"`
	SalaryMin   *int       `form:"salaryMin" json:"salaryMin,omitempty" binding:"omitempty,min=0"`
	SalaryMax   *int       `form:"salaryMax" json:"salaryMax,omitempty" binding:"omitempty,min=0"`
	Deadline    *time.Time `form:"deadline" json:"deadline,omitempty" time_format:"2006-01-02"`
}

// ApplyRequest holds the non-file fields of a job application.
type ApplyRequest struct {
	ExpectedSalary *int `form:"expectedSalary" json:"expectedSalary,omitempty" binding:"omitempty,min=0"`
}

// CompleteProfileRequest is the company profile completion form.
type CompleteProfileRequest struct {
	Name        string `form:"name" json:"name" binding:"required"`
	Description string `form:"description" json:"description" binding:"required"`
	Location    string `form:"location" json:"location" binding:"required"`
	Website     string `form:"website" json:"website,omitempty" binding:"omitempty,url"`
	Phone       string `form:"phone" json:"phone,omitempty"`
}

// AssessmentInput is the developer create/update assessment form.
type AssessmentInput struct {
	Title        string `form:"title" json:"title" binding:"required"`
	Description  string `form:"description" json:"description,omitempty"`
	PassingScore int    `form:"passingScore" json:"passingScore" binding:"required,min=1,max=100"`
}
