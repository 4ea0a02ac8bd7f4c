package models

import "time"

// User is a snapshot of the backend user record.
type User struct {
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	Role       Role      `json:"role"`
	IsVerified bool      `json:"isVerified"`
	Photo      string    `json:"photo,omitempty"`
	CompanyID  *int      `json:"companyId,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// Company is a snapshot of the backend company record.
type Company struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Logo              string `json:"logo,omitempty"`
	Location          string `json:"location,omitempty"`
	Website           string `json:"website,omitempty"`
	Phone             string `json:"phone,omitempty"`
	IsProfileComplete bool   `json:"isProfileComplete"`
}
