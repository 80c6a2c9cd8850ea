package dto

import "time"

// Payloads for taxonomy administration. Creates and updates take the
// full field set.

type PlatformPayload struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	WebsiteURL  string `json:"website_url" validate:"omitempty,url"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	IsActive    *bool  `json:"is_active"`
}

type FacultyPayload struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type CyclePayload struct {
	Name      string    `json:"name" validate:"required"`
	Year      int       `json:"year" validate:"required,min=2000"`
	Semester  int       `json:"semester" validate:"required,min=1,max=2"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  *bool     `json:"is_active"`
}

type ResourceTypePayload struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsActive    *bool  `json:"is_active"`
}

// StatusPayload toggles the is_active flag of a record.
type StatusPayload struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
