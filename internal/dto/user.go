package dto

import "github.com/utec-virtual/recursos-api/internal/models"

// UserWithRole is the admin listing projection: profile fields plus the
// resolved role label.
type UserWithRole struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	IsActive  bool            `json:"is_active"`
	Role      models.UserRole `json:"role"`
	CreatedAt string          `json:"created_at"`
}

// RoleInfo describes one of the three fixed roles.
type RoleInfo struct {
	Name        models.UserRole `json:"name"`
	Description string          `json:"description"`
}

// UserUpdatePayload carries the mutable profile fields for the admin
// update endpoint.
type UserUpdatePayload struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Name     string `json:"name" validate:"required"`
	IsActive *bool  `json:"is_active"`
}

// PasswordPayload carries a replacement password.
type PasswordPayload struct {
	Password string `json:"password" validate:"required,min=6"`
}

// RolePayload carries a role assignment.
type RolePayload struct {
	Role string `json:"role" validate:"required"`
}

// BulkImportResult reports the outcome of a single CSV row. Rows
// succeed or fail independently.
type BulkImportResult struct {
	Success  bool            `json:"success"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role,omitempty"`
	Error    string          `json:"error,omitempty"`
}
