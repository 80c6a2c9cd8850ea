package models

import (
	"strings"
	"time"
)

// UserRole is the single role assigned to a user. The catalogue keeps
// role membership single-valued: assigning a role replaces whatever the
// user had before.
type UserRole string

const (
	RoleSuperadmin  UserRole = "superadmin"
	RoleCoordinador UserRole = "coordinador"
	RoleDocente     UserRole = "docente"
	// RoleUnassigned marks a user with no explicit assignment. Such
	// users are presented with the default "docente" label.
	RoleUnassigned UserRole = ""
)

// ParseRole matches a raw role name case-insensitively.
func ParseRole(raw string) (UserRole, bool) {
	switch UserRole(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleSuperadmin:
		return RoleSuperadmin, true
	case RoleCoordinador:
		return RoleCoordinador, true
	case RoleDocente:
		return RoleDocente, true
	}
	return RoleUnassigned, false
}

// RoleDescriptions is the static role reference data exposed to admin UIs.
var RoleDescriptions = map[UserRole]string{
	RoleSuperadmin:  "Administra taxonomía y cuentas de usuario",
	RoleCoordinador: "Puede eliminar recursos propios",
	RoleDocente:     "Crea y gestiona sus propios recursos",
}

// User represents an application user stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	Name         string     `db:"name" json:"name"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         UserRole   `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at" json:"-"`
}

// RoleLabel resolves the UI label: superadmin wins over coordinador,
// anything else falls back to docente.
func (u *User) RoleLabel() UserRole {
	switch u.Role {
	case RoleSuperadmin:
		return RoleSuperadmin
	case RoleCoordinador:
		return RoleCoordinador
	default:
		return RoleDocente
	}
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Search   string
	Page     int
	PageSize int
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
