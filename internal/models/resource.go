package models

import "time"

// Resource is a catalogued link to externally hosted educational
// content, classified against the four taxonomy dimensions. Reads join
// the taxonomy names and the owner's display name; the raw foreign
// keys are kept for the write paths.
type Resource struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"titulo" json:"titulo"`
	Description string     `db:"descripcion" json:"descripcion,omitempty"`
	URL         string     `db:"url" json:"url"`
	Subject     string     `db:"asignatura" json:"asignatura"`
	TypeID      int64      `db:"type_id" json:"typeId"`
	PlatformID  int64      `db:"platform_id" json:"platformId"`
	FacultyID   int64      `db:"faculty_id" json:"facultyId"`
	CycleID     int64      `db:"cycle_id" json:"cycleId"`
	Type        string     `db:"tipo" json:"tipo"`
	Platform    string     `db:"plataforma" json:"plataforma"`
	Faculty     string     `db:"facultad" json:"facultad"`
	Cycle       string     `db:"ciclo" json:"ciclo"`
	Published   bool       `db:"publicado" json:"publicado"`
	OwnerID     string     `db:"user_id" json:"userId"`
	OwnerName   string     `db:"docente" json:"docente"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt   *time.Time `db:"deleted_at" json:"-"`
}

// ResourceFields is the full replacement payload for create and update.
// All four taxonomy references are required: a non-deleted resource
// always resolves its type, platform, faculty and cycle.
type ResourceFields struct {
	Title       string `json:"titulo" validate:"required"`
	Description string `json:"descripcion"`
	URL         string `json:"url" validate:"required,url"`
	Subject     string `json:"asignatura"`
	TypeID      int64  `json:"typeId" validate:"required"`
	PlatformID  int64  `json:"platformId" validate:"required"`
	FacultyID   int64  `json:"facultyId" validate:"required"`
	CycleID     int64  `json:"cycleId" validate:"required"`
	Published   bool   `json:"publicado"`
}
