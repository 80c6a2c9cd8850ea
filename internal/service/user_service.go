package service

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/utec-virtual/recursos-api/internal/dto"
	"github.com/utec-virtual/recursos-api/internal/models"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
)

type adminUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	AssignRole(ctx context.Context, id string, role models.UserRole) error
	SetActive(ctx context.Context, id string, active bool) error
	SoftDelete(ctx context.Context, id string) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// bulkImportColumns are required in the CSV header, in any order.
var bulkImportColumns = []string{"username", "password", "email", "name", "role"}

// UserService implements superadmin account administration: listing,
// profile and credential updates, role assignment, deactivation, soft
// delete and the CSV bulk import.
type UserService struct {
	users     adminUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(users adminUserRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{users: users, validator: validate, logger: logger}
}

// List returns users matching the filter with resolved role labels.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]dto.UserWithRole, *models.Pagination, error) {
	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}

	out := make([]dto.UserWithRole, 0, len(users))
	for i := range users {
		u := &users[i]
		out = append(out, dto.UserWithRole{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Name:      u.Name,
			IsActive:  u.IsActive,
			Role:      u.RoleLabel(),
			CreatedAt: u.CreatedAt.Format("2006-01-02"),
		})
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return out, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get returns one user with the resolved role label.
func (s *UserService) Get(ctx context.Context, id string) (*dto.UserWithRole, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return &dto.UserWithRole{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		IsActive:  user.IsActive,
		Role:      user.RoleLabel(),
		CreatedAt: user.CreatedAt.Format("2006-01-02"),
	}, nil
}

// UpdateProfile replaces a user's profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, actorID, id string, payload dto.UserUpdatePayload) (*dto.UserWithRole, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	user.Username = payload.Username
	user.Email = payload.Email
	user.Name = payload.Name
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}

	s.recordAudit(ctx, actorID, models.AuditActionUserUpdate, id, fmt.Sprintf(`{"username":%q}`, user.Username))

	return &dto.UserWithRole{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		IsActive:  user.IsActive,
		Role:      user.RoleLabel(),
		CreatedAt: user.CreatedAt.Format("2006-01-02"),
	}, nil
}

// UpdatePassword replaces a user's password with a fresh bcrypt hash.
func (s *UserService) UpdatePassword(ctx context.Context, actorID, id string, payload dto.PasswordPayload) error {
	if err := s.validator.Struct(payload); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid password payload")
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	if err := s.users.UpdatePassword(ctx, id, string(hash)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}

	s.recordAudit(ctx, actorID, models.AuditActionPasswordChange, id, `{"status":"changed"}`)
	return nil
}

// AssignRole replaces a user's role. The assignment is one UPDATE, so
// there is never a window where the user holds zero or two roles.
func (s *UserService) AssignRole(ctx context.Context, actorID, id string, payload dto.RolePayload) error {
	if err := s.validator.Struct(payload); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}

	role, ok := models.ParseRole(payload.Role)
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("rol desconocido: %s", payload.Role))
	}

	if err := s.users.AssignRole(ctx, id, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign role")
	}

	s.recordAudit(ctx, actorID, models.AuditActionRoleAssign, id, fmt.Sprintf(`{"role":%q}`, role))
	return nil
}

// SetActive toggles a user's ability to log in.
func (s *UserService) SetActive(ctx context.Context, actorID, id string, active bool) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user status")
	}
	s.recordAudit(ctx, actorID, models.AuditActionUserUpdate, id, fmt.Sprintf(`{"is_active":%t}`, active))
	return nil
}

// Delete soft-deletes a user. They stop appearing in listings and can
// no longer authenticate; the row stays for audit history.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if err := s.users.SoftDelete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user")
	}
	s.recordAudit(ctx, actorID, models.AuditActionUserDelete, id, `{"deleted":true}`)
	return nil
}

// ListRoles returns the fixed role reference data.
func (s *UserService) ListRoles() []dto.RoleInfo {
	roles := []models.UserRole{models.RoleSuperadmin, models.RoleCoordinador, models.RoleDocente}
	out := make([]dto.RoleInfo, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleInfo{Name: r, Description: models.RoleDescriptions[r]})
	}
	return out
}

// BulkImport creates users from CSV content. The header must contain
// username, password, email, name and role in any order; each data row
// succeeds or fails on its own, so one bad row never blocks the rest.
func (s *UserService) BulkImport(ctx context.Context, actorID string, r io.Reader) ([]dto.BulkImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "el archivo CSV está vacío o es inválido")
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range bulkImportColumns {
		if _, ok := index[col]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("falta la columna requerida: %s", col))
		}
	}

	var results []dto.BulkImportResult
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			results = append(results, dto.BulkImportResult{Success: false, Error: fmt.Sprintf("fila inválida: %v", err)})
			continue
		}
		results = append(results, s.importRow(ctx, index, record))
	}

	s.recordAudit(ctx, actorID, models.AuditActionBulkImport, actorID, fmt.Sprintf(`{"rows":%d}`, len(results)))

	if results == nil {
		results = []dto.BulkImportResult{}
	}
	return results, nil
}

func (s *UserService) importRow(ctx context.Context, index map[string]int, record []string) dto.BulkImportResult {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	username := field("username")
	password := field("password")
	email := field("email")
	name := field("name")
	rawRole := field("role")

	if username == "" || password == "" || name == "" {
		return dto.BulkImportResult{Success: false, Username: username, Error: "username, password y name son requeridos"}
	}

	role, ok := models.ParseRole(rawRole)
	if !ok {
		return dto.BulkImportResult{Success: false, Username: username, Error: fmt.Sprintf("rol desconocido: %s", rawRole)}
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return dto.BulkImportResult{Success: false, Username: username, Error: "el nombre de usuario ya existe"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return dto.BulkImportResult{Success: false, Username: username, Error: "error al verificar el usuario"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dto.BulkImportResult{Success: false, Username: username, Error: "error al procesar la contraseña"}
	}

	if email == "" {
		email = username + "@utec.edu.sv"
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Warn("bulk import row failed", zap.String("username", username), zap.Error(err))
		return dto.BulkImportResult{Success: false, Username: username, Error: "error al crear el usuario"}
	}

	return dto.BulkImportResult{Success: true, Username: username, Role: role}
}

func (s *UserService) recordAudit(ctx context.Context, actorID, action, targetID, payload string) {
	if err := s.users.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     action,
		Resource:   "users",
		ResourceID: &targetID,
		NewValues:  []byte(payload),
	}); err != nil {
		s.logger.Warn("failed to record user audit log", zap.Error(err), zap.String("action", action))
	}
}
