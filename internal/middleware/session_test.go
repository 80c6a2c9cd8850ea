package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utec-virtual/recursos-api/internal/models"
	"github.com/utec-virtual/recursos-api/internal/service"
)

type userRepoStub struct {
	user *models.User
}

func (s *userRepoStub) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, sql.ErrNoRows
}

func (s *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error { return nil }

func (s *userRepoStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error { return nil }

type roleRepoStub struct {
	role models.UserRole
}

func (s *roleRepoStub) RoleOf(ctx context.Context, id string) (models.UserRole, error) {
	return s.role, nil
}

type storeStub struct {
	sessions map[string]string
}

func (s *storeStub) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if s.sessions == nil {
		s.sessions = make(map[string]string)
	}
	s.sessions[sessionID] = userID
	return nil
}

func (s *storeStub) Exists(ctx context.Context, sessionID string) (bool, error) {
	_, ok := s.sessions[sessionID]
	return ok, nil
}

func (s *storeStub) Revoke(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

var testCookie = CookieSettings{Name: "session"}

func newSessionTestRouter(t *testing.T) (*gin.Engine, *service.AuthService, *storeStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &storeStub{}
	auth := service.NewAuthService(&userRepoStub{}, store, nil, nil, service.AuthConfig{Secret: "test-secret", TTL: time.Hour})

	r := gin.New()
	r.GET("/protected", Session(auth, testCookie), func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		require.True(t, ok)
		c.String(http.StatusOK, claims.User.Username)
	})
	return r, auth, store
}

func issueToken(t *testing.T, auth *service.AuthService) string {
	t.Helper()
	token, _, err := auth.IssueSession(context.Background(), &models.User{
		ID:       "u1",
		Username: "mperez",
		Email:    "mperez@utec.edu.sv",
		Name:     "María Pérez",
	})
	require.NoError(t, err)
	return token
}

func doRequest(r *gin.Engine, cookieValue string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: cookieValue})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionMiddlewareMissingCookie(t *testing.T) {
	r, _, _ := newSessionTestRouter(t)

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddlewareValidCookie(t *testing.T) {
	r, auth, _ := newSessionTestRouter(t)

	w := doRequest(r, issueToken(t, auth))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mperez", w.Body.String())
}

func TestSessionMiddlewareGarbageToken(t *testing.T) {
	r, _, _ := newSessionTestRouter(t)

	w := doRequest(r, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddlewareExpiredClearsCookie(t *testing.T) {
	r, _, store := newSessionTestRouter(t)

	claims := &models.SessionClaims{
		User: models.SessionUser{ID: "u1", Username: "mperez"},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-expired",
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "jti-expired", "u1", time.Hour))

	w := doRequest(r, token)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			cleared = c
		}
	}
	require.NotNil(t, cleared, "expired session should clear the cookie")
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestSessionMiddlewareRevokedSession(t *testing.T) {
	r, auth, store := newSessionTestRouter(t)

	token := issueToken(t, auth)
	for id := range store.sessions {
		require.NoError(t, store.Revoke(context.Background(), id))
	}

	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalSessionNeverBlocks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &storeStub{}
	auth := service.NewAuthService(&userRepoStub{}, store, nil, nil, service.AuthConfig{Secret: "test-secret", TTL: time.Hour})

	r := gin.New()
	r.POST("/logout", OptionalSession(auth, testCookie), func(c *gin.Context) {
		_, ok := CurrentClaims(c)
		if ok {
			c.String(http.StatusOK, "claims")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: issueToken(t, auth)})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "claims", w.Body.String())
}

func TestRequireSuperadmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role models.UserRole, withClaims bool) *gin.Engine {
		access := service.NewAccessService(&roleRepoStub{role: role}, nil)
		r := gin.New()
		attach := func(c *gin.Context) {
			if withClaims {
				c.Set(ContextUserKey, &models.SessionClaims{User: models.SessionUser{ID: "u1"}})
			}
			c.Next()
		}
		r.GET("/admin", attach, RequireSuperadmin(access), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	serve := func(r *gin.Engine) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve(newRouter(models.RoleSuperadmin, true)))
	assert.Equal(t, http.StatusForbidden, serve(newRouter(models.RoleCoordinador, true)))
	assert.Equal(t, http.StatusForbidden, serve(newRouter(models.RoleDocente, true)))
	assert.Equal(t, http.StatusUnauthorized, serve(newRouter(models.RoleSuperadmin, false)))
}
