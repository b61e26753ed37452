package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"private-chef-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions map[string]models.User

func (f fakeSessions) CurrentUser(_ context.Context, id string) (models.User, error) {
	u, ok := f[id]
	if !ok {
		return models.User{}, errors.New("no session")
	}
	return u, nil
}

func newRouter(sessions SessionResolver, roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(sessions), RoleRequired(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "session": GetSessionID(c), "name": GetUser(c).Name})
	})
	return r
}

func call(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired_ValidSession(t *testing.T) {
	user := models.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: models.RoleDiner}
	token, err := GenerateToken(user, "s1")
	require.NoError(t, err)

	rec := call(newRouter(fakeSessions{"s1": user}, models.RoleDiner), token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"u1","session":"s1","name":"Ada"}`, rec.Body.String())
}

func TestAuthRequired_EndedSession(t *testing.T) {
	user := models.User{ID: "u1", Role: models.RoleDiner}
	token, err := GenerateToken(user, "s1")
	require.NoError(t, err)

	rec := call(newRouter(fakeSessions{}, models.RoleDiner), token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_MissingAndGarbage(t *testing.T) {
	r := newRouter(fakeSessions{}, models.RoleDiner)

	assert.Equal(t, http.StatusUnauthorized, call(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "not-a-jwt").Code)
}

func TestRoleRequired_Denies(t *testing.T) {
	user := models.User{ID: "u1", Role: models.RoleDiner}
	token, err := GenerateToken(user, "s1")
	require.NoError(t, err)

	rec := call(newRouter(fakeSessions{"s1": user}, models.RoleAdmin, models.RoleChef), token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ADMIN, CHEF")
}
