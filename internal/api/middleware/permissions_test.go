package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"atlas/internal/models"
	"atlas/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionForMethod(t *testing.T) {
	cases := map[string]models.MenuAction{
		http.MethodGet:    models.ActionView,
		http.MethodHead:   models.ActionView,
		http.MethodPost:   models.ActionCreate,
		http.MethodPut:    models.ActionUpdate,
		http.MethodPatch:  models.ActionUpdate,
		http.MethodDelete: models.ActionDelete,
	}

	for method, want := range cases {
		action, ok := ActionForMethod(method)
		require.True(t, ok, method)
		assert.Equal(t, want, action, method)
	}

	_, ok := ActionForMethod(http.MethodOptions)
	assert.False(t, ok)
}

func requestWithProfile(method string, profile *session.Profile) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if profile != nil {
		c.Set(ContextProfile, profile)
	}
	return c, rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireMenuAllowsGrantedAction(t *testing.T) {
	profile := &session.Profile{
		Role: models.UserRoleContentManager,
		Matrix: models.PermissionMatrix{
			models.MenuCities: {View: true, Create: true},
		},
	}

	c, rec := requestWithProfile(http.MethodGet, profile)
	err := RequireMenu(models.MenuCities)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireMenuDeniesMissingAction(t *testing.T) {
	profile := &session.Profile{
		Role: models.UserRoleContentManager,
		Matrix: models.PermissionMatrix{
			models.MenuCities: {View: true},
		},
	}

	c, _ := requestWithProfile(http.MethodDelete, profile)
	err := RequireMenu(models.MenuCities)(okHandler)(c)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestRequireMenuDeniesWithoutProfile(t *testing.T) {
	c, _ := requestWithProfile(http.MethodGet, nil)
	err := RequireMenu(models.MenuCities)(okHandler)(c)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestRequireMenuSuperAdminAllowsEverything(t *testing.T) {
	profile := &session.Profile{Role: models.UserRoleSuperAdmin}

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		c, rec := requestWithProfile(method, profile)
		err := RequireMenu(models.MenuAccounts)(okHandler)(c)
		require.NoError(t, err, method)
		assert.Equal(t, http.StatusOK, rec.Code, method)
	}
}

func TestRequireActionIgnoresMethod(t *testing.T) {
	profile := &session.Profile{
		Role: models.UserRoleMarketer,
		Matrix: models.PermissionMatrix{
			models.MenuUploads: {View: true},
		},
	}

	// GET maps to view, but the gate demands create regardless
	c, _ := requestWithProfile(http.MethodGet, profile)
	err := RequireAction(models.MenuUploads, models.ActionCreate)(okHandler)(c)
	require.Error(t, err)

	profile.Matrix[models.MenuUploads] = models.MenuPermissions{View: true, Create: true}
	c, rec := requestWithProfile(http.MethodGet, profile)
	err = RequireAction(models.MenuUploads, models.ActionCreate)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
