package middleware

import (
	"net/http"

	"atlas/internal/models"

	"github.com/labstack/echo/v4"
)

// ActionForMethod maps an HTTP method to the menu action it requires.
func ActionForMethod(method string) (models.MenuAction, bool) {
	switch method {
	case http.MethodGet, http.MethodHead:
		return models.ActionView, true
	case http.MethodPost:
		return models.ActionCreate, true
	case http.MethodPut, http.MethodPatch:
		return models.ActionUpdate, true
	case http.MethodDelete:
		return models.ActionDelete, true
	default:
		return "", false
	}
}

// RequireMenu gates a route group on one functional area. The action is
// derived from the request method and checked against the actor's permission
// profile; requests without a resolved profile are denied.
func RequireMenu(menuID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			action, ok := ActionForMethod(c.Request().Method)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "invalid request method")
			}

			profile := GetProfile(c)
			if !profile.Allows(menuID, action) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}

			return next(c)
		}
	}
}

// RequireAction gates a single route on an explicit (menu, action) pair, for
// routes whose method does not imply the action (the upload endpoint posts
// but needs upload-create rights specifically).
func RequireAction(menuID string, action models.MenuAction) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			profile := GetProfile(c)
			if !profile.Allows(menuID, action) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
