package middleware

import (
	"net/http"
	"strings"
	"time"

	"atlas/internal/db"
	"atlas/internal/models"
	"atlas/internal/session"
	"atlas/internal/utils"
	"atlas/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

var log = logger.New("auth_middleware")

// Context keys set for every authenticated request.
const (
	ContextUserID  = "userID"
	ContextEmail   = "email"
	ContextRole    = "role"
	ContextProfile = "profile"
)

type AuthMiddleware struct {
	jwtSecret  string
	privileged map[string]struct{}
}

func NewAuthMiddleware(jwtSecret string, privilegedEmails []string) *AuthMiddleware {
	set := make(map[string]struct{}, len(privilegedEmails))
	for _, email := range privilegedEmails {
		set[email] = struct{}{}
	}
	return &AuthMiddleware{
		jwtSecret:  jwtSecret,
		privileged: set,
	}
}

func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			return m.validateJWT(c, tokenParts[1], next)
		}
	}
}

func (m *AuthMiddleware) validateJWT(c echo.Context, tokenString string, next echo.HandlerFunc) error {
	claims, err := utils.ParseJWT(tokenString)
	if err != nil {
		_ = log.Error("Error parsing JWT token", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token has expired")
	}

	// Verify the token was issued by us and not revoked.
	transaction := &models.AuthTransaction{}
	if err := db.DB.Where("user_id = ? AND token = ?", claims.UserID, tokenString).
		First(transaction).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Auth transaction not found")
	}

	user := &models.User{}
	if err := db.DB.Where("id = ? AND is_deleted = false", claims.UserID).First(user).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	profile := m.resolveProfile(c, user)

	c.Set(ContextUserID, user.ID)
	c.Set(ContextEmail, user.Email)
	c.Set(ContextRole, string(user.Role))
	c.Set(ContextProfile, profile)

	return next(c)
}

// resolveProfile loads the actor's permission profile. Privileged identities
// from configuration are super admins without a store lookup; a missing or
// undecodable profile record fails closed to an all-deny matrix.
func (m *AuthMiddleware) resolveProfile(c echo.Context, user *models.User) *session.Profile {
	if _, ok := m.privileged[user.Email]; ok {
		return &session.Profile{Role: models.UserRoleSuperAdmin}
	}

	record, err := models.GetProfileByUserID(user.ID, db.DB.WithContext(c.Request().Context()))
	if err != nil {
		return &session.Profile{Role: user.Role, Matrix: models.PermissionMatrix{}}
	}

	matrix, err := record.DecodeMatrix()
	if err != nil {
		log.Warn("Undecodable permission matrix for %s, denying all menus", user.Email)
		return &session.Profile{Role: record.Role, Matrix: models.PermissionMatrix{}}
	}

	return &session.Profile{Role: record.Role, Matrix: matrix}
}

// GetUserID Helper functions to get values from context
func GetUserID(c echo.Context) string {
	if id, ok := c.Get(ContextUserID).(string); ok {
		return id
	}
	return ""
}

func GetEmail(c echo.Context) string {
	if email, ok := c.Get(ContextEmail).(string); ok {
		return email
	}
	return ""
}

func GetUserRole(c echo.Context) string {
	if role, ok := c.Get(ContextRole).(string); ok {
		return role
	}
	return ""
}

// GetProfile returns the request actor's permission profile, nil when the
// request never passed authentication.
func GetProfile(c echo.Context) *session.Profile {
	if profile, ok := c.Get(ContextProfile).(*session.Profile); ok {
		return profile
	}
	return nil
}
