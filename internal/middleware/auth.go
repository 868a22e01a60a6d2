package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/tasktrack/tasktrack-api/internal/constants"
	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

// UserLookup loads an account by ID.
type UserLookup interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth authenticates the request with a bearer token, falling back to
// the login session when no Authorization header is sent.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			raw, ok := strings.CutPrefix(header, constants.BearerPrefix)
			if !ok {
				apierrors.InvalidToken(c, "Authorization header must use the Bearer scheme")
				return
			}
			claims, err := tokens.Validate(strings.TrimSpace(raw))
			if err != nil {
				apierrors.InvalidToken(c, "")
				return
			}
			setIdentity(c, claims.Subject, claims.Role, claims.Email)
			c.Next()
			return
		}

		session := sessions.Default(c)
		userID, _ := session.Get(constants.ContextKeyUserID).(string)
		if userID == "" {
			apierrors.Unauthorized(c, "")
			return
		}
		role, _ := session.Get(constants.ContextKeyUserRole).(string)
		email, _ := session.Get(constants.ContextKeyUserEmail).(string)
		setIdentity(c, userID, role, email)
		c.Next()
	}
}

// RequireRole allows the request through when the caller holds one of roles.
// It must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		checkRole(c, roles)
	}
}

// RequireStoredRole is RequireRole against the role currently stored for the
// caller, so a demoted account loses access before its token expires.
func RequireStoredRole(users UserLookup, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.Get(c.Request.Context(), c.GetString(constants.ContextKeyUserID))
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrInvalidID) {
				apierrors.Unauthorized(c, "")
				return
			}
			apierrors.InternalError(c, "")
			return
		}
		c.Set(constants.ContextKeyUserRole, user.Role)
		checkRole(c, roles)
	}
}

func checkRole(c *gin.Context, roles []string) {
	role := c.GetString(constants.ContextKeyUserRole)
	for _, allowed := range roles {
		if strings.EqualFold(role, allowed) {
			c.Next()
			return
		}
	}
	apierrors.Forbidden(c, "")
}

// SaveSession stores the identity of a signed-in user in the session.
func SaveSession(c *gin.Context, userID, role, email string) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	session.Set(constants.ContextKeyUserRole, role)
	session.Set(constants.ContextKeyUserEmail, email)
	return session.Save()
}

// ClearSession removes the login session.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	id := c.GetString(constants.ContextKeyUserID)
	return id, id != ""
}

// GetActor returns the authenticated caller.
func GetActor(c *gin.Context) services.Actor {
	return services.Actor{
		ID:   c.GetString(constants.ContextKeyUserID),
		Role: c.GetString(constants.ContextKeyUserRole),
	}
}

func setIdentity(c *gin.Context, userID, role, email string) {
	c.Set(constants.ContextKeyUserID, userID)
	c.Set(constants.ContextKeyUserRole, role)
	c.Set(constants.ContextKeyUserEmail, email)
}
