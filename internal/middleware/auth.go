package middleware

import (
	"truefeedback/internal/models"
	"truefeedback/internal/store"
	"truefeedback/pkg/response"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const UserKey = "user"
const sessionUserKey = "user_id"

// LoadUser re-derives the session principal from the store on every request.
// Client-supplied identity is never trusted.
func LoadUser(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := session.Get(sessionUserKey).(uint); ok {
			if user, err := users.ByID(id); err == nil {
				c.Set(UserKey, user)
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests without a valid session. A session pointing at
// a user that no longer exists is a 404, not a 401.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserKey) == nil {
			response.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}
		if _, ok := c.Get(UserKey); !ok {
			response.NotFound(c, "User not found")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the principal loaded by LoadUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(UserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// EstablishSession records the user id in the cookie session.
func EstablishSession(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Set(sessionUserKey, userID)
	return session.Save()
}

// ClearSession drops the session entirely.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
