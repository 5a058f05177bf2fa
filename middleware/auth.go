// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"techevents-web/logger"
	"techevents-web/models"
	"techevents-web/session"
)

// currentUserKey is where AuthRequired leaves the loaded record.
const currentUserKey = "currentUser"

// -------------- authentication middleware --------------

// AuthRequired is a middleware that ensures the user is logged in.
// How it works:
// - Reads the user record through the session object (durable store first).
// - If the record is missing, corrupt or has no id, clears BOTH stores,
//   redirects to "/login" and aborts.
// - Otherwise stores the record on the context and proceeds.
// Usage:
//
//	router.GET("/profile/participant", AuthRequired, ...)
func AuthRequired(c *gin.Context) {
	us := session.FromContext(c)
	user, err := us.Get()
	if err != nil {
		logger.Warn.Printf("AuthRequired: %v on %s, clearing session", err, c.Request.URL.Path)
		if clearErr := us.Clear(); clearErr != nil {
			logger.Error.Printf("AuthRequired: failed to clear session: %v", clearErr)
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	c.Set(currentUserKey, user)
	logger.Debug.Printf("[AuthRequired] %s %s authenticated from %s store", user.Role, user.ID, us.Kind())
	c.Next()
}

// CurrentUser returns the record loaded by AuthRequired, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
