// Package middleware file: middleware/role.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"techevents-web/logger"
	"techevents-web/models"
)

// RoleRequired lets only users of role through. Others are sent to their own
// dashboard. It must run after AuthRequired.
func RoleRequired(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if user.Role != role {
			logger.Info.Printf("RoleRequired: %s %s denied %s", user.Role, user.ID, c.Request.URL.Path)
			c.Redirect(http.StatusFound, user.Role.DashboardPath())
			c.Abort()
			return
		}

		c.Next()
	}
}
