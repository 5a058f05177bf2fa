// Package controllers file: controllers/dashboard_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"techevents-web/middleware"
	"techevents-web/models"
	"techevents-web/session"
)

// Dashboard renders the role's landing page with any one-shot messages.
func Dashboard(role models.Role) gin.HandlerFunc {
	template := "dashboard_participant.html"
	title := "Participant dashboard"
	if role == models.RoleOrganization {
		template = "dashboard_organization.html"
		title = "Organization dashboard"
	}

	return func(c *gin.Context) {
		render(c, http.StatusOK, template, gin.H{
			"Title":       pageTitle(title),
			"Profile":     middleware.CurrentUser(c),
			"Flashes":     session.FromContext(c).Flashes(),
			"ProfilePath": role.ProfilePath(),
		})
	}
}
