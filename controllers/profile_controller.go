// Package controllers file: controllers/profile_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"techevents-web/logger"
	"techevents-web/middleware"
	"techevents-web/models"
	"techevents-web/services"
	"techevents-web/session"
)

// ProfileController serves the organization and participant profile forms.
type ProfileController struct {
	Profiles *services.ProfileService
}

// NewProfileController initializes a new instance of ProfileController
func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{Profiles: profiles}
}

// ShowProfile renders the form pre-filled from the session record. Routes
// mount it behind AuthRequired and RoleRequired, so the record is complete.
func (pc *ProfileController) ShowProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !user.HasIdentity() {
		pc.expire(c)
		return
	}
	renderProfile(c, http.StatusOK, user, services.NewProfileForm(user))
}

// UpdateProfile validates the posted form and submits it. On success the
// server's record replaces the session copy in the store that held it.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !user.HasIdentity() {
		pc.expire(c)
		return
	}

	form := services.NewProfileForm(user)
	for _, field := range models.EditableFields(form.Role) {
		form.Set(field, c.PostForm(field))
	}

	updated, err := pc.Profiles.Submit(c.Request.Context(), user, form)
	if err != nil {
		renderProfile(c, profileErrorStatus(err), user, form)
		return
	}

	us := session.FromContext(c)
	if err := us.Set(updated); err != nil {
		logger.Error.Printf("UpdateProfile: failed to store updated record for %s: %v", updated.ID, err)
		form.Errors[services.SubmitErrorKey] = "Profile saved but the session could not be updated, please log in again"
		renderProfile(c, http.StatusInternalServerError, user, form)
		return
	}
	logger.Info.Printf("UpdateProfile: %s %s saved in %s store", updated.Role, updated.ID, us.Kind())
	c.Redirect(http.StatusFound, updated.Role.DashboardPath())
}

// expire clears both stores and sends the visitor to log in.
func (pc *ProfileController) expire(c *gin.Context) {
	if err := session.FromContext(c).Clear(); err != nil {
		logger.Error.Printf("ProfileController: failed to clear session: %v", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

func profileErrorStatus(err error) int {
	var apiErr *services.APIError
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden:
		return http.StatusForbidden
	}
	return http.StatusBadGateway
}

func renderProfile(c *gin.Context, status int, user *models.User, form *services.ProfileForm) {
	title := "Participant profile"
	template := "profile_participant.html"
	if form.Role == models.RoleOrganization {
		title = "Organization profile"
		template = "profile_organization.html"
	}
	render(c, status, template, gin.H{
		"Title":       pageTitle(title),
		"Form":        form.Values,
		"Errors":      form.Errors,
		"SubmitError": form.Errors[services.SubmitErrorKey],
		"Email":       user.Email,
		"Required":    services.RequiredFields(form.Role),
	})
}
