// Package controllers file: controllers/registration_controller.go
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

// RegistrationController serves the participant registration flow.
type RegistrationController struct {
	Events        *services.EventService
	Registrations *services.RegistrationService
}

// NewRegistrationController initializes a new instance of RegistrationController
func NewRegistrationController(events *services.EventService, regs *services.RegistrationService) *RegistrationController {
	return &RegistrationController{Events: events, Registrations: regs}
}

// ShowRegistration renders the confirmation page for the logged-in participant.
func (rc *RegistrationController) ShowRegistration(c *gin.Context) {
	view, ok := rc.load(c)
	if !ok {
		return
	}
	render(c, http.StatusOK, "register.html", rc.registrationData(view, middleware.CurrentUser(c), ""))
}

// SubmitRegistration re-checks eligibility against a fresh copy of the event
// and registers the participant.
func (rc *RegistrationController) SubmitRegistration(c *gin.Context) {
	view, ok := rc.load(c)
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)

	err := rc.Registrations.Register(c.Request.Context(), view.Source, user)
	if err != nil {
		status := http.StatusBadGateway
		var apiErr *services.APIError
		switch {
		case errors.Is(err, services.ErrRegistrationClosed):
			status = http.StatusConflict
		case errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden:
			status = http.StatusForbidden
		case errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict:
			status = http.StatusConflict
		}
		render(c, status, "register.html", rc.registrationData(view, user, services.RegistrationErrorMessage(err)))
		return
	}

	if err := session.FromContext(c).AddFlash("You are registered for " + view.Title); err != nil {
		logger.Warn.Printf("SubmitRegistration: flash not saved: %v", err)
	}
	c.Redirect(http.StatusFound, models.RoleParticipant.DashboardPath())
}

func (rc *RegistrationController) load(c *gin.Context) (*models.EventView, bool) {
	id := c.Param("id")
	view, err := rc.Events.LoadEvent(c.Request.Context(), id)
	if err != nil {
		renderEventError(c, id, err)
		return nil, false
	}
	return view, true
}

func (rc *RegistrationController) registrationData(view *models.EventView, user *models.User, errMsg string) gin.H {
	return gin.H{
		"Title":       pageTitle("Register for " + view.Title),
		"Event":       view,
		"Open":        rc.Registrations.IsOpen(view.Source),
		"Participant": user,
		"Error":       errMsg,
	}
}
