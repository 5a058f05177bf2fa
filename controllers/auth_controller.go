// Package controllers file: controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"techevents-web/logger"
	"techevents-web/models"
	"techevents-web/services"
	"techevents-web/session"
)

// AuthController forwards logins to the API and manages the session record.
type AuthController struct {
	Auth *services.AuthService
}

// NewAuthController initializes a new instance of AuthController
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// ShowLogin renders the login form, or sends a logged-in user to their dashboard.
func (ac *AuthController) ShowLogin(c *gin.Context) {
	if user := viewer(c); user != nil {
		c.Redirect(http.StatusFound, user.Role.DashboardPath())
		return
	}
	render(c, http.StatusOK, "login.html", gin.H{
		"Title": pageTitle("Log in"),
		"Role":  c.DefaultQuery("role", string(models.RoleParticipant)),
	})
}

// PerformLogin establishes the returned record in the durable store when
// "remember me" is checked, otherwise in the browser-session store.
func (ac *AuthController) PerformLogin(c *gin.Context) {
	creds := models.Credentials{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Role:     models.Role(c.PostForm("role")),
	}
	remember := c.PostForm("remember") != ""

	user, err := ac.Auth.Login(c.Request.Context(), creds)
	if err != nil {
		msg := services.LoginErrorMessage(err)
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			status = http.StatusBadRequest
		case msg == services.MsgInvalidCredentials:
			status = http.StatusUnauthorized
		}
		render(c, status, "login.html", gin.H{
			"Title": pageTitle("Log in"),
			"Email": creds.Email,
			"Role":  string(creds.Role),
			"Error": msg,
		})
		return
	}

	if err := session.FromContext(c).Establish(user, remember); err != nil {
		logger.Error.Printf("PerformLogin: failed to save session for %s: %v", user.ID, err)
		render(c, http.StatusInternalServerError, "login.html", gin.H{
			"Title": pageTitle("Log in"),
			"Email": creds.Email,
			"Role":  string(creds.Role),
			"Error": "Login failed, please try again",
		})
		return
	}

	logger.Info.Printf("PerformLogin: %s %s logged in (remember=%v)", user.Role, user.ID, remember)
	c.Redirect(http.StatusFound, user.Role.DashboardPath())
}

// Logout clears both stores.
func Logout(c *gin.Context) {
	if err := session.FromContext(c).Clear(); err != nil {
		logger.Error.Printf("Logout: Error saving session during logout: %v", err)
	} else {
		logger.Info.Println("Logout: Session cleared successfully")
	}
	c.Redirect(http.StatusFound, "/login")
}
