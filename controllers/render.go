// Package controllers holds the gin handlers for every page.
// file: controllers/render.go
package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"techevents-web/middleware"
	"techevents-web/models"
	"techevents-web/session"
)

// siteName suffixes every page title.
const siteName = "TechEvents"

// now is the request clock; tests replace it.
var now = time.Now

// viewer returns the logged-in user for navigation, or nil. Public pages use
// it without forcing a login.
func viewer(c *gin.Context) *models.User {
	if user := middleware.CurrentUser(c); user != nil {
		return user
	}
	user, err := session.FromContext(c).Get()
	if err != nil {
		return nil
	}
	return user
}

// render fills the layout keys shared by every template and writes the page.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = siteName
	}
	data["User"] = viewer(c)
	data["Path"] = c.Request.URL.Path
	c.HTML(status, name, data)
}

func pageTitle(title string) string {
	if title == "" {
		return siteName
	}
	return title + " - " + siteName
}
