// Package controllers file: controllers/page_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"techevents-web/logger"
	"techevents-web/models"
	"techevents-web/services"
)

// ---------------- Page Controller ----------------

// PageController serves the home page and the static pages around it.
type PageController struct {
	Events *services.EventService
}

// NewPageController initializes a new instance of PageController
func NewPageController(events *services.EventService) *PageController {
	return &PageController{Events: events}
}

// Health answers load balancer checks.
func Health(c *gin.Context) {
	logger.Debug.Println("Health: Health check requested")
	c.String(http.StatusOK, "OK")
}

// Home renders the hero carousel, feature grid, testimonials and the first
// events. A failed event fetch keeps the static sections and shows a retry.
func (pc *PageController) Home(c *gin.Context) {
	data := gin.H{
		"Title":        pageTitle("Discover Tech Events"),
		"Slides":       models.HeroSlides,
		"Features":     models.Features,
		"Testimonials": models.Testimonials,
	}

	events, err := pc.Events.ListEvents(c.Request.Context(), models.HomeEventLimit)
	if err != nil {
		logger.Warn.Printf("Home: rendering without events: %v", err)
		data["EventsError"] = services.MsgEventsUnavailable
	} else {
		data["Events"] = withEligibility(events)
	}

	render(c, http.StatusOK, "home.html", data)
}

// NotFound renders the error page for unknown paths.
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "event_error.html", gin.H{
		"Title":   pageTitle("Page not found"),
		"Message": "Page not found",
		"CTA":     "Go home",
		"CTALink": "/",
	})
}

// Signup renders the account creation landing page.
func Signup(c *gin.Context) {
	render(c, http.StatusOK, "signup.html", gin.H{"Title": pageTitle("Sign up")})
}

// EventCard pairs an event with its registration status at request time.
type EventCard struct {
	models.EventView
	Open bool
}

func withEligibility(views []models.EventView) []EventCard {
	t := now()
	cards := make([]EventCard, 0, len(views))
	for _, v := range views {
		cards = append(cards, EventCard{EventView: v, Open: services.IsRegistrationOpen(v.Source, t)})
	}
	return cards
}
