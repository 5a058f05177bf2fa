// Package controllers file: controllers/event_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"techevents-web/logger"
	"techevents-web/models"
	"techevents-web/services"
)

// qrCodeSize is the edge length of share QR codes in pixels.
const qrCodeSize = 300

// ---------------- Event Controller ----------------

// EventController serves the event list, detail and share pages.
type EventController struct {
	Events         *services.EventService
	ApplicationURL string
	QREncoder      services.QREncoder
}

// NewEventController initializes a new instance of EventController
func NewEventController(events *services.EventService, applicationURL string) *EventController {
	return &EventController{Events: events, ApplicationURL: applicationURL}
}

// ListEvents renders every event with its open/closed badge.
func (ec *EventController) ListEvents(c *gin.Context) {
	events, err := ec.Events.ListEvents(c.Request.Context(), 0)
	if err != nil {
		render(c, http.StatusBadGateway, "event_error.html", gin.H{
			"Title":    pageTitle("Events"),
			"Message":  services.MsgEventsUnavailable,
			"CTA":      "Try again",
			"CTALink":  "/events",
			"NotFound": false,
		})
		return
	}

	render(c, http.StatusOK, "events.html", gin.H{
		"Title":  pageTitle("Events"),
		"Events": withEligibility(events),
	})
}

// ShowEvent renders one event. The tab and the description toggle come from
// the query string so switching them re-renders from the same single fetch.
func (ec *EventController) ShowEvent(c *gin.Context) {
	id := c.Param("id")
	view, err := ec.Events.LoadEvent(c.Request.Context(), id)
	if err != nil {
		renderEventError(c, id, err)
		return
	}

	tab := models.ParseEventTab(c.Query("tab"))
	expanded := c.Query("expanded") == "1"
	logger.Debug.Printf("ShowEvent: %s tab=%s expanded=%v", id, tab, expanded)

	render(c, http.StatusOK, "event_detail.html", gin.H{
		"Title":    pageTitle(view.Title),
		"Event":    view,
		"Open":     services.IsRegistrationOpen(view.Source, now()),
		"Tab":      tab,
		"Tabs":     models.EventTabs,
		"Expanded": expanded,
		"ShareURL": services.EventShareURL(ec.ApplicationURL, view.ID),
	})
}

// renderEventError shows the not-found or retry variant of the error page.
func renderEventError(c *gin.Context, id string, err error) {
	if errors.Is(err, services.ErrEventNotFound) {
		render(c, http.StatusNotFound, "event_error.html", gin.H{
			"Title":    pageTitle(services.MsgEventNotFound),
			"Message":  services.MsgEventNotFound,
			"CTA":      "Browse events",
			"CTALink":  "/events",
			"NotFound": true,
		})
		return
	}
	render(c, http.StatusBadGateway, "event_error.html", gin.H{
		"Title":    pageTitle(services.MsgEventLoadFailed),
		"Message":  services.EventErrorMessage(err),
		"CTA":      "Try again",
		"CTALink":  c.Request.URL.RequestURI(),
		"NotFound": false,
		"EventID":  id,
	})
}

// QRCode writes a PNG QR code of the event's public URL.
func (ec *EventController) QRCode(c *gin.Context) {
	id := c.Param("id")
	size := qrCodeSize
	if raw := c.Query("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1024 {
			size = n
		}
	}

	png, err := services.GenerateEventQRCode(ec.ApplicationURL, id, size, ec.QREncoder)
	if err != nil {
		logger.Error.Printf("QRCode: Error generating QR code for %s: %v", id, err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}

	c.Header("Content-Disposition", "inline; filename=\"event-"+id+".png\"")
	c.Data(http.StatusOK, "image/png", png)
}
