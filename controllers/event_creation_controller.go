// Package controllers file: controllers/event_creation_controller.go
package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"techevents-web/logger"
	"techevents-web/middleware"
	"techevents-web/models"
	"techevents-web/services"
	"techevents-web/session"
)

// maxImageBytes caps a user-uploaded event image.
const maxImageBytes = 5 << 20

// EventCreationController serves the organization's create-event form.
type EventCreationController struct {
	Creator       *services.EventCreationService
	RedirectDelay time.Duration
}

// NewEventCreationController initializes a new instance of EventCreationController
func NewEventCreationController(creator *services.EventCreationService, delay time.Duration) *EventCreationController {
	return &EventCreationController{Creator: creator, RedirectDelay: delay}
}

// ShowCreateEvent renders the empty form.
func (ec *EventCreationController) ShowCreateEvent(c *gin.Context) {
	render(c, http.StatusOK, "create_event.html", gin.H{
		"Title": pageTitle("Create event"),
		"Form":  models.EventForm{},
	})
}

// CreateEvent submits the form with the uploaded image or a generated
// placeholder, then shows a success page that refreshes to the dashboard.
func (ec *EventCreationController) CreateEvent(c *gin.Context) {
	var form models.EventForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn.Printf("CreateEvent: bad form: %v", err)
	}

	image, err := readUpload(c, "image")
	if err != nil {
		logger.Warn.Printf("CreateEvent: image upload rejected: %v", err)
		renderCreateError(c, http.StatusBadRequest, form, err.Error())
		return
	}

	created, err := ec.Creator.Create(c.Request.Context(), middleware.CurrentUser(c), form, image)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, services.ErrNoOrganizer) {
			status = http.StatusUnauthorized
		}
		renderCreateError(c, status, form, services.CreateErrorMessage(err))
		return
	}

	if err := session.FromContext(c).AddFlash("Event created: " + created.ID); err != nil {
		logger.Warn.Printf("CreateEvent: flash not saved: %v", err)
	}

	target := models.RoleOrganization.DashboardPath()
	seconds := int(ec.RedirectDelay.Round(time.Second) / time.Second)
	c.Header("Refresh", strconv.Itoa(seconds)+"; url="+target)
	render(c, http.StatusCreated, "event_created.html", gin.H{
		"Title":        pageTitle("Event created"),
		"EventID":      created.ID,
		"EventTitle":   created.Title,
		"RedirectURL":  target,
		"DelaySeconds": seconds,
	})
}

func renderCreateError(c *gin.Context, status int, form models.EventForm, message string) {
	render(c, status, "create_event.html", gin.H{
		"Title": pageTitle("Create event"),
		"Form":  form,
		"Error": message,
	})
}

// readUpload returns the named file part, or nil when none was sent.
func readUpload(c *gin.Context, field string) (*models.ImageUpload, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if header.Size == 0 {
		return nil, nil
	}
	if header.Size > maxImageBytes {
		return nil, fmt.Errorf("image is larger than %d MB", maxImageBytes>>20)
	}

	data, err := readPart(header)
	if err != nil {
		return nil, err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &models.ImageUpload{FileName: header.Filename, ContentType: contentType, Data: data}, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxImageBytes))
}
