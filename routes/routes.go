// Package routes assembles the gin engine: middleware, templates and the
// route table.
// file: routes/routes.go
package routes

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"techevents-web/config"
	"techevents-web/controllers"
	"techevents-web/middleware"
	"techevents-web/metrics"
	"techevents-web/models"
	"techevents-web/services"
	"techevents-web/session"
)

// Deps are the external collaborators the router needs.
type Deps struct {
	Events   services.EventAPI
	Profiles services.ProfileAPI
	Auth     services.AuthAPI
	Metrics  metrics.Publisher
	Store    sessions.Store
	// TemplatesGlob overrides cfg.TemplatesDir, e.g. "/srv/templates/*.html".
	TemplatesGlob string
	// Clock decides registration eligibility; nil means the wall clock.
	Clock func() time.Time
}

// NewRouter wires every service and controller onto a new engine.
func NewRouter(cfg *config.Config, deps Deps) (*gin.Engine, error) {
	formLimit, err := middleware.FormRateLimiter(cfg.FormRateLimit)
	if err != nil {
		return nil, fmt.Errorf("FORM_RATE_LIMIT %q: %w", cfg.FormRateLimit, err)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())
	router.Use(session.Middleware(deps.Store, session.Policy{
		DurableMaxAge: cfg.DurableSessionDays * 86400,
		Secure:        cfg.SecureCookies,
	}))
	router.Use(formLimit)

	router.SetFuncMap(TemplateFuncs())
	glob := deps.TemplatesGlob
	if glob == "" {
		glob = strings.TrimRight(cfg.TemplatesDir, "/") + "/*.html"
	}
	router.LoadHTMLGlob(glob)
	router.Static("/static", cfg.StaticDir)

	// services
	eventSvc := services.NewEventService(deps.Events, cfg.CurrencySymbol, deps.Metrics)
	pages := controllers.NewPageController(eventSvc)
	events := controllers.NewEventController(eventSvc, cfg.ApplicationURL)
	registrations := controllers.NewRegistrationController(eventSvc, services.NewRegistrationService(deps.Events, deps.Metrics, deps.Clock))
	creation := controllers.NewEventCreationController(services.NewEventCreationService(deps.Events, deps.Metrics), cfg.RedirectDelay)
	profiles := controllers.NewProfileController(services.NewProfileService(deps.Profiles, deps.Metrics))
	auth := controllers.NewAuthController(services.NewAuthService(deps.Auth))

	// Public routes
	router.GET("/health", controllers.Health)
	router.GET("/", pages.Home)
	router.GET("/signup", controllers.Signup)
	router.GET("/login", auth.ShowLogin)
	router.POST("/login", auth.PerformLogin)
	router.GET("/logout", controllers.Logout)
	router.GET("/events", events.ListEvents)

	// Organization routes; registered before /events/:id so "new" is static
	org := router.Group("/", middleware.AuthRequired, middleware.RoleRequired(models.RoleOrganization))
	{
		org.GET("/events/new", creation.ShowCreateEvent)
		org.POST("/events/new", creation.CreateEvent)
		org.GET("/profile/organization", profiles.ShowProfile)
		org.POST("/profile/organization", profiles.UpdateProfile)
		org.GET("/dashboard/organization", controllers.Dashboard(models.RoleOrganization))
	}

	router.GET("/events/:id", events.ShowEvent)
	router.GET("/events/:id/qrcode", events.QRCode)

	// Participant routes
	part := router.Group("/", middleware.AuthRequired, middleware.RoleRequired(models.RoleParticipant))
	{
		part.GET("/events/:id/register", registrations.ShowRegistration)
		part.POST("/events/:id/register", registrations.SubmitRegistration)
		part.GET("/profile/participant", profiles.ShowProfile)
		part.POST("/profile/participant", profiles.UpdateProfile)
		part.GET("/dashboard/participant", controllers.Dashboard(models.RoleParticipant))
	}

	router.NoRoute(controllers.NotFound)

	return router, nil
}

// TemplateFuncs are the helpers available to every page template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Mon, 02 Jan 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("02 Jan 2006, 15:04")
		},
		"formatOptionalDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("Mon, 02 Jan 2006")
		},
		"tabURL": func(id string, tab models.EventTab) string {
			return "/events/" + url.PathEscape(id) + "?tab=" + url.QueryEscape(string(tab))
		},
		"expandURL": func(id string, tab models.EventTab, expanded bool) string {
			u := "/events/" + url.PathEscape(id) + "?tab=" + url.QueryEscape(string(tab))
			if !expanded {
				u += "&expanded=1"
			}
			return u
		},
		"join": strings.Join,
		"list": func(items ...string) []string {
			return items
		},
		"fieldError": func(errs services.FieldErrors, field string) string {
			return errs[field]
		},
	}
}
