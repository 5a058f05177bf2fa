// file: controllers/test_helpers.go
package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"techevents-web/models"
	"techevents-web/session"
)

// setupTestRouter creates a new Gin engine with both session stores and fake
// HTML templates.
func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := session.NewStore([]byte("test-secret"))
	router.Use(session.Middleware(store, session.Policy{DurableMaxAge: 3600}))

	// Create minimal templates to avoid panics during testing.
	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))

	router.GET("/test/whoami", whoami)
	return router
}

// createDummyTemplates writes a set of minimal HTML templates to the provided directory.
func createDummyTemplates(dir string) error {
	templates := map[string]string{
		"home.html":                   `{{.Title}}|slides={{len .Slides}}|{{range .Events}}[{{.ID}} open={{.Open}}]{{end}}|{{.EventsError}}`,
		"events.html":                 `{{range .Events}}[{{.ID}} open={{.Open}}]{{end}}`,
		"event_detail.html":           `{{.Title}}|tab={{.Tab}}|expanded={{.Expanded}}|open={{.Open}}|price={{.Event.Price}}|{{range .Event.Prizes}}({{.}}){{end}}`,
		"event_error.html":            `{{.Message}}|cta={{.CTA}}|link={{.CTALink}}`,
		"register.html":               `{{.Title}}|open={{.Open}}|error={{.Error}}`,
		"profile_organization.html":   `{{range $k, $v := .Errors}}[{{$k}}:{{$v}}]{{end}}|email={{.Email}}|name={{index .Form "name"}}`,
		"profile_participant.html":    `{{range $k, $v := .Errors}}[{{$k}}:{{$v}}]{{end}}|email={{.Email}}|name={{index .Form "name"}}`,
		"create_event.html":           `error={{.Error}}`,
		"event_created.html":          `created={{.EventID}}|redirect={{.RedirectURL}}|delay={{.DelaySeconds}}`,
		"login.html":                  `error={{.Error}}`,
		"signup.html":                 `{{.Title}}`,
		"dashboard_organization.html": `{{range .Flashes}}[{{.}}]{{end}}|user={{.Profile.Name}}`,
		"dashboard_participant.html":  `{{range .Flashes}}[{{.}}]{{end}}|user={{.Profile.Name}}`,
	}

	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// storeState is what /test/whoami reports about the two stores.
type storeState struct {
	Kind         string       `json:"kind"`
	User         *models.User `json:"user"`
	DurableHas   bool         `json:"durableHas"`
	TransientHas bool         `json:"transientHas"`
}

func whoami(c *gin.Context) {
	us := session.FromContext(c)
	user, _ := us.Get()
	c.JSON(http.StatusOK, storeState{
		Kind:         string(us.Kind()),
		User:         user,
		DurableHas:   sessions.DefaultMany(c, session.DurableName).Get(session.UserKey) != nil,
		TransientHas: sessions.DefaultMany(c, session.TransientName).Get(session.UserKey) != nil,
	})
}

// SetSession logs user in through a helper route and returns the live
// cookies to attach to subsequent test requests.
func SetSession(router *gin.Engine, route string, user *models.User, remember bool) []*http.Cookie {
	router.GET(route, func(c *gin.Context) {
		if err := session.FromContext(c).Establish(user, remember); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	req, _ := http.NewRequest("GET", route, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return mergeCookies(nil, w)
}

// mergeCookies applies a response's Set-Cookie headers to jar, dropping
// expired cookies.
func mergeCookies(jar []*http.Cookie, w *httptest.ResponseRecorder) []*http.Cookie {
	byName := map[string]*http.Cookie{}
	var order []string
	for _, c := range jar {
		byName[c.Name] = c
		order = append(order, c.Name)
	}
	for _, c := range w.Result().Cookies() {
		if _, seen := byName[c.Name]; !seen {
			order = append(order, c.Name)
		}
		byName[c.Name] = c
	}

	var out []*http.Cookie
	for _, name := range order {
		if c := byName[name]; c.MaxAge >= 0 {
			out = append(out, c)
		}
	}
	return out
}

// performRequest sends one request with the given cookies attached.
func performRequest(router *gin.Engine, method, path string, body io.Reader, contentType string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// readSession asks /test/whoami which store holds what.
func readSession(t *testing.T, router *gin.Engine, cookies []*http.Cookie) storeState {
	t.Helper()
	w := performRequest(router, http.MethodGet, "/test/whoami", nil, "", cookies)
	var state storeState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("whoami: %v (%s)", err, w.Body.String())
	}
	return state
}
