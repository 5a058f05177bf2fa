// file: middleware/testutil_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"techevents-web/models"
	"techevents-web/session"
)

// setupSessionRouter returns a router with both session stores and a
// /seed route that logs user in (remember picks the durable store).
func setupSessionRouter(user *models.User, remember bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(session.Middleware(session.NewStore([]byte("secret")), session.Policy{DurableMaxAge: 3600}))

	router.GET("/seed", func(c *gin.Context) {
		if err := session.FromContext(c).Establish(user, remember); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, "seeded")
	})
	return router
}

// seedCookies runs /seed and returns the cookies it set.
func seedCookies(t *testing.T, router *gin.Engine) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/seed", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var live []*http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.MaxAge >= 0 {
			live = append(live, c)
		}
	}
	return live
}

func serve(router *gin.Engine, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	router.ServeHTTP(w, req)
	return w
}
