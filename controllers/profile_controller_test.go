// file: controllers/profile_controller_test.go
package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"techevents-web/middleware"
	"techevents-web/models"
	"techevents-web/services"
)

const formContentType = "application/x-www-form-urlencoded"

func participant() *models.User {
	return &models.User{
		ID:         "p-1",
		Role:       models.RoleParticipant,
		Name:       "Asha",
		Email:      "asha@uni.test",
		University: "MIT",
		Course:     "CS",
	}
}

func organization() *models.User {
	return &models.User{
		ID:       "org-1",
		Role:     models.RoleOrganization,
		Name:     "GDG Pune",
		Email:    "team@gdg.test",
		Location: "Pune",
		About:    "Community",
		Since:    "2015",
		Type:     "Community",
	}
}

func setupProfileRouter(t *testing.T, api *services.MockAPI) *gin.Engine {
	t.Helper()
	pc := NewProfileController(services.NewProfileService(api, nil))
	router := setupTestRouter(t)

	org := router.Group("/profile/organization", middleware.AuthRequired, middleware.RoleRequired(models.RoleOrganization))
	org.GET("", pc.ShowProfile)
	org.POST("", pc.UpdateProfile)

	part := router.Group("/profile/participant", middleware.AuthRequired, middleware.RoleRequired(models.RoleParticipant))
	part.GET("", pc.ShowProfile)
	part.POST("", pc.UpdateProfile)
	return router
}

func participantForm(name string) string {
	return url.Values{
		"name":       {name},
		"email":      {"someone-else@evil.test"},
		"university": {"MIT"},
		"course":     {"ECE"},
	}.Encode()
}

func TestShowProfile_PrefillsFromSession(t *testing.T) {
	router := setupProfileRouter(t, new(services.MockAPI))
	cookies := SetSession(router, "/test/login", organization(), true)

	w := performRequest(router, http.MethodGet, "/profile/organization", nil, "", cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "email=team@gdg.test")
	assert.Contains(t, w.Body.String(), "name=GDG Pune")
}

func TestShowProfile_NoSessionRedirectsToLogin(t *testing.T) {
	router := setupProfileRouter(t, new(services.MockAPI))

	w := performRequest(router, http.MethodGet, "/profile/participant", nil, "", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestShowProfile_RecordWithoutIDClearsBothStores(t *testing.T) {
	router := setupProfileRouter(t, new(services.MockAPI))
	broken := participant()
	broken.ID = ""
	cookies := SetSession(router, "/test/login", broken, true)

	w := performRequest(router, http.MethodGet, "/profile/participant", nil, "", cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	state := readSession(t, router, mergeCookies(cookies, w))
	assert.False(t, state.DurableHas)
	assert.False(t, state.TransientHas)
}

func TestShowProfile_WrongRole(t *testing.T) {
	router := setupProfileRouter(t, new(services.MockAPI))
	cookies := SetSession(router, "/test/login", participant(), false)

	w := performRequest(router, http.MethodGet, "/profile/organization", nil, "", cookies)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/participant", w.Header().Get("Location"))
}

// The updated record lands in whichever store held the old one.
func TestUpdateProfile_SuccessKeepsStore(t *testing.T) {
	for _, remember := range []bool{true, false} {
		api := new(services.MockAPI)
		api.On("UpdateParticipant", mock.Anything, "p-1", models.ParticipantUpdate{
			Name:       "Asha K",
			Email:      "asha@uni.test",
			University: "MIT",
			Course:     "ECE",
		}).Return(&models.User{ID: "p-1", Name: "Asha K", Email: "asha@uni.test", University: "MIT", Course: "ECE"}, nil).Once()

		router := setupProfileRouter(t, api)
		cookies := SetSession(router, "/test/login", participant(), remember)
		before := readSession(t, router, cookies)

		w := performRequest(router, http.MethodPost, "/profile/participant",
			strings.NewReader(participantForm("Asha K")), formContentType, cookies)

		require.Equal(t, http.StatusFound, w.Code, "remember=%v", remember)
		assert.Equal(t, "/dashboard/participant", w.Header().Get("Location"))

		after := readSession(t, router, mergeCookies(cookies, w))
		assert.Equal(t, before.Kind, after.Kind, "remember=%v", remember)
		assert.Equal(t, remember, after.DurableHas)
		assert.Equal(t, !remember, after.TransientHas)
		require.NotNil(t, after.User)
		assert.Equal(t, "Asha K", after.User.Name)
		assert.Equal(t, "ECE", after.User.Course)
		assert.Equal(t, models.RoleParticipant, after.User.Role)
		api.AssertExpectations(t)
	}
}

// An organization's about text easily exceeds what a cookie can hold.
func TestUpdateProfile_LongAboutKeepsStore(t *testing.T) {
	about := strings.Repeat("Monthly meetups, study jams and a yearly DevFest. ", 100) + "Join us."
	require.Greater(t, len(about), 4096)

	for _, remember := range []bool{true, false} {
		updated := organization()
		updated.About = about

		api := new(services.MockAPI)
		api.On("UpdateOrganization", mock.Anything, "org-1", mock.MatchedBy(func(body models.OrganizationUpdate) bool {
			return body.About == about && body.Email == "team@gdg.test"
		})).Return(updated, nil).Once()

		router := setupProfileRouter(t, api)
		cookies := SetSession(router, "/test/login", organization(), remember)
		before := readSession(t, router, cookies)

		form := url.Values{
			"name": {"GDG Pune"}, "location": {"Pune"}, "type": {"Community"},
			"since": {"2015"}, "about": {about},
		}
		w := performRequest(router, http.MethodPost, "/profile/organization",
			strings.NewReader(form.Encode()), formContentType, cookies)

		require.Equal(t, http.StatusFound, w.Code, "remember=%v body=%s", remember, w.Body.String())
		assert.Equal(t, "/dashboard/organization", w.Header().Get("Location"))

		after := readSession(t, router, mergeCookies(cookies, w))
		assert.Equal(t, before.Kind, after.Kind, "remember=%v", remember)
		assert.Equal(t, remember, after.DurableHas)
		assert.Equal(t, !remember, after.TransientHas)
		require.NotNil(t, after.User)
		assert.Equal(t, about, after.User.About)
		api.AssertExpectations(t)
	}
}

func TestUpdateProfile_EmptyNameMakesNoCall(t *testing.T) {
	api := new(services.MockAPI)
	router := setupProfileRouter(t, api)
	cookies := SetSession(router, "/test/login", participant(), true)

	w := performRequest(router, http.MethodPost, "/profile/participant",
		strings.NewReader(participantForm("")), formContentType, cookies)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "[name:Name is required]")
	assert.Empty(t, api.Calls)
}

func TestUpdateProfile_OrganizationRequiresFoundingYear(t *testing.T) {
	api := new(services.MockAPI)
	router := setupProfileRouter(t, api)
	cookies := SetSession(router, "/test/login", organization(), false)

	form := url.Values{"name": {"GDG"}, "location": {"Pune"}, "type": {"Community"}, "about": {"x"}}
	w := performRequest(router, http.MethodPost, "/profile/organization",
		strings.NewReader(form.Encode()), formContentType, cookies)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "[since:Founding year is required]")
	assert.Empty(t, api.Calls)
}

func TestUpdateProfile_SessionExpired(t *testing.T) {
	api := new(services.MockAPI)
	api.On("UpdateParticipant", mock.Anything, "p-1", mock.Anything).
		Return(nil, &services.APIError{Status: http.StatusForbidden}).Once()

	router := setupProfileRouter(t, api)
	cookies := SetSession(router, "/test/login", participant(), true)

	w := performRequest(router, http.MethodPost, "/profile/participant",
		strings.NewReader(participantForm("Asha")), formContentType, cookies)

	assert.Equal(t, http.StatusForbidden, w.Code, "no redirect on 403")
	assert.Contains(t, w.Body.String(), "[submit:Session expired, please log in again]")

	state := readSession(t, router, mergeCookies(cookies, w))
	assert.Equal(t, "Asha", state.User.Name, "session record untouched")
}

func TestUpdateProfile_ServerAndTransportErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&services.APIError{Status: http.StatusBadRequest, Body: []byte(`{"message":"Course unknown"}`)}, "[submit:Course unknown]"},
		{&services.APIError{Status: http.StatusInternalServerError, Body: []byte("oops")}, "[submit:Server error 500]"},
		{errors.New("connection refused"), "[submit:Unable to reach the server, please try again]"},
	}
	for _, tt := range tests {
		api := new(services.MockAPI)
		api.On("UpdateParticipant", mock.Anything, "p-1", mock.Anything).Return(nil, tt.err).Once()

		router := setupProfileRouter(t, api)
		cookies := SetSession(router, "/test/login", participant(), false)

		w := performRequest(router, http.MethodPost, "/profile/participant",
			strings.NewReader(participantForm("Asha")), formContentType, cookies)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), tt.want)
	}
}
