// file: services/api_client_test.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"techevents-web/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAPIClient(srv.URL+"/api/", srv.Client())
}

func TestAPIClient_GetEvent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/events/ev-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"_id":"ev-1","title":"Hack Night","eventDate":"2026-11-01T10:00:00Z","organizer":"GDG"}`)
	})

	event, err := client.GetEvent(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "ev-1", event.ID)
	assert.Equal(t, "GDG", event.Organizer.Name())
}

func TestAPIClient_NonSuccessReturnsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Event not found"}`)
	})

	_, err := client.GetEvent(context.Background(), "missing")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Event not found", apiErr.ServerMessage())
}

func TestAPIClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewAPIClient(srv.URL, nil).ListEvents(context.Background())

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestAPIClient_UpdateParticipant(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/participants/update/p-1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body models.ParticipantUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "asha@uni.test", body.Email)

		_, _ = io.WriteString(w, `{"_id":"p-1","name":"Asha","email":"asha@uni.test","course":"ECE"}`)
	})

	user, err := client.UpdateParticipant(context.Background(), "p-1", models.ParticipantUpdate{Name: "Asha", Email: "asha@uni.test"})
	require.NoError(t, err)
	assert.Equal(t, "p-1", user.ID)
	assert.Equal(t, "ECE", user.Course)
}

func TestAPIClient_RegisterAcceptsEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events/ev-1/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	})

	err := client.RegisterForEvent(context.Background(), "ev-1", models.RegistrationRequest{ParticipantID: "p-1"})
	assert.NoError(t, err)
}

func TestAPIClient_CreateEventMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/organizations/org-1/create-event", r.URL.Path)

		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		assert.Equal(t, "multipart/form-data", mediaType)

		reader := multipart.NewReader(r.Body, params["boundary"])
		parts := map[string]int{}
		for {
			part, err := reader.NextPart()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			parts[part.FormName()]++

			switch part.FormName() {
			case "event":
				assert.Equal(t, "application/json", part.Header.Get("Content-Type"))
				var payload models.EventPayload
				require.NoError(t, json.NewDecoder(part).Decode(&payload))
				assert.Equal(t, "Go Meetup", payload.Title)
				assert.Equal(t, "org-1", payload.OrganizerID)
			case "image":
				assert.Equal(t, "placeholder-x.png", part.FileName())
				assert.Equal(t, "image/png", part.Header.Get("Content-Type"))
				data, _ := io.ReadAll(part)
				assert.Equal(t, []byte("png"), data)
			}
		}
		assert.Equal(t, map[string]int{"event": 1, "image": 1}, parts)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"_id":"ev-9","title":"Go Meetup","eventDate":"2026-11-01"}`)
	})

	created, err := client.CreateEvent(context.Background(), "org-1",
		models.EventPayload{Title: "Go Meetup", OrganizerID: "org-1"},
		models.ImageUpload{FileName: "placeholder-x.png", ContentType: "image/png", Data: []byte("png")})

	require.NoError(t, err)
	assert.Equal(t, "ev-9", created.ID)
}

func TestAPIClient_Login(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, models.RoleOrganization, creds.Role)
		_, _ = io.WriteString(w, `{"id":"org-1","role":"organization","name":"GDG","email":"team@gdg.test"}`)
	})

	user, err := client.Login(context.Background(), models.Credentials{Email: "team@gdg.test", Password: "pw", Role: models.RoleOrganization})
	require.NoError(t, err)
	assert.Equal(t, models.RoleOrganization, user.Role)
}
