// Package services talks to the TechEvents API and holds the page-level rules
// (eligibility, validation, payload building) the controllers render.
// File: services/api_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"techevents-web/logger"
	"techevents-web/models"
)

// maxResponseBytes caps how much of an API response is read.
const maxResponseBytes = 1 << 20

// ---------------- interfaces ----------------

// EventAPI covers the event endpoints.
type EventAPI interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, orgID string, payload models.EventPayload, image models.ImageUpload) (*models.Event, error)
	RegisterForEvent(ctx context.Context, eventID string, req models.RegistrationRequest) error
}

// ProfileAPI covers the profile update endpoints.
type ProfileAPI interface {
	UpdateOrganization(ctx context.Context, id string, body models.OrganizationUpdate) (*models.User, error)
	UpdateParticipant(ctx context.Context, id string, body models.ParticipantUpdate) (*models.User, error)
}

// AuthAPI forwards login credentials.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
}

// ---------------- errors ----------------

// APIError is a non-2xx response from the API.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// ServerMessage extracts a human message from a JSON body shaped like
// {"message": "..."} or {"error": "..."}. It returns "" when there is none.
func (e *APIError) ServerMessage() string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(body.Error)
}

// BodyText is the raw response body, trimmed.
func (e *APIError) BodyText() string {
	return strings.TrimSpace(string(e.Body))
}

// ---------------- client ----------------

// APIClient is the HTTP implementation of every API interface.
type APIClient struct {
	baseURL string
	http    *http.Client
}

var (
	_ EventAPI   = (*APIClient)(nil)
	_ ProfileAPI = (*APIClient)(nil)
	_ AuthAPI    = (*APIClient)(nil)
)

// NewAPIClient builds a client rooted at baseURL (e.g. http://localhost:8080/api).
// A nil httpClient uses http.DefaultClient.
func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// ListEvents performs GET /events.
func (a *APIClient) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := a.doJSON(ctx, http.MethodGet, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent performs GET /events/{id}.
func (a *APIClient) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := a.doJSON(ctx, http.MethodGet, "/events/"+url.PathEscape(id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent performs the multipart POST /organizations/{orgId}/create-event
// with an "event" JSON part and one "image" part.
func (a *APIClient) CreateEvent(ctx context.Context, orgID string, payload models.EventPayload, image models.ImageUpload) (*models.Event, error) {
	body, contentType, err := encodeEventMultipart(payload, image)
	if err != nil {
		return nil, err
	}

	path := "/organizations/" + url.PathEscape(orgID) + "/create-event"
	var created models.Event
	if err := a.do(ctx, http.MethodPost, path, contentType, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// RegisterForEvent performs POST /events/{id}/register.
func (a *APIClient) RegisterForEvent(ctx context.Context, eventID string, req models.RegistrationRequest) error {
	return a.doJSON(ctx, http.MethodPost, "/events/"+url.PathEscape(eventID)+"/register", req, nil)
}

// UpdateOrganization performs PUT /organizations/{id}.
func (a *APIClient) UpdateOrganization(ctx context.Context, id string, body models.OrganizationUpdate) (*models.User, error) {
	var updated models.User
	if err := a.doJSON(ctx, http.MethodPut, "/organizations/"+url.PathEscape(id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateParticipant performs PUT /participants/update/{id}.
func (a *APIClient) UpdateParticipant(ctx context.Context, id string, body models.ParticipantUpdate) (*models.User, error) {
	var updated models.User
	if err := a.doJSON(ctx, http.MethodPut, "/participants/update/"+url.PathEscape(id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Login performs POST /auth/login.
func (a *APIClient) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	var user models.User
	if err := a.doJSON(ctx, http.MethodPost, "/auth/login", creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ---------------- transport helpers ----------------

func (a *APIClient) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return a.do(ctx, method, path, contentType, body, out)
}

func (a *APIClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		logger.Error.Printf("APIClient: %s %s failed: %v", method, path, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn.Printf("APIClient: %s %s returned %d", method, path, resp.StatusCode)
		return &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: data}
	}

	logger.Debug.Printf("APIClient: %s %s returned %d (%d bytes)", method, path, resp.StatusCode, len(data))
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func encodeEventMultipart(payload models.EventPayload, image models.ImageUpload) (io.Reader, string, error) {
	eventJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("encode event part: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	eventHeader := textproto.MIMEHeader{}
	eventHeader.Set("Content-Disposition", `form-data; name="event"`)
	eventHeader.Set("Content-Type", "application/json")
	eventPart, err := mw.CreatePart(eventHeader)
	if err != nil {
		return nil, "", fmt.Errorf("create event part: %w", err)
	}
	if _, err := eventPart.Write(eventJSON); err != nil {
		return nil, "", fmt.Errorf("write event part: %w", err)
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	imageHeader := textproto.MIMEHeader{}
	imageHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, image.FileName))
	imageHeader.Set("Content-Type", contentType)
	imagePart, err := mw.CreatePart(imageHeader)
	if err != nil {
		return nil, "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := imagePart.Write(image.Data); err != nil {
		return nil, "", fmt.Errorf("write image part: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
