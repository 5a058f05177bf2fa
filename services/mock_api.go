package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"techevents-web/models"
)

// ensure MockAPI implements every API interface
var (
	_ EventAPI   = (*MockAPI)(nil)
	_ ProfileAPI = (*MockAPI)(nil)
	_ AuthAPI    = (*MockAPI)(nil)
)

// MockAPI is a mock implementation of the TechEvents API for tests.
type MockAPI struct {
	mock.Mock
}

// ListEvents (Mocked)
func (m *MockAPI) ListEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]models.Event)
	return events, args.Error(1)
}

// GetEvent (Mocked)
func (m *MockAPI) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	event, _ := args.Get(0).(*models.Event)
	return event, args.Error(1)
}

// CreateEvent (Mocked)
func (m *MockAPI) CreateEvent(ctx context.Context, orgID string, payload models.EventPayload, image models.ImageUpload) (*models.Event, error) {
	args := m.Called(ctx, orgID, payload, image)
	event, _ := args.Get(0).(*models.Event)
	return event, args.Error(1)
}

// RegisterForEvent (Mocked)
func (m *MockAPI) RegisterForEvent(ctx context.Context, eventID string, req models.RegistrationRequest) error {
	args := m.Called(ctx, eventID, req)
	return args.Error(0)
}

// UpdateOrganization (Mocked)
func (m *MockAPI) UpdateOrganization(ctx context.Context, id string, body models.OrganizationUpdate) (*models.User, error) {
	args := m.Called(ctx, id, body)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// UpdateParticipant (Mocked)
func (m *MockAPI) UpdateParticipant(ctx context.Context, id string, body models.ParticipantUpdate) (*models.User, error) {
	args := m.Called(ctx, id, body)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// Login (Mocked)
func (m *MockAPI) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	args := m.Called(ctx, creds)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
