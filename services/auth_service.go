// File: services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"techevents-web/logger"
	"techevents-web/models"
)

// MsgInvalidCredentials is shown when the API rejects a login.
const MsgInvalidCredentials = "Invalid email or password"

var (
	// ErrMissingCredentials means the login form was incomplete.
	ErrMissingCredentials = errors.New("email, password and role are required")
	// ErrLoginFailed wraps API and transport failures.
	ErrLoginFailed = errors.New("login failed")

	errNoIdentity = errors.New("response has no id")
)

// AuthService forwards credentials to the API. It never checks passwords
// itself.
type AuthService struct {
	api AuthAPI
}

// NewAuthService wires an AuthService.
func NewAuthService(api AuthAPI) *AuthService {
	return &AuthService{api: api}
}

// Login returns the record to store in the session.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" || !creds.Role.Valid() {
		return nil, ErrMissingCredentials
	}

	user, err := s.api.Login(ctx, creds)
	if err != nil {
		logger.Warn.Printf("AuthService: login for %s failed: %v", creds.Email, err)
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	if !user.HasIdentity() {
		logger.Error.Printf("AuthService: login for %s returned a record without id", creds.Email)
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, errNoIdentity)
	}
	if !user.Role.Valid() {
		user.Role = creds.Role
	}
	logger.Info.Printf("AuthService: %s %s logged in", user.Role, user.ID)
	return user, nil
}

// LoginErrorMessage is the message shown on the login page.
func LoginErrorMessage(err error) string {
	if errors.Is(err, ErrMissingCredentials) {
		return "Please enter your email, password and account type"
	}
	if errors.Is(err, errNoIdentity) {
		return "Login failed, please try again"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return MsgInvalidCredentials
		}
	}
	return SubmitErrorMessage(err)
}
