// File: services/profile_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"techevents-web/logger"
	"techevents-web/metrics"
	"techevents-web/models"
)

// SubmitErrorKey is the reserved FieldErrors key for submission failures.
const SubmitErrorKey = "submit"

// user-facing submission messages
const (
	MsgSessionExpired    = "Session expired, please log in again"
	MsgServerUnreachable = "Unable to reach the server, please try again"
)

var (
	// ErrValidation means the form has field errors and nothing was sent.
	ErrValidation = errors.New("profile form has validation errors")
	// ErrProfileNotLoaded means there is no session record to update.
	ErrProfileNotLoaded = errors.New("no profile loaded")
	// ErrSubmitFailed means the API rejected or never received the update.
	ErrSubmitFailed = errors.New("profile update failed")
)

// ---------------- validation ----------------

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

// Clear drops the error for field.
func (e FieldErrors) Clear(field string) {
	delete(e, field)
}

// Has reports whether field currently has an error.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// FieldRule describes one required field of a profile form.
type FieldRule struct {
	Name  string
	Label string
}

// profilePayload returns an empty update body for role. Its binding tags are
// the form's validation rules.
func profilePayload(role models.Role) any {
	if role == models.RoleOrganization {
		return &models.OrganizationUpdate{}
	}
	return &models.ParticipantUpdate{}
}

// RequiredFields lists the fields of role's form bound with "required".
func RequiredFields(role models.Role) []FieldRule {
	t := reflect.TypeOf(profilePayload(role)).Elem()
	var rules []FieldRule
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if slices.Contains(strings.Split(field.Tag.Get("binding"), ","), "required") {
			rules = append(rules, FieldRule{Name: field.Tag.Get("form"), Label: field.Tag.Get("label")})
		}
	}
	return rules
}

// Validate checks fields against the binding rules of role's update body.
func Validate(role models.Role, fields map[string]string) FieldErrors {
	_, errs := bindProfile(role, fields)
	return errs
}

// bindProfile maps the trimmed fields onto role's update body and runs gin's
// validator over it. Failed rules are keyed by form field name.
func bindProfile(role models.Role, fields map[string]string) (any, FieldErrors) {
	values := make(map[string][]string, len(fields))
	for name, value := range fields {
		values[name] = []string{strings.TrimSpace(value)}
	}

	payload := profilePayload(role)
	errs := FieldErrors{}
	if err := binding.MapFormWithTag(payload, values, "form"); err != nil {
		errs[SubmitErrorKey] = err.Error()
		return payload, errs
	}

	err := binding.Validator.ValidateStruct(payload)
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		if err != nil {
			errs[SubmitErrorKey] = err.Error()
		}
		return payload, errs
	}

	t := reflect.TypeOf(payload).Elem()
	for _, fe := range invalid {
		field, _ := t.FieldByName(fe.StructField())
		errs[field.Tag.Get("form")] = fieldMessage(field.Tag.Get("label"), fe.Tag())
	}
	return payload, errs
}

func fieldMessage(label, rule string) string {
	if rule == "required" {
		return label + " is required"
	}
	return label + " is invalid"
}

// ---------------- form state ----------------

// ProfileForm is the editable state of a profile page.
type ProfileForm struct {
	Role   models.Role
	Values map[string]string
	Errors FieldErrors
}

// NewProfileForm seeds a form from the session record.
func NewProfileForm(user *models.User) *ProfileForm {
	role := models.RoleParticipant
	if user != nil && user.Role.Valid() {
		role = user.Role
	}
	return &ProfileForm{
		Role:   role,
		Values: models.ProfileFields(user),
		Errors: FieldErrors{},
	}
}

// Set updates a field and clears its error if the value changed.
func (f *ProfileForm) Set(name, value string) {
	if f.Values[name] == value {
		return
	}
	f.Values[name] = value
	f.Errors.Clear(name)
}

// Get returns the current value of a field.
func (f *ProfileForm) Get(name string) string {
	return f.Values[name]
}

// ---------------- submission ----------------

// ProfileService validates and submits profile updates.
type ProfileService struct {
	api     ProfileAPI
	metrics metrics.Publisher
}

// NewProfileService wires a ProfileService.
func NewProfileService(api ProfileAPI, pub metrics.Publisher) *ProfileService {
	if pub == nil {
		pub = metrics.Nop{}
	}
	return &ProfileService{api: api, metrics: pub}
}

// Submit validates form and sends one update for user. The email always comes
// from user. On success it returns the server's record; on failure the reason
// is stored in form.Errors.
func (s *ProfileService) Submit(ctx context.Context, user *models.User, form *ProfileForm) (*models.User, error) {
	if !user.HasIdentity() {
		return nil, ErrProfileNotLoaded
	}

	payload, errs := bindProfile(form.Role, form.Values)
	form.Errors = errs
	if len(form.Errors) > 0 {
		return nil, ErrValidation
	}

	updated, err := s.send(ctx, user, payload)
	if err != nil {
		form.Errors[SubmitErrorKey] = SubmitErrorMessage(err)
		page := string(form.Role) + "_profile"
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden {
			s.metrics.Count(metrics.SessionExpired, page)
		} else {
			s.metrics.Count(metrics.ProfileUpdateError, page)
		}
		logger.Warn.Printf("ProfileService: update for %s %s failed: %v", form.Role, user.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	if updated.ID == "" {
		updated.ID = user.ID
	}
	if !updated.Role.Valid() {
		updated.Role = user.Role
	}
	s.metrics.Count(metrics.ProfileUpdated, string(form.Role)+"_profile")
	logger.Info.Printf("ProfileService: updated %s %s", updated.Role, updated.ID)
	return updated, nil
}

// send fills the email from user and issues the role's PUT.
func (s *ProfileService) send(ctx context.Context, user *models.User, payload any) (*models.User, error) {
	switch body := payload.(type) {
	case *models.OrganizationUpdate:
		body.Email = user.Email
		return s.api.UpdateOrganization(ctx, user.ID, *body)
	case *models.ParticipantUpdate:
		body.Email = user.Email
		return s.api.UpdateParticipant(ctx, user.ID, *body)
	}
	return nil, fmt.Errorf("unsupported profile payload %T", payload)
}

// SubmitErrorMessage maps an API failure to the message shown under the
// reserved submit key.
func SubmitErrorMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return MsgServerUnreachable
	}
	if apiErr.Status == http.StatusForbidden {
		return MsgSessionExpired
	}
	if msg := apiErr.ServerMessage(); msg != "" {
		return msg
	}
	return fmt.Sprintf("Server error %d", apiErr.Status)
}
