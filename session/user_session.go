// Package session keeps the logged-in user in one of two stores: a durable
// one whose cookie survives browser restarts, or a browser-session one whose
// cookie does not. A user record lives in exactly one of them at a time.
// File: session/user_session.go
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"techevents-web/logger"
	"techevents-web/models"
)

const (
	// DurableName is the cookie of the durable store.
	DurableName = "techevents_durable"
	// TransientName is the cookie of the browser-session store.
	TransientName = "techevents_session"
	// UserKey is the single key the user record is stored under.
	UserKey = "user"

	policyContextKey = "techevents.session.policy"
)

// Kind names a backing store.
type Kind string

const (
	Durable   Kind = "durable"
	Transient Kind = "session"
)

// ErrNoUser is returned when neither store holds a usable user record.
var ErrNoUser = errors.New("no user in session")

// Policy controls the cookie attributes of both stores.
type Policy struct {
	DurableMaxAge int // seconds
	Secure        bool
}

// DefaultPolicy keeps durable sessions for a week.
var DefaultPolicy = Policy{DurableMaxAge: 86400 * 7}

// -------------- middleware --------------

// NewStore keeps session values in process memory. Each cookie carries only
// the signed session ID, so a user record is not bound by the 4096-byte
// cookie limit. Per-store MaxAge still lives on the cookie options.
func NewStore(secret []byte) sessions.Store {
	return memstore.NewStore(secret)
}

// Middleware loads both stores for every request. Use it in place of
// sessions.Sessions.
func Middleware(store sessions.Store, policy Policy) gin.HandlerFunc {
	many := sessions.SessionsMany([]string{DurableName, TransientName}, store)
	return func(c *gin.Context) {
		c.Set(policyContextKey, policy)
		many(c)
	}
}

// FromContext returns the user session of the current request.
func FromContext(c *gin.Context) *UserSession {
	policy := DefaultPolicy
	if raw, ok := c.Get(policyContextKey); ok {
		if p, ok := raw.(Policy); ok {
			policy = p
		}
	}
	return New(sessions.DefaultMany(c, DurableName), sessions.DefaultMany(c, TransientName), policy)
}

// -------------- user session --------------

// UserSession is the get/set/clear contract over the two stores.
type UserSession struct {
	durable   sessions.Session
	transient sessions.Session
	policy    Policy
}

// New wraps two already-loaded stores.
func New(durable, transient sessions.Session, policy Policy) *UserSession {
	return &UserSession{durable: durable, transient: transient, policy: policy}
}

// holder resolves the backing store: whichever already holds the user,
// preferring the durable one, and the durable one when neither does.
func (s *UserSession) holder() (sessions.Session, Kind, bool) {
	if s.durable.Get(UserKey) != nil {
		return s.durable, Durable, true
	}
	if s.transient.Get(UserKey) != nil {
		return s.transient, Transient, true
	}
	return s.durable, Durable, false
}

// Kind reports the store currently holding the user (Durable when empty).
func (s *UserSession) Kind() Kind {
	_, kind, _ := s.holder()
	return kind
}

// Get returns the stored user. Records that cannot be decoded or that lack an
// identifier count as missing.
func (s *UserSession) Get() (*models.User, error) {
	store, kind, ok := s.holder()
	if !ok {
		return nil, ErrNoUser
	}

	raw, ok := store.Get(UserKey).(string)
	if !ok {
		logger.Warn.Printf("UserSession.Get: unexpected %T in %s store", store.Get(UserKey), kind)
		return nil, ErrNoUser
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Warn.Printf("UserSession.Get: corrupt user record in %s store: %v", kind, err)
		return nil, fmt.Errorf("%w: %v", ErrNoUser, err)
	}
	if !user.HasIdentity() {
		return nil, ErrNoUser
	}
	return &user, nil
}

// Set overwrites the user in the store that currently holds it. It never
// copies the record into the other store.
func (s *UserSession) Set(user *models.User) error {
	store, kind, _ := s.holder()
	if err := s.write(store, kind, user); err != nil {
		return err
	}
	logger.Debug.Printf("UserSession.Set: user %s written to %s store", user.ID, kind)
	return nil
}

// Establish starts a fresh login. Both stores are emptied, then the user is
// written to the durable store when remember is set, else the session store.
func (s *UserSession) Establish(user *models.User, remember bool) error {
	s.durable.Delete(UserKey)
	s.transient.Delete(UserKey)

	target, kind, other, otherKind := s.durable, Durable, s.transient, Transient
	if !remember {
		target, kind, other, otherKind = s.transient, Transient, s.durable, Durable
	}

	other.Options(s.cookieOptions(-1))
	if err := other.Save(); err != nil {
		return fmt.Errorf("save %s store: %w", otherKind, err)
	}
	return s.write(target, kind, user)
}

// Clear removes everything from both stores and expires their cookies.
func (s *UserSession) Clear() error {
	for _, entry := range []struct {
		store sessions.Session
		kind  Kind
	}{{s.durable, Durable}, {s.transient, Transient}} {
		entry.store.Clear()
		entry.store.Options(s.cookieOptions(-1))
		if err := entry.store.Save(); err != nil {
			return fmt.Errorf("clear %s store: %w", entry.kind, err)
		}
	}
	return nil
}

// AddFlash queues a one-shot message next to the user record.
func (s *UserSession) AddFlash(message string) error {
	store, kind, _ := s.holder()
	store.AddFlash(message)
	s.applyOptions(store, kind)
	return store.Save()
}

// Flashes drains the queued one-shot messages.
func (s *UserSession) Flashes() []string {
	store, kind, _ := s.holder()
	raw := store.Flashes()
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	s.applyOptions(store, kind)
	if err := store.Save(); err != nil {
		logger.Warn.Printf("UserSession.Flashes: failed to save %s store: %v", kind, err)
	}
	return out
}

// -------------- helpers --------------

func (s *UserSession) write(store sessions.Session, kind Kind, user *models.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	store.Set(UserKey, string(data))
	s.applyOptions(store, kind)
	if err := store.Save(); err != nil {
		return fmt.Errorf("save %s store: %w", kind, err)
	}
	return nil
}

func (s *UserSession) applyOptions(store sessions.Session, kind Kind) {
	maxAge := 0 // browser-session cookie
	if kind == Durable {
		maxAge = s.policy.DurableMaxAge
	}
	store.Options(s.cookieOptions(maxAge))
}

func (s *UserSession) cookieOptions(maxAge int) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.policy.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
