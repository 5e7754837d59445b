// Package session holds the explicit auth session context passed to
// components that need it, replacing ambient cookie reads. Tokens are issued
// and verified by the remote auth service; locally we only inspect expiry.
package session

import (
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the capability surface {IsAuthenticated, Token, OnChange}
// shared by the planner and the remote-service clients. Safe for concurrent
// use.
type Session struct {
	mu       sync.Mutex
	token    string
	onChange []func(authenticated bool)
}

func New() *Session { return &Session{} }

// NewWithToken returns a session pre-seeded with a bearer token, e.g. one
// extracted from an incoming request's Authorization header.
func NewWithToken(token string) *Session {
	return &Session{token: token}
}

// SetToken replaces the session token and notifies subscribers.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	handlers := append([]func(bool){}, s.onChange...)
	authed := s.authenticatedLocked()
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(authed)
	}
}

// Token returns the current bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether the session carries a usable token.
// A token that decodes as a JWT with a past expiry is treated as logged out
// without waiting for the remote service to reject it.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticatedLocked()
}

func (s *Session) authenticatedLocked() bool {
	if s.token == "" {
		return false
	}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return false
	}
	return true
}

// OnChange subscribes to authentication-state transitions. Handlers run on
// the goroutine that triggered the change.
func (s *Session) OnChange(fn func(authenticated bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// ForceLogout clears the token, e.g. after a remote 401.
func (s *Session) ForceLogout() {
	log.Printf("session: forced logout")
	s.SetToken("")
}
