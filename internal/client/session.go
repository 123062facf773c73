package client

import (
	"sync"

	"comanda-service/internal/domain"
)

// Navigator moves the user interface back to its login entry point.
type Navigator interface {
	ToLogin()
}

type NavigatorFunc func()

func (f NavigatorFunc) ToLogin() { f() }

// Session is the authenticated identity shared by every call made through a
// Client. It starts empty, is filled by Login and is cleared by Logout or by
// any unauthorized response.
type Session struct {
	mu    sync.RWMutex
	token string
	ident domain.Identity
}

func NewSession() *Session { return &Session{} }

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Current returns the logged-in identity, if any.
func (s *Session) Current() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ident, s.token != ""
}

func (s *Session) set(token string, ident domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.ident = ident
}

// clear reports whether there was a session to clear.
func (s *Session) clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.token != ""
	s.token = ""
	s.ident = domain.Identity{}
	return had
}
