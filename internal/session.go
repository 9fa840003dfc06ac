package internal

import "sync"

// Session holds the credentials of one logged-in user. The client reads it on
// every request and writes it on login, refresh and logout.
type Session interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(access, refresh string) error
	SetAccessToken(access string) error
	Clear() error
}

type MemorySession struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewMemorySession() *MemorySession {
	return &MemorySession{}
}

func (s *MemorySession) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemorySession) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemorySession) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

func (s *MemorySession) SetAccessToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	return nil
}

func (s *MemorySession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}
