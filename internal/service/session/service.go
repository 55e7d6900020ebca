// Package session issues and validates storefront session ids.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidSession = errors.New("invalid session")

type Service struct {
	sessions *sessionTable
	ttl      time.Duration
}

func New(ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{sessions: newSessionTable(), ttl: ttl}
}

func (s *Service) Issue(ctx context.Context) (string, error) {
	return s.sessions.Issue(s.ttl), nil
}

// Touch validates id and extends its lifetime by the session TTL.
func (s *Service) Touch(ctx context.Context, id string) error {
	if id == "" || !s.sessions.Touch(id, s.ttl) {
		return ErrInvalidSession
	}
	return nil
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
