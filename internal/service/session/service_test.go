package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIssueAndTouch(t *testing.T) {
	svc := New(time.Hour)
	ctx := context.Background()

	id, err := svc.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := svc.Touch(ctx, id); err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if err := svc.Touch(ctx, "unknown"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if err := svc.Touch(ctx, ""); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for empty id, got %v", err)
	}
}

func TestSessionExpires(t *testing.T) {
	svc := New(time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.sessions.now = func() time.Time { return now }
	ctx := context.Background()

	id, _ := svc.Issue(ctx)
	now = now.Add(30 * time.Second)
	if err := svc.Touch(ctx, id); err != nil {
		t.Fatalf("expected session alive, got %v", err)
	}
	now = now.Add(45 * time.Second)
	if err := svc.Touch(ctx, id); err != nil {
		t.Fatalf("expected touch to extend expiry, got %v", err)
	}
	now = now.Add(2 * time.Minute)
	if err := svc.Touch(ctx, id); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestIssueSweepsExpired(t *testing.T) {
	svc := New(time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.sessions.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = svc.Issue(ctx)
	}
	now = now.Add(5 * time.Minute)
	_, _ = svc.Issue(ctx)
	if got := len(svc.sessions.expiry); got != 1 {
		t.Fatalf("expected 1 live session after sweep, got %d", got)
	}
}
