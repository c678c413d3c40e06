package system

import (
	"context"
	"errors"
	"testing"
)

// recordingService appends lifecycle events to a shared log.
type recordingService struct {
	name     string
	events   *[]string
	startErr error
	stopErr  error
}

func (s *recordingService) Name() string { return s.name }

func (s *recordingService) Start(context.Context) error {
	*s.events = append(*s.events, "start:"+s.name)
	return s.startErr
}

func (s *recordingService) Stop(context.Context) error {
	*s.events = append(*s.events, "stop:"+s.name)
	return s.stopErr
}

func TestManagerStartsInOrderStopsInReverse(t *testing.T) {
	var events []string
	m := NewManager()
	for _, name := range []string{"a", "b", "c"} {
		if err := m.Register(&recordingService{name: name, events: &events}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	ctx := context.Background()
	if err := m.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	want := []string{"start:a", "start:b", "start:c", "stop:c", "stop:b", "stop:a"}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], events[i])
		}
	}
}

func TestManagerRejectsDuplicateNames(t *testing.T) {
	var events []string
	m := NewManager()
	if err := m.Register(&recordingService{name: "a", events: &events}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := m.Register(&recordingService{name: "a", events: &events}); err == nil {
		t.Fatal("expected a duplicate name to be rejected")
	}
}

func TestManagerRejectsRegistrationAfterStart(t *testing.T) {
	var events []string
	m := NewManager()
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Register(&recordingService{name: "late", events: &events}); err == nil {
		t.Fatal("expected registration after start to be rejected")
	}
}

func TestManagerStartFailureRollsBack(t *testing.T) {
	var events []string
	m := NewManager()
	_ = m.Register(&recordingService{name: "a", events: &events})
	_ = m.Register(&recordingService{name: "b", events: &events, startErr: errors.New("boom")})

	if err := m.Start(context.Background()); err == nil {
		t.Fatal("expected start to fail")
	}

	want := []string{"start:a", "start:b", "stop:a"}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], events[i])
		}
	}
}

func TestManagerStopReturnsFirstErrorAfterStoppingAll(t *testing.T) {
	var events []string
	m := NewManager()
	_ = m.Register(&recordingService{name: "a", events: &events, stopErr: errors.New("a failed")})
	_ = m.Register(&recordingService{name: "b", events: &events, stopErr: errors.New("b failed")})

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	err := m.Stop(context.Background())
	if err == nil {
		t.Fatal("expected stop to surface an error")
	}
	// Stop runs in reverse order, so b's failure is seen first.
	if got := err.Error(); got != "stop b: b failed" {
		t.Fatalf("unexpected error: %q", got)
	}

	want := []string{"start:a", "start:b", "stop:b", "stop:a"}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
}

func TestNoopService(t *testing.T) {
	svc := NoopService{ServiceName: "catalog"}
	if svc.Name() != "catalog" {
		t.Fatalf("unexpected name %q", svc.Name())
	}
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
