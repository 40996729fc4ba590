package teststubs

import (
	"context"
	"sync"

	"smart-stadium/internal/effects"
	"smart-stadium/internal/lights"
)

// StubCommander is a test double for lights.Commander. It records every
// command and answers with the canned error unless ApplyFn is set.
type StubCommander struct {
	Err error

	// ApplyFn, when set, overrides the canned Err response.
	ApplyFn func(ctx context.Context, device lights.Device, effect effects.Effect) error

	mu     sync.Mutex
	sends  map[string]int
	labels []string
}

// Apply records the command and returns the scripted response.
func (s *StubCommander) Apply(ctx context.Context, device lights.Device, effect effects.Effect) error {
	s.mu.Lock()
	if s.sends == nil {
		s.sends = make(map[string]int)
	}
	s.sends[device.ID]++
	s.labels = append(s.labels, effect.Label)
	fn := s.ApplyFn
	err := s.Err
	s.mu.Unlock()

	if fn != nil {
		return fn(ctx, device, effect)
	}
	return err
}

// Sends returns how many commands a device has received.
func (s *StubCommander) Sends(deviceID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sends[deviceID]
}

// Labels returns the effect labels seen, in arrival order.
func (s *StubCommander) Labels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// SawLabel reports whether any recorded command carried the label.
func (s *StubCommander) SawLabel(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.labels {
		if l == label {
			return true
		}
	}
	return false
}
