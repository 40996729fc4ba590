package lights

import (
	"testing"
	"time"
)

func testDevices() []Device {
	return []Device{
		{ID: "left", Name: "Left", Protocol: ProtocolWiz, Address: "10.0.0.1", Enabled: true},
		{ID: "right", Name: "Right", Protocol: ProtocolWiz, Address: "10.0.0.2", Enabled: true},
		{ID: "strip", Name: "Strip", Protocol: ProtocolGovee, Address: "AA:BB", Model: "H6159", Enabled: false},
	}
}

func TestRegistryListsInConfigurationOrder(t *testing.T) {
	r := NewRegistry(testDevices(), nil)

	states := r.List()
	if len(states) != 3 {
		t.Fatalf("expected 3 states, got %d", len(states))
	}
	for i, want := range []string{"left", "right", "strip"} {
		if states[i].ID != want {
			t.Fatalf("expected %s at position %d, got %s", want, i, states[i].ID)
		}
	}
	if states[0].Reachable != nil {
		t.Fatalf("expected unknown reachability before any dispatch")
	}
}

func TestRegistrySetEnabled(t *testing.T) {
	r := NewRegistry(testDevices(), nil)

	state, err := r.SetEnabled("strip", true)
	if err != nil {
		t.Fatalf("SetEnabled returned error: %v", err)
	}
	if !state.Enabled {
		t.Fatalf("expected strip enabled")
	}

	if _, err := r.SetEnabled("ghost", true); err == nil {
		t.Fatalf("expected error for unknown device")
	}

	total, enabled, _ := r.Counts()
	if total != 3 || enabled != 3 {
		t.Fatalf("expected 3/3 enabled after toggle, got %d/%d", enabled, total)
	}
}

func TestRegistryAppliesOutcomes(t *testing.T) {
	r := NewRegistry(testDevices(), nil)
	at := time.Date(2025, 11, 2, 18, 0, 0, 0, time.UTC)

	r.ApplyOutcomes(map[string]Outcome{
		"left":  {Status: OutcomeSucceeded, Attempts: 1},
		"right": {Status: OutcomeTimedOut, Attempts: 1},
		"strip": {Status: OutcomeSkipped},
		"ghost": {Status: OutcomeSucceeded},
	}, at)

	left, _ := r.Get("left")
	if left.Reachable == nil || !*left.Reachable {
		t.Fatalf("expected left reachable, got %+v", left.Reachable)
	}
	if left.LastAttempt != at || left.LastOutcome != string(OutcomeSucceeded) {
		t.Fatalf("unexpected left state: %+v", left)
	}

	right, _ := r.Get("right")
	if right.Reachable == nil || *right.Reachable {
		t.Fatalf("expected right unreachable")
	}

	// Skipped devices were never attempted; their state stays unknown.
	strip, _ := r.Get("strip")
	if strip.Reachable != nil || !strip.LastAttempt.IsZero() {
		t.Fatalf("expected strip untouched, got %+v", strip)
	}

	_, _, reachable := r.Counts()
	if reachable != 1 {
		t.Fatalf("expected 1 reachable device, got %d", reachable)
	}
}

func TestRegistryListReturnsCopies(t *testing.T) {
	r := NewRegistry(testDevices(), nil)

	states := r.List()
	states[0].Enabled = false
	states[0].ID = "mutated"

	fresh, _ := r.Get("left")
	if !fresh.Enabled || fresh.ID != "left" {
		t.Fatalf("expected registry unaffected by caller mutation, got %+v", fresh)
	}

	devices := r.All()
	devices[1].Address = "mutated"
	again, _ := r.Get("right")
	if again.Address != "10.0.0.2" {
		t.Fatalf("expected registry unaffected, got %+v", again)
	}
}
