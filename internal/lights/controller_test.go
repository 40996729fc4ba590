package lights

import (
	"context"
	"testing"
	"time"

	"smart-stadium/internal/effects"
	"smart-stadium/internal/metrics"
)

func newTestController(commander Commander) (*Controller, *Registry) {
	registry := NewRegistry(testDevices(), nil)
	dispatcher := NewDispatcher(commander, nil, metrics.NewRecorder(), DispatcherConfig{
		CommandTimeout: 100 * time.Millisecond,
		RetryDelay:     time.Millisecond,
		Deadline:       time.Second,
	})
	return NewController(registry, dispatcher, nil), registry
}

func TestCelebrateUpdatesRegistry(t *testing.T) {
	commander := newFakeCommander(nil)
	c, registry := newTestController(commander)

	outcomes := c.Celebrate(context.Background(), celebrationEffect())

	if len(outcomes) != 3 {
		t.Fatalf("expected an outcome per configured device, got %d", len(outcomes))
	}
	_, _, reachable := registry.Counts()
	if reachable != 2 {
		t.Fatalf("expected both enabled devices marked reachable, got %d", reachable)
	}

	// The disabled strip was skipped, never attempted.
	strip, _ := registry.Get("strip")
	if strip.Reachable != nil {
		t.Fatalf("expected skipped device to stay unknown, got %+v", strip)
	}
}

func TestCelebrateSchedulesDefaultLightingRestore(t *testing.T) {
	commander := newFakeCommander(nil)
	c, _ := newTestController(commander)
	defer c.cancelRestore()

	effect := celebrationEffect()
	effect.DurationMs = 30

	c.Celebrate(context.Background(), effect)
	if commander.sawLabel(effects.LabelDefaultLighting) {
		t.Fatalf("restore fired before the effect finished")
	}

	deadline := time.Now().Add(2 * time.Second)
	for !commander.sawLabel(effects.LabelDefaultLighting) {
		if time.Now().After(deadline) {
			t.Fatalf("expected default lighting restore after the effect duration")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHoldingEffectCancelsPendingRestore(t *testing.T) {
	commander := newFakeCommander(nil)
	c, _ := newTestController(commander)
	defer c.cancelRestore()

	timed := celebrationEffect()
	timed.DurationMs = 50
	c.Celebrate(context.Background(), timed)

	redZone := effects.Effect{
		Label:     "red_zone",
		Pattern:   effects.PatternSolid,
		Primary:   effects.RGB{R: 255, G: 182, B: 18},
		Intensity: 150,
	}
	c.Celebrate(context.Background(), redZone)

	time.Sleep(200 * time.Millisecond)
	if commander.sawLabel(effects.LabelDefaultLighting) {
		t.Fatalf("expected holding effect to cancel the pending restore")
	}
}

func TestRestoreDefaultCommandsEveryDevice(t *testing.T) {
	commander := newFakeCommander(nil)
	c, registry := newTestController(commander)
	registry.SetEnabled("strip", true)

	outcomes := c.RestoreDefault(context.Background())

	if len(outcomes) != 3 {
		t.Fatalf("expected all devices commanded, got %d", len(outcomes))
	}
	if !commander.sawLabel(effects.LabelDefaultLighting) {
		t.Fatalf("expected default lighting command")
	}
}

func TestTestDeviceOverridesEnabledFlag(t *testing.T) {
	commander := newFakeCommander(nil)
	c, _ := newTestController(commander)

	outcome, err := c.TestDevice(context.Background(), "strip")
	if err != nil {
		t.Fatalf("TestDevice returned error: %v", err)
	}
	if outcome.Status != OutcomeSucceeded {
		t.Fatalf("expected test to run on a disabled device, got %+v", outcome)
	}
	if commander.callCount("strip") != 1 {
		t.Fatalf("expected one attempt, got %d", commander.callCount("strip"))
	}
	if !commander.sawLabel("device_test") {
		t.Fatalf("expected the test pattern to be sent")
	}

	if _, err := c.TestDevice(context.Background(), "ghost"); err == nil {
		t.Fatalf("expected error for unknown device")
	}
}

func TestShutdownRestoresAndStopsPendingWork(t *testing.T) {
	commander := newFakeCommander(nil)
	c, _ := newTestController(commander)

	timed := celebrationEffect()
	timed.DurationMs = 50
	c.Celebrate(context.Background(), timed)

	c.Shutdown(context.Background())
	if !commander.sawLabel(effects.LabelDefaultLighting) {
		t.Fatalf("expected shutdown to leave default lighting")
	}

	// The pending restore was cancelled; no further dispatches happen.
	before := commander.callCount("left")
	time.Sleep(150 * time.Millisecond)
	if commander.callCount("left") != before {
		t.Fatalf("expected no dispatches after shutdown")
	}
}
