package server

import (
	"context"

	"smart-stadium/internal/monitor"
)

// Monitor defines the minimal polling-loop behavior needed by the server.
type Monitor interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Pause()
	Resume()
	ForcePoll() bool
	Status() monitor.Status
}
