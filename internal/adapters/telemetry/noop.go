// Package telemetry provides progress-recording implementations of the telemetry port.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/forge/internal/core/ports"
)

// NoOp is a telemetry implementation that records nothing. Used in tests and
// for plain-log invocations.
type NoOp struct{}

// NewNoOp creates a new no-op telemetry recorder.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a vertex that discards everything.
func (n *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, &noOpVertex{}
}

// Close does nothing.
func (n *NoOp) Close() error {
	return nil
}

type noOpVertex struct{}

func (v *noOpVertex) Stdout() io.Writer { return io.Discard }
func (v *noOpVertex) Stderr() io.Writer { return io.Discard }
func (v *noOpVertex) Complete(_ error) {}
func (v *noOpVertex) Cached()          {}
