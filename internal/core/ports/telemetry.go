package ports

import (
	"context"
	"io"
)

// Telemetry records build progress as a set of vertexes, one per phase or unit.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts recording a new vertex.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one unit of recorded work.
type Vertex interface {
	// Stdout returns a writer capturing the vertex's standard output stream.
	Stdout() io.Writer

	// Stderr returns a writer capturing the vertex's error output stream.
	Stderr() io.Writer

	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)

	// Cached marks the vertex as a cache hit.
	Cached()
}
