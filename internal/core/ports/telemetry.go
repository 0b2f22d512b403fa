package ports

import (
	"context"
	"io"

	"go.trai.ch/tupcfg/internal/core/domain"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records progress of a generation run.
type Telemetry interface {
	// Record starts a new vertex.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents a unit of work.
type Vertex interface {
	// Stdout returns a writer for output attached to the vertex.
	Stdout() io.Writer
	// Log records a message associated with the vertex.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex as finished, failed when err is not nil.
	Complete(err error)
	// Cached marks the vertex as having changed nothing.
	Cached()
}

type vertexKey struct{}

// ContextWithVertex returns a context carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
