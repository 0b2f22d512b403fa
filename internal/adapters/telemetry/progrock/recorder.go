// Package progrock records generation progress on a progrock tape.
package progrock

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/tupcfg/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry on a progrock recorder.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
	seq atomic.Uint64
}

// New creates a Recorder writing to an in-memory tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder writing to w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts a vertex named name. Every call gets its own digest, so a
// watch session regenerating the same build records one vertex per pass.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	n := r.seq.Add(1)
	d := digest.FromString(strconv.FormatUint(n, 10) + "/" + name)
	vertex := &Vertex{name: name, vertex: r.rec.Vertex(d, name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Recorded returns the number of vertices started so far.
func (r *Recorder) Recorded() int {
	return int(r.seq.Load())
}

// Close flushes and closes the tape.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
