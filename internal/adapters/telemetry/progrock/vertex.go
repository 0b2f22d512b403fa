package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/tupcfg/internal/core/domain"
)

// Vertex implements ports.Vertex on a progrock vertex.
type Vertex struct {
	name   string
	vertex *progrock.VertexRecorder
}

// Name returns the vertex name.
func (v *Vertex) Name() string { return v.name }

// Stdout returns the output stream of the vertex.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Log writes msg to the vertex, on its error stream from LogLevelWarn up.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", level.String(), msg)
}

// Complete marks the vertex finished, failed when err is not nil.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as having changed nothing.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
