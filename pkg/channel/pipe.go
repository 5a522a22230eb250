package channel

import "io"

// NewPipe returns two Channels, a and b, connected in memory: a write on
// one side is a read on the other. It requires no network stack and is
// used by the in-process demo path and by every test in this module that
// exercises a full committer/receiver exchange. Grounded
// on jeremyhahn-go-frostdkg's in-memory transport ("channel-based message
// routing for testing without network I/O"), generalized down from that
// package's session/participant framing to the bare length-prefixed byte
// contract this module needs.
func NewPipe() (a, b Channel) {
	arRead, awWrite := io.Pipe()
	brRead, bwWrite := io.Pipe()

	a = NewChannel(&pipeReadWriter{r: brRead, w: awWrite})
	b = NewChannel(&pipeReadWriter{r: arRead, w: bwWrite})
	return a, b
}

type pipeReadWriter struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (p *pipeReadWriter) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p *pipeReadWriter) Write(b []byte) (int, error) { return p.w.Write(b) }
