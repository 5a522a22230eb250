package channel

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/allsmog/dlogproto/pkg/protoerr"
)

// netChannel frames an arbitrary io.ReadWriter (typically a net.Conn) with
// a 4-byte big-endian length prefix. No third-party framing library fits a
// contract this small better than encoding/binary + bufio, so this one
// piece of the ambient stack is deliberately left on the standard library
// (see DESIGN.md).
type netChannel struct {
	r *bufio.Reader
	w io.Writer
}

// NewChannel wraps rw (a net.Conn or any other stream) as a length-prefixed
// Channel.
func NewChannel(rw io.ReadWriter) Channel {
	return &netChannel{r: bufio.NewReader(rw), w: rw}
}

func (c *netChannel) WriteWithSize(b []byte) error {
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(b)))
	if _, err := c.w.Write(prefix[:]); err != nil {
		return fmt.Errorf("%w: writing length prefix: %v", protoerr.ErrChannelError, err)
	}
	if _, err := c.w.Write(b); err != nil {
		return fmt.Errorf("%w: writing frame: %v", protoerr.ErrChannelError, err)
	}
	return nil
}

func (c *netChannel) ReadWithSizeIntoVector() ([]byte, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(c.r, prefix[:]); err != nil {
		return nil, fmt.Errorf("%w: reading length prefix: %v", protoerr.ErrChannelError, err)
	}
	size := binary.BigEndian.Uint32(prefix[:])
	buf := make([]byte, size)
	if _, err := io.ReadFull(c.r, buf); err != nil {
		return nil, fmt.Errorf("%w: reading frame: %v", protoerr.ErrChannelError, err)
	}
	return buf, nil
}
