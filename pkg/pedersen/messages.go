// Package pedersen implements the Pedersen commitment scheme: a committer
// binds to a value x under a receiver-chosen h = g^tau without revealing x,
// and later opens the commitment for the receiver to verify.
package pedersen

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/allsmog/dlogproto/pkg/protoerr"
)

// CommitMsg is the wire form of a commitment: an id and the sendable
// encoding of c = g^r * h^x.
type CommitMsg struct {
	ID int64
	C  []byte
}

// Encode serializes the message as "id:hex(c)".
func (m CommitMsg) Encode() []byte {
	return []byte(fmt.Sprintf("%d:%x", m.ID, m.C))
}

// DecodeCommitMsg reverses Encode.
func DecodeCommitMsg(b []byte) (CommitMsg, error) {
	parts := strings.SplitN(string(b), ":", 2)
	if len(parts) != 2 {
		return CommitMsg{}, fmt.Errorf("%w: malformed commitment message", protoerr.ErrBadInput)
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return CommitMsg{}, fmt.Errorf("%w: malformed commitment id: %v", protoerr.ErrBadInput, err)
	}
	c, err := decodeHex(parts[1])
	if err != nil {
		return CommitMsg{}, fmt.Errorf("%w: malformed commitment payload: %v", protoerr.ErrBadInput, err)
	}
	return CommitMsg{ID: id, C: c}, nil
}

// DecommitMsg is the wire form of an opening: the value x and the
// blinding factor r.
type DecommitMsg struct {
	X *big.Int
	R *big.Int
}

// Encode serializes the message as "x:r" in decimal.
func (m DecommitMsg) Encode() []byte {
	return []byte(fmt.Sprintf("%s:%s", m.X.String(), m.R.String()))
}

// DecodeDecommitMsg reverses Encode.
func DecodeDecommitMsg(b []byte) (DecommitMsg, error) {
	parts := strings.SplitN(string(b), ":", 2)
	if len(parts) != 2 {
		return DecommitMsg{}, fmt.Errorf("%w: malformed decommitment message", protoerr.ErrBadInput)
	}
	x, ok := new(big.Int).SetString(parts[0], 10)
	if !ok {
		return DecommitMsg{}, fmt.Errorf("%w: malformed decommitment x", protoerr.ErrBadInput)
	}
	r, ok := new(big.Int).SetString(parts[1], 10)
	if !ok {
		return DecommitMsg{}, fmt.Errorf("%w: malformed decommitment r", protoerr.ErrBadInput)
	}
	return DecommitMsg{X: x, R: r}, nil
}

// CommitPhaseOutput is the tagged variant returned to a caller after a
// commitment is received: either Basic (just the id) or Trapdoor (id plus
// the revealed tau), replacing the parallel class hierarchy spec.md flags
// as a redesign target (see Design Notes).
type CommitPhaseOutput struct {
	ID  int64
	Tau *big.Int // nil unless this is a trapdoor variant
}

// IsTrapdoor reports whether Tau was populated.
func (o CommitPhaseOutput) IsTrapdoor() bool {
	return o.Tau != nil
}

// CommitValue wraps a verified opening's value. A zero-value, nil Value
// represents "rejected" per spec.md's VerifyDecommitment contract.
type CommitValue struct {
	Value *big.Int
}

// Accepted reports whether the decommitment was accepted.
func (c CommitValue) Accepted() bool {
	return c.Value != nil
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd-length hex string")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, err := hexVal(s[2*i])
		if err != nil {
			return nil, err
		}
		lo, err := hexVal(s[2*i+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexVal(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex digit %q", c)
	}
}
