package pedersen

import (
	"fmt"
	"math/big"

	"github.com/allsmog/dlogproto/pkg/channel"
	"github.com/allsmog/dlogproto/pkg/group"
	"github.com/allsmog/dlogproto/pkg/protoerr"
)

// Committer is the prover side of the Pedersen commitment scheme.
// Construction blocks on a single read of the receiver's h.
type Committer struct {
	g       group.Group
	ch      channel.Channel
	sampler group.Sampler

	h group.Element

	records *committerStore
}

// NewCommitter validates the group, reads h from the channel, and asserts
// h is a member of the group.
func NewCommitter(g group.Group, ch channel.Channel, sampler group.Sampler) (*Committer, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: group is required", protoerr.ErrBadInput)
	}
	if !g.IsDDH() {
		return nil, fmt.Errorf("%w: group does not claim DDH security", protoerr.ErrSecurityLevel)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", protoerr.ErrInvalidGroup, err)
	}
	if ch == nil {
		return nil, fmt.Errorf("%w: channel is required", protoerr.ErrMissingChannel)
	}
	if sampler == nil {
		return nil, fmt.Errorf("%w: sampler is required", protoerr.ErrBadInput)
	}

	frame, err := ch.ReadWithSizeIntoVector()
	if err != nil {
		return nil, fmt.Errorf("%w: reading h: %v", protoerr.ErrChannelError, err)
	}
	h, err := g.ReconstructElement(false, frame)
	if err != nil || !g.IsMember(h) {
		return nil, fmt.Errorf("%w: h is not a member of the group", protoerr.ErrCheatAttempt)
	}

	return &Committer{
		g:       g,
		ch:      ch,
		sampler: sampler,
		h:       h,
		records: newCommitterStore(),
	}, nil
}

// GenerateCommitmentMessage samples r, computes c = g^r * h^x, stores
// (r, x) under id, and returns the commitment message. The element c is
// not kept in the committer's record; it exists only in the returned
// message.
func (c *Committer) GenerateCommitmentMessage(x *big.Int, id int64) (CommitMsg, error) {
	q := c.g.Order()
	if x == nil || x.Sign() < 0 || x.Cmp(q) >= 0 {
		// spec.md's own text says x ∉ [0, q] (q inclusive); its Open
		// Questions section flags this as likely a typo and directs
		// implementers to treat the boundary as x >= q instead, which this
		// module does consistently here and in VerifyDecommitment.
		return CommitMsg{}, fmt.Errorf("%w: x out of range [0, q)", protoerr.ErrBadInput)
	}

	r, err := group.SampleBelow(c.sampler, q)
	if err != nil {
		return CommitMsg{}, fmt.Errorf("%w: sampling r: %v", protoerr.ErrBadInput, err)
	}

	rScalar, err := c.g.NewScalar(r)
	if err != nil {
		return CommitMsg{}, fmt.Errorf("%w: %v", protoerr.ErrBadInput, err)
	}
	xReduced := new(big.Int).Mod(x, q)
	xScalar, err := c.g.NewScalar(xReduced)
	if err != nil {
		return CommitMsg{}, fmt.Errorf("%w: %v", protoerr.ErrBadInput, err)
	}

	commitment := c.g.Multiply(c.g.ExponentiateGenerator(rScalar), c.g.Exponentiate(c.h, xScalar))

	c.records.put(id, committerRecord{R: r, X: new(big.Int).Set(x)})

	return CommitMsg{ID: id, C: commitment.Bytes()}, nil
}

// GenerateDecommitmentMessage looks up (r, x) by id and returns the
// decommitment message.
func (c *Committer) GenerateDecommitmentMessage(id int64) (DecommitMsg, error) {
	rec, err := c.records.get(id)
	if err != nil {
		return DecommitMsg{}, err
	}
	return DecommitMsg{X: rec.X, R: rec.R}, nil
}
