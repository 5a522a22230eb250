package pedersen

import (
	"fmt"
	"math/big"

	"github.com/allsmog/dlogproto/pkg/channel"
	"github.com/allsmog/dlogproto/pkg/group"
	"github.com/allsmog/dlogproto/pkg/protoerr"
)

// Receiver is the verifier side of the Pedersen commitment scheme: it
// establishes h via a trapdoor, receives commitments, and verifies
// decommitments.
//
// Construction and preprocessing are split into two steps
// (NewReceiver, then Preprocess) rather than the teacher's eager
// preProcess-in-constructor pattern, so that construction is infallible
// with respect to channel I/O and only Preprocess can fail with a
// ChannelError (see Design Notes).
type Receiver struct {
	g       group.Group
	ch      channel.Channel
	sampler group.Sampler

	tau *big.Int
	h   group.Element

	commitments *commitmentStore
}

// NewReceiver validates the group's security level and presence of a
// channel, but performs no I/O.
func NewReceiver(g group.Group, ch channel.Channel, sampler group.Sampler) (*Receiver, error) {
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
	return &Receiver{
		g:           g,
		ch:          ch,
		sampler:     sampler,
		commitments: newCommitmentStore(),
	}, nil
}

// Preprocess samples tau uniformly from [0, q-1], computes h = g^tau, and
// sends h's sendable encoding over the channel.
func (r *Receiver) Preprocess() error {
	tau, err := group.SampleBelow(r.sampler, r.g.Order())
	if err != nil {
		return fmt.Errorf("%w: sampling tau: %v", protoerr.ErrBadInput, err)
	}
	tauScalar, err := r.g.NewScalar(tau)
	if err != nil {
		return fmt.Errorf("%w: %v", protoerr.ErrBadInput, err)
	}
	h := r.g.ExponentiateGenerator(tauScalar)

	if err := r.ch.WriteWithSize(h.Bytes()); err != nil {
		return fmt.Errorf("%w: sending h: %v", protoerr.ErrChannelError, err)
	}

	r.tau = tau
	r.h = h
	return nil
}

// ReceiveCommitment reads a length-prefixed commitment message from the
// channel, stores it under its id, and returns the commit-phase output.
func (r *Receiver) ReceiveCommitment() (CommitPhaseOutput, error) {
	frame, err := r.ch.ReadWithSizeIntoVector()
	if err != nil {
		return CommitPhaseOutput{}, fmt.Errorf("%w: reading commitment: %v", protoerr.ErrChannelError, err)
	}
	msg, err := DecodeCommitMsg(frame)
	if err != nil {
		return CommitPhaseOutput{}, err
	}
	r.commitments.put(msg.ID, msg.C)
	return CommitPhaseOutput{ID: msg.ID}, nil
}

// ReceiveDecommitment reads a length-prefixed decommitment message,
// retrieves the stored commitment for id, and verifies it.
func (r *Receiver) ReceiveDecommitment(id int64) (CommitValue, error) {
	frame, err := r.ch.ReadWithSizeIntoVector()
	if err != nil {
		return CommitValue{}, fmt.Errorf("%w: reading decommitment: %v", protoerr.ErrChannelError, err)
	}
	decommit, err := DecodeDecommitMsg(frame)
	if err != nil {
		return CommitValue{}, err
	}
	cBytes, err := r.commitments.get(id)
	if err != nil {
		return CommitValue{}, err
	}
	return r.VerifyDecommitment(cBytes, decommit)
}

// VerifyDecommitment returns a rejected CommitValue if x is out of
// [0, q), otherwise reconstructs c and checks g^r * h^x == c.
func (r *Receiver) VerifyDecommitment(cBytes []byte, decommit DecommitMsg) (CommitValue, error) {
	q := r.g.Order()
	if decommit.X.Sign() < 0 || decommit.X.Cmp(q) >= 0 {
		return CommitValue{}, nil
	}

	c, err := r.g.ReconstructElement(false, cBytes)
	if err != nil {
		return CommitValue{}, fmt.Errorf("%w: stored commitment is not a group member: %v", protoerr.ErrCheatAttempt, err)
	}

	// r is a blinding factor chosen by the committer and is not itself
	// bound to [0, q) by spec.md, so it is reduced mod q before use.
	rScalar, err := r.g.NewScalar(new(big.Int).Mod(decommit.R, q))
	if err != nil {
		return CommitValue{}, nil
	}
	xScalar, err := r.g.NewScalar(decommit.X)
	if err != nil {
		return CommitValue{}, nil
	}

	candidate := r.g.Multiply(r.g.ExponentiateGenerator(rScalar), r.g.Exponentiate(r.h, xScalar))
	if !candidate.Equal(c) {
		return CommitValue{}, nil
	}
	return CommitValue{Value: new(big.Int).Set(decommit.X)}, nil
}

// GetPreProcessedValues returns h.
func (r *Receiver) GetPreProcessedValues() group.Element {
	return r.h
}

// GetCommitmentPhaseValues reconstructs and returns the stored commitment
// c for id as a group element.
func (r *Receiver) GetCommitmentPhaseValues(id int64) (group.Element, error) {
	cBytes, err := r.commitments.get(id)
	if err != nil {
		return nil, err
	}
	return r.g.ReconstructElement(false, cBytes)
}
