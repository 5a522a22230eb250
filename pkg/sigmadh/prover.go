package sigmadh

import (
	"fmt"
	"math/big"

	"github.com/allsmog/dlogproto/pkg/group"
	"github.com/allsmog/dlogproto/pkg/protoerr"
)

type proverState int

const (
	proverInit proverState = iota
	proverAwaitingChallenge
	proverDone
)

// Prover drives the prover side of a single Sigma-DH proof. It is single-use:
// a fresh instance is required for a new proof.
type Prover struct {
	g       group.Group
	t       int
	sampler group.Sampler

	state proverState
	r     *big.Int
	w     *big.Int
}

// NewProver validates that the soundness parameter t is consistent with the
// group order (2^t must be smaller than q, or the cheating bound the
// challenge length is supposed to enforce is meaningless).
func NewProver(g group.Group, t int, sampler group.Sampler) (*Prover, error) {
	if g == nil || sampler == nil {
		return nil, fmt.Errorf("%w: group and sampler are required", protoerr.ErrBadInput)
	}
	bound := new(big.Int).Lsh(big.NewInt(1), uint(t))
	if bound.Cmp(g.Order()) >= 0 {
		return nil, fmt.Errorf("%w: soundness parameter t=%d is too large for group order", protoerr.ErrCheatAttempt, t)
	}
	return &Prover{g: g, t: t, sampler: sampler, state: proverInit}, nil
}

// ComputeFirstMessage samples r uniformly from [0, q-1] and returns
// (a, b) = (g^r, h^r), retaining r privately for ComputeSecondMessage.
func (p *Prover) ComputeFirstMessage(input CommonInput, witness ProverWitness) (FirstMessage, error) {
	if p.state != proverInit {
		return FirstMessage{}, fmt.Errorf("%w: prover is not in the initial state", protoerr.ErrBadInput)
	}
	if witness.W == nil || witness.W.Sign() < 0 || witness.W.Cmp(p.g.Order()) >= 0 {
		return FirstMessage{}, fmt.Errorf("%w: witness out of range [0, q-1]", protoerr.ErrBadInput)
	}
	r, err := group.SampleBelow(p.sampler, p.g.Order())
	if err != nil {
		return FirstMessage{}, fmt.Errorf("%w: sampling r: %v", protoerr.ErrBadInput, err)
	}

	rScalar, err := p.g.NewScalar(r)
	if err != nil {
		return FirstMessage{}, fmt.Errorf("%w: %v", protoerr.ErrBadInput, err)
	}
	a := p.g.ExponentiateGenerator(rScalar)
	b := p.g.Exponentiate(input.H, rScalar)

	p.r = r
	p.w = new(big.Int).Set(witness.W)
	p.state = proverAwaitingChallenge
	return FirstMessage{A: a, B: b}, nil
}

// ComputeSecondMessage returns z = (r + e*w) mod q for the challenge e,
// overwriting the retained r immediately after use.
func (p *Prover) ComputeSecondMessage(challenge []byte) (*big.Int, error) {
	if p.state != proverAwaitingChallenge {
		return nil, fmt.Errorf("%w: prover is not awaiting a challenge", protoerr.ErrBadInput)
	}
	if len(challenge) != challengeLen(p.t) {
		return nil, fmt.Errorf("%w: challenge length mismatch, want %d bytes got %d", protoerr.ErrCheatAttempt, challengeLen(p.t), len(challenge))
	}

	e := new(big.Int).SetBytes(challenge)
	q := p.g.Order()

	z := new(big.Int).Mul(e, p.w)
	z.Add(z, p.r)
	z.Mod(z, q)

	p.r.SetInt64(0)
	p.r = nil
	p.w.SetInt64(0)
	p.w = nil
	p.state = proverDone
	return z, nil
}
