package sigmadh

import (
	"fmt"
	"math/big"

	"github.com/allsmog/dlogproto/pkg/group"
	"github.com/allsmog/dlogproto/pkg/protoerr"
)

type verifierState int

const (
	verifierInit verifierState = iota
	verifierChallengeSampled
	verifierDone
)

// Verifier drives the verifier side of a single Sigma-DH proof.
type Verifier struct {
	g       group.Group
	t       int
	sampler group.Sampler

	state     verifierState
	challenge []byte
}

// NewVerifier mirrors NewProver's soundness-parameter validation.
func NewVerifier(g group.Group, t int, sampler group.Sampler) (*Verifier, error) {
	if g == nil || sampler == nil {
		return nil, fmt.Errorf("%w: group and sampler are required", protoerr.ErrBadInput)
	}
	bound := new(big.Int).Lsh(big.NewInt(1), uint(t))
	if bound.Cmp(g.Order()) >= 0 {
		return nil, fmt.Errorf("%w: soundness parameter t=%d is too large for group order", protoerr.ErrCheatAttempt, t)
	}
	return &Verifier{g: g, t: t, sampler: sampler, state: verifierInit}, nil
}

// SampleChallenge produces e uniformly at random, exactly ceil(t/8) bytes,
// and stores it for the subsequent Verify call.
func (v *Verifier) SampleChallenge() ([]byte, error) {
	if v.state != verifierInit {
		return nil, fmt.Errorf("%w: verifier is not in the initial state", protoerr.ErrBadInput)
	}
	n := challengeLen(v.t)
	bound := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
	c, err := v.sampler.Sample(bound)
	if err != nil {
		return nil, fmt.Errorf("%w: sampling challenge: %v", protoerr.ErrBadInput, err)
	}
	e := make([]byte, n)
	c.FillBytes(e)

	v.challenge = e
	v.state = verifierChallengeSampled
	return e, nil
}

// Verify checks g^z = a*u^e and h^z = b*v^e. A failing equality returns
// (false, nil); error is reserved for malformed input, never a failed
// equality, so verification is total.
func (v *Verifier) Verify(input CommonInput, first FirstMessage, z *big.Int) (bool, error) {
	if v.state != verifierChallengeSampled {
		return false, fmt.Errorf("%w: verifier has no sampled challenge", protoerr.ErrBadInput)
	}
	if first.A == nil || first.B == nil {
		return false, fmt.Errorf("%w: first message is not a pair of group elements", protoerr.ErrBadInput)
	}
	if z == nil || z.Sign() < 0 || z.Cmp(input.G.Order()) >= 0 {
		return false, fmt.Errorf("%w: response is not a valid scalar", protoerr.ErrBadInput)
	}
	if !input.G.IsMember(input.H) {
		return false, fmt.Errorf("%w: h is not a member of the group", protoerr.ErrCheatAttempt)
	}

	e := v.challenge
	v.challenge = nil
	v.state = verifierDone

	zScalar, err := input.G.NewScalar(z)
	if err != nil {
		return false, fmt.Errorf("%w: %v", protoerr.ErrBadInput, err)
	}
	eScalar, err := input.G.NewScalar(new(big.Int).SetBytes(e))
	if err != nil {
		return false, fmt.Errorf("%w: %v", protoerr.ErrBadInput, err)
	}

	gz := input.G.ExponentiateGenerator(zScalar)
	aue := input.G.Multiply(first.A, input.G.Exponentiate(input.U, eScalar))
	if !gz.Equal(aue) {
		return false, nil
	}

	hz := input.G.Exponentiate(input.H, zScalar)
	bve := input.G.Multiply(first.B, input.G.Exponentiate(input.V, eScalar))
	return hz.Equal(bve), nil
}
