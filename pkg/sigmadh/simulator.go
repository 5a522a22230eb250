package sigmadh

import (
	"fmt"
	"math/big"

	"github.com/allsmog/dlogproto/pkg/group"
	"github.com/allsmog/dlogproto/pkg/protoerr"
)

// Simulate produces a transcript ((a,b), e, z) for the given challenge e
// without knowledge of the witness. It satisfies g^z = a*u^e and
// h^z = b*v^e by construction: sample z, then solve for a and b.
func Simulate(g group.Group, t int, sampler group.Sampler, input CommonInput, challenge []byte) (FirstMessage, []byte, *big.Int, error) {
	if len(challenge) != challengeLen(t) {
		return FirstMessage{}, nil, nil, fmt.Errorf("%w: challenge length mismatch, want %d bytes got %d", protoerr.ErrCheatAttempt, challengeLen(t), len(challenge))
	}

	q := g.Order()
	z, err := group.SampleBelow(sampler, q)
	if err != nil {
		return FirstMessage{}, nil, nil, fmt.Errorf("%w: sampling z: %v", protoerr.ErrBadInput, err)
	}
	zScalar, err := g.NewScalar(z)
	if err != nil {
		return FirstMessage{}, nil, nil, fmt.Errorf("%w: %v", protoerr.ErrBadInput, err)
	}

	e := new(big.Int).SetBytes(challenge)
	negE := new(big.Int).Neg(e)
	negE.Mod(negE, q)
	negEScalar, err := g.NewScalar(negE)
	if err != nil {
		return FirstMessage{}, nil, nil, fmt.Errorf("%w: %v", protoerr.ErrBadInput, err)
	}

	a := g.Multiply(g.ExponentiateGenerator(zScalar), g.Exponentiate(input.U, negEScalar))
	b := g.Multiply(g.Exponentiate(input.H, zScalar), g.Exponentiate(input.V, negEScalar))

	return FirstMessage{A: a, B: b}, challenge, z, nil
}

// SimulateRandomChallenge samples e uniformly of length ceil(t/8) bytes
// first, then invokes Simulate.
func SimulateRandomChallenge(g group.Group, t int, sampler group.Sampler, input CommonInput) (FirstMessage, []byte, *big.Int, error) {
	n := challengeLen(t)
	bound := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
	c, err := sampler.Sample(bound)
	if err != nil {
		return FirstMessage{}, nil, nil, fmt.Errorf("%w: sampling challenge: %v", protoerr.ErrBadInput, err)
	}
	e := make([]byte, n)
	c.FillBytes(e)
	return Simulate(g, t, sampler, input, e)
}
