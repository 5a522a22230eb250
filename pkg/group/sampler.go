package group

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CryptoRandSampler draws from crypto/rand. It is the default Sampler
// passed to role constructors outside of tests.
type CryptoRandSampler struct{}

// Sample returns a value drawn uniformly from [0, max).
func (CryptoRandSampler) Sample(max *big.Int) (*big.Int, error) {
	if max == nil || max.Sign() <= 0 {
		return nil, fmt.Errorf("group: sample range must be positive")
	}
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return nil, fmt.Errorf("group: failed to sample random value: %w", err)
	}
	return v, nil
}

// SampleBelow is a convenience wrapper: spec.md repeatedly asks for a value
// "sampled uniformly from [0, q-1]"; since Sampler.Sample's upper bound is
// exclusive, that range is exactly sampler.Sample(q).
func SampleBelow(sampler Sampler, q *big.Int) (*big.Int, error) {
	return sampler.Sample(q)
}
