// Package group abstracts the prime-order cyclic group the Sigma-DH and
// Pedersen protocols are built over. Everything in this package is the
// "external collaborator" spec.md describes: the group itself, its
// generator, its order, and the handful of operations (exponentiation,
// multiplication, membership, serialization) the protocol layers treat as
// a contractual interface.
//
// Two concrete implementations are provided, secp256k1 and ristretto255,
// both prime-order and both believed DDH-hard.
package group

import "math/big"

// Element is a group element (a point, in the elliptic-curve realizations
// below). Bytes returns the canonical sendable encoding.
type Element interface {
	Bytes() []byte
	Equal(other Element) bool
	IsIdentity() bool
}

// Scalar is an exponent, an integer modulo the group order q. Unlike a
// typical ECDH private-key scalar, the full range [0, q-1] is valid here:
// spec.md requires x = 0 to be an accepted committed value, which forces
// g^0 and h^0 down to the identity element rather than excluding zero.
type Scalar interface {
	Bytes() []byte
	BigInt() *big.Int
}

// Sampler is the uniform sampler over [0, max) spec.md §2 leaves external.
// It is injected into every role constructor rather than reached for as a
// package-global source of randomness.
type Sampler interface {
	// Sample returns a value drawn uniformly from [0, max).
	Sample(max *big.Int) (*big.Int, error)
}

// Group is the discrete-log group contract: generator, order, the group
// operation (Multiply), exponentiation of an arbitrary element or of the
// generator, serialization round-trips with a trust flag, membership
// testing, and the group's own DDH claim and parameter validation.
type Group interface {
	// Name identifies the concrete realization ("secp256k1", "ristretto255").
	Name() string

	// Generator returns g.
	Generator() Element

	// Order returns q.
	Order() *big.Int

	// Multiply computes a*b (the group operation, written additively in the
	// elliptic-curve realizations and multiplicatively in spec.md's notation).
	Multiply(a, b Element) Element

	// Exponentiate computes e^k for an arbitrary element e.
	Exponentiate(e Element, k Scalar) Element

	// ExponentiateGenerator computes g^k.
	ExponentiateGenerator(k Scalar) Element

	// NewScalar wraps a big.Int as a Scalar, validating it lies in [0, q).
	NewScalar(v *big.Int) (Scalar, error)

	// ReconstructElement decodes a sendable element encoding. When trusted
	// is true, membership has already been independently established
	// (e.g. it was just produced by Exponentiate) and the decode skips the
	// membership check; when false, the group validates membership itself.
	ReconstructElement(trusted bool, b []byte) (Element, error)

	// ReconstructScalar decodes a big-endian scalar encoding in [0, q).
	ReconstructScalar(b []byte) (Scalar, error)

	// IsMember reports whether e is a member of this group.
	IsMember(e Element) bool

	// GenerateScalar samples a uniform scalar in [0, q-1] using sampler.
	GenerateScalar(sampler Sampler) (Scalar, error)

	// IsDDH reports whether this realization claims DDH security.
	IsDDH() bool

	// Validate runs the group's own parameter self-check.
	Validate() error
}
