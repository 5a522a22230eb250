package group

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// secp256k1Element wraps an affine point. pub == nil represents the
// identity element (point at infinity): btcec has no first-class identity
// point, so unlike the teacher's curve package (which rejects it outright)
// this realization has to model it explicitly, since spec.md requires
// x = 0 to be a valid committed value and g^0/h^0 must reduce to identity.
type secp256k1Element struct {
	pub *btcec.PublicKey
}

const identityEncoding = byte(0x00)

func (e *secp256k1Element) Bytes() []byte {
	if e.pub == nil {
		return []byte{identityEncoding}
	}
	return e.pub.SerializeCompressed()
}

func (e *secp256k1Element) Equal(other Element) bool {
	o, ok := other.(*secp256k1Element)
	if !ok {
		return false
	}
	if e.pub == nil || o.pub == nil {
		return e.pub == nil && o.pub == nil
	}
	return e.pub.IsEqual(o.pub)
}

func (e *secp256k1Element) IsIdentity() bool {
	return e.pub == nil
}

type secp256k1Scalar struct {
	v *big.Int
}

func (s *secp256k1Scalar) Bytes() []byte {
	b := make([]byte, 32)
	s.v.FillBytes(b)
	return b
}

func (s *secp256k1Scalar) BigInt() *big.Int {
	return new(big.Int).Set(s.v)
}

type secp256k1Group struct{}

// NewSecp256k1 returns the secp256k1 realization of Group.
func NewSecp256k1() Group {
	return secp256k1Group{}
}

func (secp256k1Group) Name() string { return "secp256k1" }

func (g secp256k1Group) Order() *big.Int {
	return btcec.S256().N
}

func (g secp256k1Group) IsDDH() bool { return true }

func (g secp256k1Group) Validate() error {
	curve := btcec.S256()
	if curve.N == nil || curve.N.Sign() <= 0 {
		return fmt.Errorf("group: secp256k1 order is not positive")
	}
	return nil
}

func (g secp256k1Group) Generator() Element {
	gx, gy := btcec.S256().Gx, btcec.S256().Gy
	return g.elementFromCoords(gx, gy)
}

func (g secp256k1Group) elementFromCoords(x, y *big.Int) Element {
	if x.Sign() == 0 && y.Sign() == 0 {
		return &secp256k1Element{pub: nil}
	}
	b := append([]byte{0x04}, append(x.FillBytes(make([]byte, 32)), y.FillBytes(make([]byte, 32))...)...)
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return &secp256k1Element{pub: nil}
	}
	return &secp256k1Element{pub: pub}
}

func (g secp256k1Group) Multiply(a, b Element) Element {
	ea, oka := a.(*secp256k1Element)
	eb, okb := b.(*secp256k1Element)
	if !oka || !okb {
		return nil
	}
	if ea.pub == nil {
		return eb
	}
	if eb.pub == nil {
		return ea
	}
	rx, ry := btcec.S256().Add(ea.pub.X(), ea.pub.Y(), eb.pub.X(), eb.pub.Y())
	return g.elementFromCoords(rx, ry)
}

func (g secp256k1Group) Exponentiate(e Element, k Scalar) Element {
	el, ok := e.(*secp256k1Element)
	sc, okS := k.(*secp256k1Scalar)
	if !ok || !okS {
		return nil
	}
	if el.pub == nil || sc.v.Sign() == 0 {
		return &secp256k1Element{pub: nil}
	}
	rx, ry := btcec.S256().ScalarMult(el.pub.X(), el.pub.Y(), sc.v.Bytes())
	return g.elementFromCoords(rx, ry)
}

func (g secp256k1Group) ExponentiateGenerator(k Scalar) Element {
	sc, ok := k.(*secp256k1Scalar)
	if !ok {
		return nil
	}
	if sc.v.Sign() == 0 {
		return &secp256k1Element{pub: nil}
	}
	rx, ry := btcec.S256().ScalarBaseMult(sc.v.Bytes())
	return g.elementFromCoords(rx, ry)
}

func (g secp256k1Group) NewScalar(v *big.Int) (Scalar, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(g.Order()) >= 0 {
		return nil, fmt.Errorf("group: scalar out of range [0, q)")
	}
	return &secp256k1Scalar{v: new(big.Int).Set(v)}, nil
}

func (g secp256k1Group) ReconstructElement(trusted bool, b []byte) (Element, error) {
	if len(b) == 1 && b[0] == identityEncoding {
		return &secp256k1Element{pub: nil}, nil
	}
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("group: invalid secp256k1 element: %w", err)
	}
	el := &secp256k1Element{pub: pub}
	if !trusted && !g.IsMember(el) {
		return nil, fmt.Errorf("group: element is not a member of the group")
	}
	return el, nil
}

func (g secp256k1Group) ReconstructScalar(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("group: expected 32-byte scalar, got %d", len(b))
	}
	return g.NewScalar(new(big.Int).SetBytes(b))
}

func (g secp256k1Group) IsMember(e Element) bool {
	el, ok := e.(*secp256k1Element)
	if !ok {
		return false
	}
	if el.pub == nil {
		// The identity element is a member of the group algebraically, but
		// every caller in this module that checks membership is guarding
		// against a degenerate h or commitment, so identity is rejected
		// here, matching the teacher's ValidatePoint behavior.
		return false
	}
	return btcec.S256().IsOnCurve(el.pub.X(), el.pub.Y())
}

func (g secp256k1Group) GenerateScalar(sampler Sampler) (Scalar, error) {
	v, err := SampleBelow(sampler, g.Order())
	if err != nil {
		return nil, err
	}
	return g.NewScalar(v)
}
