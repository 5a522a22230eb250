package group

import (
	"fmt"
	"math/big"

	"github.com/gtank/ristretto255"
)

// ristretto255Element wraps a group element. Ristretto has no cofactor and
// a first-class identity element, so unlike secp256k1 no sentinel handling
// is needed here — this is the curve the teacher's own doc comments single
// out as the "simpler and safer" choice for exactly this reason.
type ristretto255Element struct {
	e *ristretto255.Element
}

func (p *ristretto255Element) Bytes() []byte {
	return p.e.Encode(nil)
}

func (p *ristretto255Element) Equal(other Element) bool {
	o, ok := other.(*ristretto255Element)
	if !ok {
		return false
	}
	return p.e.Equal(o.e) == 1
}

func (p *ristretto255Element) IsIdentity() bool {
	return p.e.Equal(ristretto255.NewElement()) == 1
}

type ristretto255Scalar struct {
	s *ristretto255.Scalar
	v *big.Int
}

func (s *ristretto255Scalar) Bytes() []byte {
	b := make([]byte, 32)
	s.v.FillBytes(b)
	return b
}

func (s *ristretto255Scalar) BigInt() *big.Int {
	return new(big.Int).Set(s.v)
}

type ristretto255Group struct{}

// NewRistretto255 returns the ristretto255 realization of Group.
func NewRistretto255() Group {
	return ristretto255Group{}
}

func (ristretto255Group) Name() string { return "ristretto255" }

func (g ristretto255Group) Order() *big.Int {
	order := new(big.Int).Lsh(big.NewInt(1), 252)
	addend, _ := new(big.Int).SetString("27742317777372353535851937790883648493", 10)
	return order.Add(order, addend)
}

func (g ristretto255Group) IsDDH() bool { return true }

func (g ristretto255Group) Validate() error { return nil }

func (g ristretto255Group) Generator() Element {
	one, _ := g.NewScalar(big.NewInt(1))
	return g.ExponentiateGenerator(one)
}

func (g ristretto255Group) Multiply(a, b Element) Element {
	ea, oka := a.(*ristretto255Element)
	eb, okb := b.(*ristretto255Element)
	if !oka || !okb {
		return nil
	}
	out := ristretto255.NewElement()
	out.Add(ea.e, eb.e)
	return &ristretto255Element{e: out}
}

func (g ristretto255Group) toRistScalar(v *big.Int) *ristretto255.Scalar {
	be := v.FillBytes(make([]byte, 32))
	le := make([]byte, 32)
	for i := range be {
		le[i] = be[len(be)-1-i]
	}
	sc := ristretto255.NewScalar()
	// A big.Int already reduced to [0, q) always has a canonical
	// little-endian encoding, so the error here cannot occur.
	_ = sc.Decode(le)
	return sc
}

func (g ristretto255Group) Exponentiate(e Element, k Scalar) Element {
	el, ok := e.(*ristretto255Element)
	sc, okS := k.(*ristretto255Scalar)
	if !ok || !okS {
		return nil
	}
	out := ristretto255.NewElement()
	out.ScalarMult(sc.s, el.e)
	return &ristretto255Element{e: out}
}

func (g ristretto255Group) ExponentiateGenerator(k Scalar) Element {
	sc, ok := k.(*ristretto255Scalar)
	if !ok {
		return nil
	}
	out := ristretto255.NewElement()
	out.ScalarBaseMult(sc.s)
	return &ristretto255Element{e: out}
}

func (g ristretto255Group) NewScalar(v *big.Int) (Scalar, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(g.Order()) >= 0 {
		return nil, fmt.Errorf("group: scalar out of range [0, q)")
	}
	vv := new(big.Int).Set(v)
	return &ristretto255Scalar{s: g.toRistScalar(vv), v: vv}, nil
}

func (g ristretto255Group) ReconstructElement(trusted bool, b []byte) (Element, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("group: expected 32-byte ristretto255 element, got %d", len(b))
	}
	e := ristretto255.NewElement()
	if err := e.Decode(b); err != nil {
		return nil, fmt.Errorf("group: invalid ristretto255 element: %w", err)
	}
	el := &ristretto255Element{e: e}
	if !trusted && !g.IsMember(el) {
		return nil, fmt.Errorf("group: element is not a member of the group")
	}
	return el, nil
}

func (g ristretto255Group) ReconstructScalar(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("group: expected 32-byte scalar, got %d", len(b))
	}
	return g.NewScalar(new(big.Int).SetBytes(b))
}

func (g ristretto255Group) IsMember(e Element) bool {
	el, ok := e.(*ristretto255Element)
	if !ok {
		return false
	}
	// Ristretto's encoding is a bijection onto the prime-order group: any
	// element that decoded via Decode is automatically a member,
	// with no separate on-curve/cofactor check required (unlike secp256k1).
	return el.e != nil
}

func (g ristretto255Group) GenerateScalar(sampler Sampler) (Scalar, error) {
	v, err := SampleBelow(sampler, g.Order())
	if err != nil {
		return nil, err
	}
	return g.NewScalar(v)
}
