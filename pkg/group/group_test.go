package group

import (
	"math/big"
	"testing"
)

func groups() map[string]Group {
	return map[string]Group{
		"secp256k1":    NewSecp256k1(),
		"ristretto255": NewRistretto255(),
	}
}

func TestGroupClaimsDDHAndValidates(t *testing.T) {
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			if !g.IsDDH() {
				t.Fatalf("%s: expected DDH-hard group", name)
			}
			if err := g.Validate(); err != nil {
				t.Fatalf("%s: expected valid group parameters, got %v", name, err)
			}
		})
	}
}

func TestElementRoundTrip(t *testing.T) {
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			k, err := g.GenerateScalar(CryptoRandSampler{})
			if err != nil {
				t.Fatalf("generate scalar: %v", err)
			}
			e := g.ExponentiateGenerator(k)

			decoded, err := g.ReconstructElement(false, e.Bytes())
			if err != nil {
				t.Fatalf("reconstruct: %v", err)
			}
			if !decoded.Equal(e) {
				t.Fatalf("round trip mismatch")
			}
		})
	}
}

func TestScalarRoundTrip(t *testing.T) {
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			k, err := g.GenerateScalar(CryptoRandSampler{})
			if err != nil {
				t.Fatalf("generate scalar: %v", err)
			}
			decoded, err := g.ReconstructScalar(k.Bytes())
			if err != nil {
				t.Fatalf("reconstruct scalar: %v", err)
			}
			if decoded.BigInt().Cmp(k.BigInt()) != 0 {
				t.Fatalf("scalar round trip mismatch")
			}
		})
	}
}

func TestZeroScalarIsAccepted(t *testing.T) {
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			zero, err := g.NewScalar(big.NewInt(0))
			if err != nil {
				t.Fatalf("zero scalar should be accepted: %v", err)
			}
			e := g.ExponentiateGenerator(zero)
			if !e.IsIdentity() {
				t.Fatalf("g^0 should be the identity element")
			}
		})
	}
}

func TestScalarOutOfRangeRejected(t *testing.T) {
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			if _, err := g.NewScalar(big.NewInt(-1)); err == nil {
				t.Fatalf("negative scalar should be rejected")
			}
			if _, err := g.NewScalar(g.Order()); err == nil {
				t.Fatalf("scalar == q should be rejected")
			}
		})
	}
}

func TestExponentiationHomomorphism(t *testing.T) {
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			a, _ := g.GenerateScalar(CryptoRandSampler{})
			b, _ := g.GenerateScalar(CryptoRandSampler{})
			sum := new(big.Int).Mod(new(big.Int).Add(a.BigInt(), b.BigInt()), g.Order())
			sumScalar, err := g.NewScalar(sum)
			if err != nil {
				t.Fatalf("new scalar: %v", err)
			}

			lhs := g.ExponentiateGenerator(sumScalar)
			rhs := g.Multiply(g.ExponentiateGenerator(a), g.ExponentiateGenerator(b))
			if !lhs.Equal(rhs) {
				t.Fatalf("g^(a+b) should equal g^a * g^b")
			}
		})
	}
}

func TestFromNameAndSupportedGroups(t *testing.T) {
	for _, name := range SupportedGroups() {
		if _, err := FromName(name); err != nil {
			t.Fatalf("FromName(%q): %v", name, err)
		}
	}
	if _, err := FromName("bn254"); err == nil {
		t.Fatalf("expected error for unsupported group")
	}
}
