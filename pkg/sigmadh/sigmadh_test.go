package sigmadh

import (
	"math/big"
	"testing"

	"github.com/allsmog/dlogproto/pkg/group"
)

func groups() map[string]group.Group {
	return map[string]group.Group{
		"secp256k1":    group.NewSecp256k1(),
		"ristretto255": group.NewRistretto255(),
	}
}

func buildInput(t *testing.T, g group.Group, w *big.Int) (CommonInput, ProverWitness) {
	t.Helper()
	sampler := group.CryptoRandSampler{}

	tau, err := g.GenerateScalar(sampler)
	if err != nil {
		t.Fatalf("generate tau: %v", err)
	}
	h := g.ExponentiateGenerator(tau)

	wScalar, err := g.NewScalar(w)
	if err != nil {
		t.Fatalf("new scalar w: %v", err)
	}
	u := g.ExponentiateGenerator(wScalar)
	v := g.Exponentiate(h, wScalar)

	return CommonInput{G: g, H: h, U: u, V: v}, ProverWitness{W: w}
}

func TestCompleteness(t *testing.T) {
	const soundness = 80
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			sampler := group.CryptoRandSampler{}
			input, witness := buildInput(t, g, big.NewInt(42))

			prover, err := NewProver(g, soundness, sampler)
			if err != nil {
				t.Fatalf("new prover: %v", err)
			}
			verifier, err := NewVerifier(g, soundness, sampler)
			if err != nil {
				t.Fatalf("new verifier: %v", err)
			}

			first, err := prover.ComputeFirstMessage(input, witness)
			if err != nil {
				t.Fatalf("first message: %v", err)
			}
			challenge, err := verifier.SampleChallenge()
			if err != nil {
				t.Fatalf("sample challenge: %v", err)
			}
			z, err := prover.ComputeSecondMessage(challenge)
			if err != nil {
				t.Fatalf("second message: %v", err)
			}
			ok, err := verifier.Verify(input, first, z)
			if err != nil {
				t.Fatalf("verify: %v", err)
			}
			if !ok {
				t.Fatalf("honest transcript should verify")
			}
		})
	}
}

func TestCompletenessZeroWitness(t *testing.T) {
	const soundness = 64
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			sampler := group.CryptoRandSampler{}
			input, witness := buildInput(t, g, big.NewInt(0))

			prover, _ := NewProver(g, soundness, sampler)
			verifier, _ := NewVerifier(g, soundness, sampler)

			first, err := prover.ComputeFirstMessage(input, witness)
			if err != nil {
				t.Fatalf("first message: %v", err)
			}
			challenge, _ := verifier.SampleChallenge()
			z, err := prover.ComputeSecondMessage(challenge)
			if err != nil {
				t.Fatalf("second message: %v", err)
			}
			ok, err := verifier.Verify(input, first, z)
			if err != nil {
				t.Fatalf("verify: %v", err)
			}
			if !ok {
				t.Fatalf("zero-witness transcript should verify")
			}
		})
	}
}

func TestWrongWitnessFailsVerification(t *testing.T) {
	const soundness = 64
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			sampler := group.CryptoRandSampler{}
			input, _ := buildInput(t, g, big.NewInt(7))
			wrongWitness := ProverWitness{W: big.NewInt(8)}

			prover, _ := NewProver(g, soundness, sampler)
			verifier, _ := NewVerifier(g, soundness, sampler)

			first, err := prover.ComputeFirstMessage(input, wrongWitness)
			if err != nil {
				t.Fatalf("first message: %v", err)
			}
			challenge, _ := verifier.SampleChallenge()
			z, err := prover.ComputeSecondMessage(challenge)
			if err != nil {
				t.Fatalf("second message: %v", err)
			}
			ok, err := verifier.Verify(input, first, z)
			if err != nil {
				t.Fatalf("verify: %v", err)
			}
			if ok {
				t.Fatalf("mismatched witness should not verify")
			}
		})
	}
}

func TestSimulatorSoundnessShape(t *testing.T) {
	const soundness = 48
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			sampler := group.CryptoRandSampler{}
			input, _ := buildInput(t, g, big.NewInt(11))

			first, e, z, err := SimulateRandomChallenge(g, soundness, sampler, input)
			if err != nil {
				t.Fatalf("simulate: %v", err)
			}

			verifier, _ := NewVerifier(g, soundness, sampler)
			verifier.state = verifierChallengeSampled
			verifier.challenge = e

			ok, err := verifier.Verify(input, first, z)
			if err != nil {
				t.Fatalf("verify: %v", err)
			}
			if !ok {
				t.Fatalf("simulated transcript should satisfy the verification equations")
			}
		})
	}
}

func TestSpecialSoundnessExtraction(t *testing.T) {
	const soundness = 32
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			sampler := group.CryptoRandSampler{}
			_, witness := buildInput(t, g, big.NewInt(23))

			e1 := make([]byte, challengeLen(soundness))
			e1[len(e1)-1] = 0x01
			e2 := make([]byte, challengeLen(soundness))
			e2[len(e2)-1] = 0x02

			// Two independent transcripts with the same first message and
			// distinct challenges let a knowledge extractor recover w via
			// w = (z1 - z2) / (e1 - e2) mod q. This test reproduces that
			// extraction directly rather than re-deriving the prover's
			// private r, demonstrating the algebraic property the special
			// soundness proof relies on.
			q := g.Order()
			r, _ := group.SampleBelow(sampler, q)
			rScalar, _ := g.NewScalar(r)
			wScalar, _ := g.NewScalar(witness.W)

			z := func(e []byte) *big.Int {
				eInt := new(big.Int).SetBytes(e)
				zz := new(big.Int).Mul(eInt, wScalar.BigInt())
				zz.Add(zz, rScalar.BigInt())
				zz.Mod(zz, q)
				return zz
			}

			z1 := z(e1)
			z2 := z(e2)

			eDiff := new(big.Int).Sub(new(big.Int).SetBytes(e1), new(big.Int).SetBytes(e2))
			eDiff.Mod(eDiff, q)
			eDiffInv := new(big.Int).ModInverse(eDiff, q)
			if eDiffInv == nil {
				t.Fatalf("challenge difference is not invertible mod q")
			}

			zDiff := new(big.Int).Sub(z1, z2)
			zDiff.Mod(zDiff, q)

			extracted := new(big.Int).Mul(zDiff, eDiffInv)
			extracted.Mod(extracted, q)

			if extracted.Cmp(witness.W) != 0 {
				t.Fatalf("extracted witness %s does not match actual witness %s", extracted, witness.W)
			}
		})
	}
}

func TestChallengeLengthMismatchRejected(t *testing.T) {
	const soundness = 40
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			sampler := group.CryptoRandSampler{}
			input, witness := buildInput(t, g, big.NewInt(3))

			prover, _ := NewProver(g, soundness, sampler)
			if _, err := prover.ComputeFirstMessage(input, witness); err != nil {
				t.Fatalf("first message: %v", err)
			}
			if _, err := prover.ComputeSecondMessage(make([]byte, challengeLen(soundness)+1)); err == nil {
				t.Fatalf("expected challenge length mismatch error")
			}
		})
	}
}

func TestFirstMessageSendableRoundTrip(t *testing.T) {
	const soundness = 40
	for name, g := range groups() {
		t.Run(name, func(t *testing.T) {
			sampler := group.CryptoRandSampler{}
			input, witness := buildInput(t, g, big.NewInt(5))

			prover, _ := NewProver(g, soundness, sampler)
			first, err := prover.ComputeFirstMessage(input, witness)
			if err != nil {
				t.Fatalf("first message: %v", err)
			}

			encoded := first.Sendable()
			decoded, err := ParseFirstMessage(g, encoded, true)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !decoded.A.Equal(first.A) || !decoded.B.Equal(first.B) {
				t.Fatalf("round trip mismatch")
			}
		})
	}
}
