package main

import (
	"fmt"
	"math/big"

	"github.com/allsmog/dlogproto/pkg/channel"
	"github.com/allsmog/dlogproto/pkg/group"
	"github.com/allsmog/dlogproto/pkg/measurement"
	"github.com/allsmog/dlogproto/pkg/pedersen"
	"github.com/allsmog/dlogproto/pkg/sigmadh"
)

// subtask names timed by runRound, in the order they appear in the
// measurement report.
var subtaskNames = []string{"pedersen_commit", "pedersen_decommit", "sigmadh_prove", "sigmadh_verify"}

// roundResult summarizes one full commit/decommit plus Sigma-DH exchange,
// returned to both the CLI path and the HTTP /run handler.
type roundResult struct {
	CorrelationID    string `json:"correlation_id"`
	Curve            string `json:"curve"`
	CommittedValue   string `json:"committed_value"`
	DecommitAccepted bool   `json:"decommit_accepted"`
	SigmaDHVerified  bool   `json:"sigma_dh_verified"`
}

// runRound drives one committer/receiver pair over an in-memory pipe and one
// prover/verifier pair by direct calls, timing each phase into m under
// iteration.
func runRound(g group.Group, t int, sampler group.Sampler, m *measurement.Measurement, iteration int, correlationID string) (roundResult, error) {
	a, b := channel.NewPipe()

	recv, err := pedersen.NewReceiver(g, a, sampler)
	if err != nil {
		return roundResult{}, fmt.Errorf("new receiver: %w", err)
	}
	preprocessErr := make(chan error, 1)
	go func() { preprocessErr <- recv.Preprocess() }()

	comm, err := pedersen.NewCommitter(g, b, sampler)
	if err != nil {
		return roundResult{}, fmt.Errorf("new committer: %w", err)
	}
	if err := <-preprocessErr; err != nil {
		return roundResult{}, fmt.Errorf("preprocess: %w", err)
	}

	x := big.NewInt(42)

	m.StartSubTask("pedersen_commit", iteration)
	commitMsg, err := comm.GenerateCommitmentMessage(x, 1)
	if err != nil {
		return roundResult{}, fmt.Errorf("generate commitment: %w", err)
	}
	writeErr := make(chan error, 1)
	go func() { writeErr <- b.WriteWithSize(commitMsg.Encode()) }()
	if _, err := recv.ReceiveCommitment(); err != nil {
		return roundResult{}, fmt.Errorf("receive commitment: %w", err)
	}
	if err := <-writeErr; err != nil {
		return roundResult{}, fmt.Errorf("write commitment: %w", err)
	}
	m.EndSubTask("pedersen_commit", iteration)

	m.StartSubTask("pedersen_decommit", iteration)
	decommitMsg, err := comm.GenerateDecommitmentMessage(1)
	if err != nil {
		return roundResult{}, fmt.Errorf("generate decommitment: %w", err)
	}
	go func() { writeErr <- b.WriteWithSize(decommitMsg.Encode()) }()
	value, err := recv.ReceiveDecommitment(1)
	if err != nil {
		return roundResult{}, fmt.Errorf("receive decommitment: %w", err)
	}
	if err := <-writeErr; err != nil {
		return roundResult{}, fmt.Errorf("write decommitment: %w", err)
	}
	m.EndSubTask("pedersen_decommit", iteration)

	tau, err := g.GenerateScalar(sampler)
	if err != nil {
		return roundResult{}, fmt.Errorf("generate tau: %w", err)
	}
	h := g.ExponentiateGenerator(tau)
	w, err := g.GenerateScalar(sampler)
	if err != nil {
		return roundResult{}, fmt.Errorf("generate w: %w", err)
	}
	u := g.ExponentiateGenerator(w)
	v := g.Exponentiate(h, w)
	input := sigmadh.CommonInput{G: g, H: h, U: u, V: v}

	prover, err := sigmadh.NewProver(g, t, sampler)
	if err != nil {
		return roundResult{}, fmt.Errorf("new prover: %w", err)
	}
	verifier, err := sigmadh.NewVerifier(g, t, sampler)
	if err != nil {
		return roundResult{}, fmt.Errorf("new verifier: %w", err)
	}

	m.StartSubTask("sigmadh_prove", iteration)
	first, err := prover.ComputeFirstMessage(input, sigmadh.ProverWitness{W: w.BigInt()})
	if err != nil {
		return roundResult{}, fmt.Errorf("first message: %w", err)
	}
	challenge, err := verifier.SampleChallenge()
	if err != nil {
		return roundResult{}, fmt.Errorf("sample challenge: %w", err)
	}
	z, err := prover.ComputeSecondMessage(challenge)
	if err != nil {
		return roundResult{}, fmt.Errorf("second message: %w", err)
	}
	m.EndSubTask("sigmadh_prove", iteration)

	m.StartSubTask("sigmadh_verify", iteration)
	verified, err := verifier.Verify(input, first, z)
	if err != nil {
		return roundResult{}, fmt.Errorf("verify: %w", err)
	}
	m.EndSubTask("sigmadh_verify", iteration)

	committedValue := ""
	if value.Accepted() {
		committedValue = value.Value.String()
	}

	return roundResult{
		CorrelationID:    correlationID,
		Curve:            g.Name(),
		CommittedValue:   committedValue,
		DecommitAccepted: value.Accepted(),
		SigmaDHVerified:  verified,
	}, nil
}
