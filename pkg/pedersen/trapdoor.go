package pedersen

import "math/big"

// TrapdoorReceiver adds trapdoor revelation to Receiver.
type TrapdoorReceiver struct {
	*Receiver
}

// NewTrapdoorReceiver wraps a Receiver with trapdoor-revelation support.
func NewTrapdoorReceiver(r *Receiver) *TrapdoorReceiver {
	return &TrapdoorReceiver{Receiver: r}
}

// Reveal returns tau, the discrete log of h, for a committer to validate.
func (t *TrapdoorReceiver) Reveal() *big.Int {
	return new(big.Int).Set(t.tau)
}

// TrapdoorCommitter adds trapdoor validation to Committer.
type TrapdoorCommitter struct {
	*Committer
}

// NewTrapdoorCommitter wraps a Committer with trapdoor-validation support.
func NewTrapdoorCommitter(c *Committer) *TrapdoorCommitter {
	return &TrapdoorCommitter{Committer: c}
}

// Validate returns true iff g^trap == h, i.e. trap really is the
// discrete log the receiver claims. An out-of-range trap is simply not
// equal to h, not an error: a claimed trapdoor is untrusted input by
// nature.
func (t *TrapdoorCommitter) Validate(trap *big.Int) bool {
	q := t.g.Order()
	if trap == nil || trap.Sign() < 0 || trap.Cmp(q) >= 0 {
		return false
	}
	trapScalar, err := t.g.NewScalar(trap)
	if err != nil {
		return false
	}
	candidate := t.g.ExponentiateGenerator(trapScalar)
	return candidate.Equal(t.h)
}
