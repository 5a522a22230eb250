// Package protoerr collects the cross-cutting error kinds shared by the
// group, sigmadh and pedersen packages. A single sentinel per kind lets a
// caller ask "was this a cheat attempt?" with errors.Is without knowing
// which package actually raised it.
package protoerr

import "errors"

// Sentinel kinds. Wrap one of these with fmt.Errorf("...: %w", ErrX) to add
// call-site detail while keeping errors.Is(err, ErrX) working.
var (
	// ErrSecurityLevel indicates the supplied group does not claim DDH security.
	ErrSecurityLevel = errors.New("protoerr: group does not claim DDH security")

	// ErrInvalidGroup indicates the group's own validation predicate failed.
	ErrInvalidGroup = errors.New("protoerr: group parameters are invalid")

	// ErrMissingChannel indicates a role was constructed without a required channel.
	ErrMissingChannel = errors.New("protoerr: channel is required")

	// ErrCheatAttempt indicates a received element, trapdoor or challenge
	// violated a protocol invariant that an honest peer cannot trigger.
	ErrCheatAttempt = errors.New("protoerr: cheat attempt detected")

	// ErrBadInput indicates a malformed message shape or an out-of-range value.
	ErrBadInput = errors.New("protoerr: bad input")

	// ErrChannelError indicates an underlying channel I/O failure.
	ErrChannelError = errors.New("protoerr: channel error")
)
