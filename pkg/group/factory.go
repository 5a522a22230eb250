package group

import (
	"fmt"
	"strings"
)

// FromName returns a Group implementation matching the provided name.
func FromName(name string) (Group, error) {
	switch strings.ToLower(name) {
	case "secp256k1":
		return NewSecp256k1(), nil
	case "ristretto255":
		return NewRistretto255(), nil
	default:
		return nil, fmt.Errorf("group: unsupported group %q", name)
	}
}

// SupportedGroups lists the group identifiers understood by FromName.
func SupportedGroups() []string {
	return []string{"secp256k1", "ristretto255"}
}
