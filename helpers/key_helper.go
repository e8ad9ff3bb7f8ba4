package helpers

import (
	"strings"

	"github.com/hivewallet/authority-api/constants"
)

// IdentifierKind says whether an authority member identifier is a public key
// or an account name.
type IdentifierKind int

const (
	IdentifierAccount IdentifierKind = iota
	IdentifierKey
)

// String returns the wire name of the identifier kind.
func (k IdentifierKind) String() string {
	if k == IdentifierKey {
		return "key"
	}
	return "account"
}

// ClassifyIdentifier decides whether an identifier is a public key or an
// account name. Keys carry the chain's address prefix and a fixed minimum
// length; everything else is an account name. This is the single source of
// truth for the distinction - no other code should sniff the prefix itself.
func ClassifyIdentifier(identifier string) IdentifierKind {
	if strings.HasPrefix(identifier, constants.PublicKeyPrefix) && len(identifier) >= constants.PublicKeyMinLength {
		return IdentifierKey
	}
	return IdentifierAccount
}

// IsPublicKey reports whether the identifier classifies as a public key.
func IsPublicKey(identifier string) bool {
	return ClassifyIdentifier(identifier) == IdentifierKey
}
