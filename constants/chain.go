package constants

// Chain-level constants for the Hive-style ledger this module talks to.
const (
	// PublicKeyPrefix is the address prefix carried by every public key on
	// the chain. Account names never start with it.
	PublicKeyPrefix = "STM"

	// PublicKeyMinLength is the shortest well-formed public key string:
	// the 3-char prefix plus 50 base58 characters.
	PublicKeyMinLength = 53

	// MaxAuthorityWeight is the largest weight the chain's weight_type
	// (uint16) can carry.
	MaxAuthorityWeight = 65535

	// MaxAuthorityThreshold is the largest threshold the chain's uint32
	// weight_threshold field can carry.
	MaxAuthorityThreshold = 4294967295

	// RCFullRegenSeconds is the window over which resource credits
	// regenerate from empty to full (5 days).
	RCFullRegenSeconds = 432000
)

// Markers recognized inside raw broadcast errors. The node reports failures
// as fc assert text; these substrings are stable across node versions.
const (
	OwnerUpdateLimitMarker   = "owner_update_limit_mgr"
	NonExistingRefMarker     = "references non-existing"
	MissingOwnerAuthErrName  = "tx_missing_owner_auth"
	ParseErrorName           = "parse_error_exception"
	AssertExceptionMarker    = "assert_exception"
	UserRejectionErrorString = "rejected"
)