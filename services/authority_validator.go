package services

import (
	"strings"

	"github.com/hivewallet/authority-api/constants"
	"github.com/hivewallet/authority-api/helpers"
	"github.com/hivewallet/authority-api/types/business"
)

// AuthorityValidator checks a proposed edit against the current authority
// state before any network effect is allowed. All checks are local and pure;
// a failed validation means the broadcast is never attempted.
//
// Duplicate detection is deliberately strict: the used-identifier sets are
// built from every level of the supplied state (the memo key counts as a
// used key), so granting the same key or account twice anywhere is rejected.
type AuthorityValidator struct{}

// NewAuthorityValidator creates a new authority validator
func NewAuthorityValidator() *AuthorityValidator {
	return &AuthorityValidator{}
}

// Validate accepts or rejects one edit intent. A nil return means the edit
// may proceed to serialization and broadcast.
func (v *AuthorityValidator) Validate(state *business.AccountAuthorityState, level business.AuthorityLevel, intent business.AuthorityEditIntent) *business.ValidationError {
	switch intent.Kind {
	case business.AddMemberIntent:
		return v.validateAdd(state, level, intent)
	case business.ReplaceMemberIntent:
		return v.validateReplace(state, level, intent)
	case business.RemoveMemberIntent:
		return v.validateRemove(state, level, intent)
	case business.SetThresholdIntent:
		return v.validateSetThreshold(level, intent)
	case business.SetMemoKeyIntent:
		return v.validateSetMemoKey(level, intent)
	default:
		return business.NewValidationError(business.LevelMismatch, "kind", "unsupported edit intent %q", intent.Kind)
	}
}

func (v *AuthorityValidator) validateAdd(state *business.AccountAuthorityState, level business.AuthorityLevel, intent business.AuthorityEditIntent) *business.ValidationError {
	if !level.IsThreshold() {
		return business.NewValidationError(business.LevelMismatch, "level", "level %q has no member list", level)
	}
	if err := v.checkIdentifier(state, intent.Identifier, ""); err != nil {
		return err
	}
	return v.checkWeight(intent.Weight)
}

func (v *AuthorityValidator) validateReplace(state *business.AccountAuthorityState, level business.AuthorityLevel, intent business.AuthorityEditIntent) *business.ValidationError {
	if !level.IsThreshold() {
		return business.NewValidationError(business.LevelMismatch, "level", "level %q has no member list", level)
	}
	auth, err := state.Threshold(level)
	if err != nil {
		return business.NewValidationError(business.LevelMismatch, "level", "%s", err.Error())
	}
	if !memberExists(auth, intent.OldIdentifier) {
		return business.NewValidationError(business.MemberNotFound, "old_identifier", "%q is not a member of the %s authority", intent.OldIdentifier, level)
	}
	if verr := v.checkIdentifier(state, intent.Identifier, intent.OldIdentifier); verr != nil {
		return verr
	}
	return v.checkWeight(intent.Weight)
}

func (v *AuthorityValidator) validateRemove(state *business.AccountAuthorityState, level business.AuthorityLevel, intent business.AuthorityEditIntent) *business.ValidationError {
	if !level.IsThreshold() {
		return business.NewValidationError(business.LevelMismatch, "level", "level %q has no member list", level)
	}
	auth, err := state.Threshold(level)
	if err != nil {
		return business.NewValidationError(business.LevelMismatch, "level", "%s", err.Error())
	}
	if !memberExists(auth, intent.Identifier) {
		return business.NewValidationError(business.MemberNotFound, "identifier", "%q is not a member of the %s authority", intent.Identifier, level)
	}
	// Removing the last member is allowed: reachability of the threshold is
	// the ledger's call, not ours.
	return nil
}

func (v *AuthorityValidator) validateSetThreshold(level business.AuthorityLevel, intent business.AuthorityEditIntent) *business.ValidationError {
	if !level.IsThreshold() {
		return business.NewValidationError(business.LevelMismatch, "level", "level %q has no threshold", level)
	}
	if intent.Threshold < 1 || intent.Threshold > constants.MaxAuthorityThreshold {
		return business.NewValidationError(business.InvalidThreshold, "threshold", "threshold must be between 1 and %d, got %d", int64(constants.MaxAuthorityThreshold), intent.Threshold)
	}
	// No reachability check; the chain rejects a threshold it cannot satisfy.
	return nil
}

func (v *AuthorityValidator) validateSetMemoKey(level business.AuthorityLevel, intent business.AuthorityEditIntent) *business.ValidationError {
	if level != business.MemoLevel {
		return business.NewValidationError(business.LevelMismatch, "level", "memo key can only be set on the memo level, not %q", level)
	}
	if !helpers.IsPublicKey(intent.MemoKey) {
		return business.NewValidationError(business.NotAKey, "memo_key", "%q is not a public key", intent.MemoKey)
	}
	return nil
}

// checkIdentifier rejects blank identifiers and identifiers already granted
// anywhere in the state. The exclude argument carries the identifier being
// replaced, so a pure weight change does not trip its own duplicate check.
func (v *AuthorityValidator) checkIdentifier(state *business.AccountAuthorityState, identifier, exclude string) *business.ValidationError {
	if strings.TrimSpace(identifier) == "" {
		return business.NewValidationError(business.EmptyIdentifier, "identifier", "identifier must not be blank")
	}
	if identifier == exclude {
		return nil
	}

	usedKeys, usedAccounts := usedIdentifiers(state)
	if usedKeys[identifier] {
		return business.NewValidationError(business.DuplicateKey, "identifier", "key %q is already in use", identifier)
	}
	if usedAccounts[identifier] {
		return business.NewValidationError(business.DuplicateAccount, "identifier", "account %q is already in use", identifier)
	}
	return nil
}

func (v *AuthorityValidator) checkWeight(weight int64) *business.ValidationError {
	if weight < 1 || weight > constants.MaxAuthorityWeight {
		return business.NewValidationError(business.InvalidWeight, "weight", "weight must be between 1 and %d, got %d", constants.MaxAuthorityWeight, weight)
	}
	return nil
}

// usedIdentifiers collects every identifier already granted across all four
// levels, split by which list it came from. Matching is case-sensitive exact
// match on the identifier string.
func usedIdentifiers(state *business.AccountAuthorityState) (keys map[string]bool, accounts map[string]bool) {
	keys = make(map[string]bool)
	accounts = make(map[string]bool)
	for _, auth := range []*business.ThresholdAuthority{&state.Owner, &state.Active, &state.Posting} {
		for _, m := range auth.KeyMembers {
			keys[m.Identifier] = true
		}
		for _, m := range auth.AccountMembers {
			accounts[m.Identifier] = true
		}
	}
	if state.Memo.Key != "" {
		keys[state.Memo.Key] = true
	}
	return keys, accounts
}

// memberExists reports whether the identifier appears in either member list
// of the given threshold authority.
func memberExists(auth *business.ThresholdAuthority, identifier string) bool {
	for _, m := range auth.KeyMembers {
		if m.Identifier == identifier {
			return true
		}
	}
	for _, m := range auth.AccountMembers {
		if m.Identifier == identifier {
			return true
		}
	}
	return false
}
