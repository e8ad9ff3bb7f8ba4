package business

import (
	"encoding/json"
	"fmt"
)

// AuthorityLevel identifies one of the four independent control tiers of an
// account. Owner, active and posting are threshold levels; memo is a single
// key with no threshold and no account members.
type AuthorityLevel string

const (
	OwnerLevel   AuthorityLevel = "owner"
	ActiveLevel  AuthorityLevel = "active"
	PostingLevel AuthorityLevel = "posting"
	MemoLevel    AuthorityLevel = "memo"
)

// ParseAuthorityLevel converts a wire/path string into an AuthorityLevel.
func ParseAuthorityLevel(s string) (AuthorityLevel, error) {
	switch AuthorityLevel(s) {
	case OwnerLevel, ActiveLevel, PostingLevel, MemoLevel:
		return AuthorityLevel(s), nil
	default:
		return "", fmt.Errorf("unknown authority level: %q", s)
	}
}

// IsThreshold reports whether the level carries a weighted member list.
func (l AuthorityLevel) IsThreshold() bool {
	return l == OwnerLevel || l == ActiveLevel || l == PostingLevel
}

// AuthorityMember grants partial signing power at one level. Identifier is
// either a public key or an account name; which one is derivable from its
// lexical form (helpers.ClassifyIdentifier), never stored. Weight is always
// positive - a zero-weight member is represented by removal.
type AuthorityMember struct {
	Identifier string `json:"identifier"`
	Weight     uint16 `json:"weight"`
}

// MarshalJSON renders the member in the chain's tuple form: ["id", weight].
func (m AuthorityMember) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{m.Identifier, m.Weight})
}

// UnmarshalJSON accepts the chain's ["id", weight] tuple form.
func (m *AuthorityMember) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("authority member tuple must have 2 elements, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &m.Identifier); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &m.Weight)
}

// ThresholdAuthority is one weighted M-of-N policy: an action at this level
// is authorized once the accumulated weights of signing members reach
// WeightThreshold. The threshold may transiently exceed the total weight;
// this module surfaces that, it never silently fixes it.
type ThresholdAuthority struct {
	WeightThreshold uint32            `json:"weight_threshold"`
	AccountMembers  []AuthorityMember `json:"account_auths"`
	KeyMembers      []AuthorityMember `json:"key_auths"`
}

// Clone returns a deep copy with freshly allocated member slices.
func (a ThresholdAuthority) Clone() ThresholdAuthority {
	out := ThresholdAuthority{WeightThreshold: a.WeightThreshold}
	if a.AccountMembers != nil {
		out.AccountMembers = make([]AuthorityMember, len(a.AccountMembers))
		copy(out.AccountMembers, a.AccountMembers)
	}
	if a.KeyMembers != nil {
		out.KeyMembers = make([]AuthorityMember, len(a.KeyMembers))
		copy(out.KeyMembers, a.KeyMembers)
	}
	return out
}

// TotalWeight sums every member weight at this level.
func (a ThresholdAuthority) TotalWeight() uint32 {
	var total uint32
	for _, m := range a.AccountMembers {
		total += uint32(m.Weight)
	}
	for _, m := range a.KeyMembers {
		total += uint32(m.Weight)
	}
	return total
}

// MemoAuthority is the single-key memo level: no weight, no threshold.
type MemoAuthority struct {
	Key string `json:"key"`
}

// AccountAuthorityState is the full four-level authority structure of one
// account as fetched from the ledger. It is read by callers and replaced
// wholesale after every successful mutation - it is never treated as locally
// authoritative once a broadcast has been submitted.
type AccountAuthorityState struct {
	Account string             `json:"account"`
	Owner   ThresholdAuthority `json:"owner"`
	Active  ThresholdAuthority `json:"active"`
	Posting ThresholdAuthority `json:"posting"`
	Memo    MemoAuthority      `json:"memo"`
}

// Clone returns a deep copy of the whole state.
func (s AccountAuthorityState) Clone() AccountAuthorityState {
	return AccountAuthorityState{
		Account: s.Account,
		Owner:   s.Owner.Clone(),
		Active:  s.Active.Clone(),
		Posting: s.Posting.Clone(),
		Memo:    s.Memo,
	}
}

// Threshold returns the threshold authority for a threshold level. The
// returned pointer aims into the state; callers that mutate must Clone first.
func (s *AccountAuthorityState) Threshold(level AuthorityLevel) (*ThresholdAuthority, error) {
	switch level {
	case OwnerLevel:
		return &s.Owner, nil
	case ActiveLevel:
		return &s.Active, nil
	case PostingLevel:
		return &s.Posting, nil
	default:
		return nil, fmt.Errorf("level %q has no threshold authority", level)
	}
}
