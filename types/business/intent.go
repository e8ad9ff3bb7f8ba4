package business

// EditIntentKind tags the variant of an AuthorityEditIntent.
type EditIntentKind string

const (
	AddMemberIntent     EditIntentKind = "add_member"
	ReplaceMemberIntent EditIntentKind = "replace_member"
	RemoveMemberIntent  EditIntentKind = "remove_member"
	SetThresholdIntent  EditIntentKind = "set_threshold"
	SetMemoKeyIntent    EditIntentKind = "set_memo_key"
)

// AuthorityEditIntent describes exactly one user-requested change to one
// authority level. Only the fields of the tagged variant are meaningful:
//
//	AddMember:     Identifier, Weight
//	ReplaceMember: OldIdentifier, Identifier, Weight
//	RemoveMember:  Identifier
//	SetThreshold:  Threshold (threshold levels only)
//	SetMemoKey:    MemoKey (memo level only)
//
// Weight and Threshold are signed so that out-of-range caller input reaches
// the validator instead of being truncated at the type boundary.
type AuthorityEditIntent struct {
	Kind          EditIntentKind `json:"kind"`
	Identifier    string         `json:"identifier,omitempty"`
	OldIdentifier string         `json:"old_identifier,omitempty"`
	Weight        int64          `json:"weight,omitempty"`
	Threshold     int64          `json:"threshold,omitempty"`
	MemoKey       string         `json:"memo_key,omitempty"`
}
