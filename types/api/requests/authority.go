package requests

import (
	"encoding/json"

	"github.com/hivewallet/authority-api/types/business"
)

// AuthorityEditRequest is the body of both the validate and apply routes.
// State is optional: when present the edit is checked against it instead of
// a fresh fetch (the caller then owns freshness).
type AuthorityEditRequest struct {
	Kind          string                          `json:"kind" binding:"required"`
	Identifier    string                          `json:"identifier"`
	OldIdentifier string                          `json:"old_identifier"`
	Weight        int64                           `json:"weight"`
	Threshold     int64                           `json:"threshold"`
	MemoKey       string                          `json:"memo_key"`
	State         *business.AccountAuthorityState `json:"state,omitempty"`
}

// Intent converts the request body into the business edit intent.
func (r AuthorityEditRequest) Intent() business.AuthorityEditIntent {
	return business.AuthorityEditIntent{
		Kind:          business.EditIntentKind(r.Kind),
		Identifier:    r.Identifier,
		OldIdentifier: r.OldIdentifier,
		Weight:        r.Weight,
		Threshold:     r.Threshold,
		MemoKey:       r.MemoKey,
	}
}

// ClassifyErrorRequest carries a raw broadcast failure for standalone
// classification. RawError is either a JSON string (a plain rejection) or a
// structured RPC error envelope, optionally wrapped in {"error": {...}}.
type ClassifyErrorRequest struct {
	RawError json.RawMessage `json:"raw_error" binding:"required"`
}
