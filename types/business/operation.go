package business

import (
	"encoding/json"
	"fmt"
)

// AccountUpdateOperationName is the condenser operation that rewrites
// account authorities. Each optional field left nil is left untouched by the
// chain, which is what keeps one edit scoped to one level.
const AccountUpdateOperationName = "account_update2"

// AccountUpdateOperation is the single ledger operation produced per edit.
// Exactly one of Owner/Active/Posting/MemoKey is populated; the others stay
// nil so the unaffected levels serialize to nothing at all.
type AccountUpdateOperation struct {
	Account      string              `json:"account"`
	Owner        *ThresholdAuthority `json:"owner,omitempty"`
	Active       *ThresholdAuthority `json:"active,omitempty"`
	Posting      *ThresholdAuthority `json:"posting,omitempty"`
	MemoKey      string              `json:"memo_key,omitempty"`
	JSONMetadata string              `json:"json_metadata"`
	Extensions   []json.RawMessage   `json:"extensions"`
}

// OperationEnvelope wraps an operation in the chain's ["name", body] tuple
// form used inside transactions.
type OperationEnvelope struct {
	Name string
	Body AccountUpdateOperation
}

// MarshalJSON renders the envelope as ["account_update2", {...}].
func (o OperationEnvelope) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{o.Name, o.Body})
}

// UnmarshalJSON accepts the ["name", body] tuple form.
func (o *OperationEnvelope) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("operation envelope must have 2 elements, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &o.Name); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &o.Body)
}
