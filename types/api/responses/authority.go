package responses

import "github.com/hivewallet/authority-api/types/business"

// ValidateEditResponse reports the outcome of a dry-run validation.
type ValidateEditResponse struct {
	Valid bool                      `json:"valid"`
	Error *business.ValidationError `json:"error,omitempty"`
}

// ApplyEditResponse is returned after a successful broadcast. It never
// carries authority state: the caller must refetch and must invalidate its
// cached projection of the (account, level) pair.
type ApplyEditResponse struct {
	TransactionID   string                  `json:"transaction_id"`
	BlockNum        int64                   `json:"block_num"`
	InvalidationID  string                  `json:"invalidation_id"`
	Account         string                  `json:"account"`
	Level           business.AuthorityLevel `json:"level"`
	RefetchRequired bool                    `json:"refetch_required"`
}

// ClassifyErrorResponse is the stable classification of a raw broadcast
// failure.
type ClassifyErrorResponse struct {
	Kind    business.BroadcastErrorKind `json:"kind"`
	Message string                      `json:"message"`
}

// ResourceCreditResponse is the regeneration estimate for one account.
type ResourceCreditResponse struct {
	Account       string `json:"account"`
	Percent       int    `json:"percent"`
	SecondsToFull int64  `json:"seconds_to_full"`
}
