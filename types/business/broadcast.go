package business

// BroadcastOptions controls how a serialized operation is submitted.
// Observe waits for the node to report inclusion instead of returning as
// soon as the transaction is accepted into its queue.
type BroadcastOptions struct {
	Observe bool `json:"observe"`
}

// BroadcastResult is what the node reports for an accepted transaction.
// Acceptance here means "included by the node we asked" at best - the
// canonical authority state is confirmed only by a fresh fetch.
type BroadcastResult struct {
	ID       string `json:"id"`
	BlockNum int64  `json:"block_num"`
	Expired  bool   `json:"expired"`
}

// ResourceCreditAccount is the raw regeneration state of one account's
// resource-credit manabar as reported by the chain.
type ResourceCreditAccount struct {
	Account        string `json:"account"`
	MaxMana        int64  `json:"max_mana"`
	CurrentMana    int64  `json:"current_mana"`
	LastUpdateTime int64  `json:"last_update_time"`
}
