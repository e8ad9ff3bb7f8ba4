package interfaces

import (
	"context"

	"github.com/hivewallet/authority-api/types/business"
)

// ChainClient is the boundary to the ledger node and the connected signing
// wallet. The services layer never talks to the network directly; everything
// goes through this interface so tests can substitute a mock.
type ChainClient interface {
	// GetAccountAuthority fetches the canonical four-level authority
	// structure for one account.
	GetAccountAuthority(ctx context.Context, account string) (*business.AccountAuthorityState, error)

	// BroadcastAccountUpdate signs and broadcasts exactly one serialized
	// account-update operation on behalf of the acting account. Node
	// rejections surface as *hived.RPCError; a signer decline surfaces as
	// hived.ErrUserRejected.
	BroadcastAccountUpdate(ctx context.Context, account string, op business.OperationEnvelope, opts business.BroadcastOptions) (*business.BroadcastResult, error)

	// FindRCAccount fetches the raw resource-credit manabar state for one
	// account.
	FindRCAccount(ctx context.Context, account string) (*business.ResourceCreditAccount, error)
}
