package hived

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hivewallet/authority-api/types/business"
)

// RPCError is the structured error envelope a hived node returns when it
// rejects a call. Data carries the fc exception detail; Stack entries hold
// the per-frame format string plus its substitution payload, which is where
// parse errors embed the offending input.
type RPCError struct {
	Code    int64        `json:"code"`
	Message string       `json:"message"`
	Data    RPCErrorData `json:"data"`
}

// RPCErrorData is the fc exception body nested inside an RPCError.
type RPCErrorData struct {
	Code    int64           `json:"code"`
	Name    string          `json:"name"`
	Message string          `json:"message"`
	Stack   []RPCStackEntry `json:"stack"`
}

// RPCStackEntry is one frame of an fc exception stack.
type RPCStackEntry struct {
	Format string                 `json:"format"`
	Data   map[string]interface{} `json:"data"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("hived rpc error %d: %s", e.Code, e.Message)
}

// rpcRequest is a JSON-RPC 2.0 call body.
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int64         `json:"id"`
}

// rpcResponse is a JSON-RPC 2.0 response body.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
	ID      int64           `json:"id"`
}

// condenserAccount is the slice of the condenser_api.get_accounts row this
// module cares about. The authority structs reuse the business wire tags
// (weight_threshold / account_auths / key_auths tuple lists) directly.
type condenserAccount struct {
	Name    string                      `json:"name"`
	Owner   business.ThresholdAuthority `json:"owner"`
	Active  business.ThresholdAuthority `json:"active"`
	Posting business.ThresholdAuthority `json:"posting"`
	MemoKey string                      `json:"memo_key"`
}

// manaValue is an RC mana amount. Nodes emit it as a bare JSON number or as
// a quoted string depending on magnitude, so both forms decode.
type manaValue int64

func (v *manaValue) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid mana value %s: %w", data, err)
	}
	*v = manaValue(n)
	return nil
}

// rcAccountRow is one entry of rc_api.find_rc_accounts.
type rcAccountRow struct {
	Account string    `json:"account"`
	MaxRC   manaValue `json:"max_rc"`
	Manabar struct {
		CurrentMana    manaValue `json:"current_mana"`
		LastUpdateTime int64     `json:"last_update_time"`
	} `json:"rc_manabar"`
}

// rcAccountsResult wraps the find_rc_accounts response.
type rcAccountsResult struct {
	RCAccounts []rcAccountRow `json:"rc_accounts"`
}

// transactionSkeleton is the unsigned transaction handed to the wallet
// endpoint. Reference block data and signatures are filled in by the signer;
// this module never sees a signing key.
type transactionSkeleton struct {
	Operations []business.OperationEnvelope `json:"operations"`
	Extensions []json.RawMessage            `json:"extensions"`
}
