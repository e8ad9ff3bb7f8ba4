package hived

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hivewallet/authority-api/logger"
	"github.com/hivewallet/authority-api/types/business"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultEndpoint = "https://api.hive.blog"
	defaultTimeout  = 30 * time.Second

	getAccountsMethod    = "condenser_api.get_accounts"
	findRCAccountsMethod = "rc_api.find_rc_accounts"
	broadcastMethod      = "network_broadcast_api.broadcast_transaction"
	broadcastSyncMethod  = "network_broadcast_api.broadcast_transaction_synchronous"
)

// ErrUserRejected is raised when the connected signing wallet declines to
// sign a transaction. No network call has been made when this is returned.
var ErrUserRejected = pkgerrors.New("rejected")

// Client talks JSON-RPC 2.0 to a hived node and its connected signing
// wallet endpoint. Signing keys never pass through this client.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
	requestID  atomic.Int64
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint overrides the node endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a hived client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger.Log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetAccountAuthority fetches one account and maps its authority rows into
// the four-level structure.
func (c *Client) GetAccountAuthority(ctx context.Context, account string) (*business.AccountAuthorityState, error) {
	var accounts []condenserAccount
	if err := c.call(ctx, getAccountsMethod, []interface{}{[]string{account}}, &accounts); err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, pkgerrors.Errorf("account %q not found on chain", account)
	}

	row := accounts[0]
	return &business.AccountAuthorityState{
		Account: row.Name,
		Owner:   row.Owner,
		Active:  row.Active,
		Posting: row.Posting,
		Memo:    business.MemoAuthority{Key: row.MemoKey},
	}, nil
}

// BroadcastAccountUpdate submits one serialized account-update operation.
// The wallet endpoint completes the transaction (reference block, expiry,
// signatures) before the node sees it. Node rejections come back as
// *RPCError so the classifier can inspect the envelope.
func (c *Client) BroadcastAccountUpdate(ctx context.Context, account string, op business.OperationEnvelope, opts business.BroadcastOptions) (*business.BroadcastResult, error) {
	method := broadcastMethod
	if opts.Observe {
		method = broadcastSyncMethod
	}

	trx := transactionSkeleton{
		Operations: []business.OperationEnvelope{op},
		Extensions: []json.RawMessage{},
	}

	c.logger.Info("Broadcasting account update",
		zap.String("account", account),
		zap.String("method", method))

	var result business.BroadcastResult
	if err := c.call(ctx, method, []interface{}{trx}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FindRCAccount fetches the resource-credit manabar state for one account.
func (c *Client) FindRCAccount(ctx context.Context, account string) (*business.ResourceCreditAccount, error) {
	var result rcAccountsResult
	params := []interface{}{map[string]interface{}{"accounts": []string{account}}}
	if err := c.call(ctx, findRCAccountsMethod, params, &result); err != nil {
		return nil, err
	}
	if len(result.RCAccounts) == 0 {
		return nil, pkgerrors.Errorf("no resource credit state for account %q", account)
	}

	row := result.RCAccounts[0]
	return &business.ResourceCreditAccount{
		Account:        row.Account,
		MaxMana:        int64(row.MaxRC),
		CurrentMana:    int64(row.Manabar.CurrentMana),
		LastUpdateTime: row.Manabar.LastUpdateTime,
	}, nil
}

// call performs one JSON-RPC round trip. Transport failures are wrapped;
// node-level failures return the raw *RPCError untouched.
func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	reqBody := rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.requestID.Add(1),
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return pkgerrors.Wrap(err, "marshaling rpc request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(err, "building rpc request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrapf(err, "calling %s", method)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(err, "reading rpc response")
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return pkgerrors.Wrapf(err, "decoding response from %s", method)
	}
	if rpcResp.Error != nil {
		c.logger.Warn("Node rejected rpc call",
			zap.String("method", method),
			zap.Int64("code", rpcResp.Error.Code),
			zap.String("message", rpcResp.Error.Message))
		return rpcResp.Error
	}
	if out != nil && len(rpcResp.Result) > 0 {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return pkgerrors.Wrapf(err, "decoding result from %s", method)
		}
	}
	return nil
}
