package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hivewallet/authority-api/client/hived"
	"github.com/hivewallet/authority-api/services"
	"github.com/hivewallet/authority-api/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rpcError(message string) *hived.RPCError {
	return &hived.RPCError{Code: -32003, Message: message}
}

func TestBroadcastErrorClassifier_Classify(t *testing.T) {
	classifier := services.NewBroadcastErrorClassifier()

	tests := []struct {
		name        string
		raw         error
		wantKind    business.BroadcastErrorKind
		wantMessage string
		contains    string
	}{
		{
			name:     "sentinel rejection from the signing layer",
			raw:      hived.ErrUserRejected,
			wantKind: business.UserRejected,
		},
		{
			name:     "plain rejected text",
			raw:      errors.New("rejected"),
			wantKind: business.UserRejected,
		},
		{
			name:     "rejected text with surrounding whitespace and casing",
			raw:      errors.New("  Rejected  "),
			wantKind: business.UserRejected,
		},
		{
			name:     "wrapped sentinel rejection",
			raw:      fmt.Errorf("signing failed: %w", hived.ErrUserRejected),
			wantKind: business.UserRejected,
		},
		{
			name:     "owner update cooldown envelope",
			raw:      rpcError("10 assert_exception: Assert Exception\n_db.head_block_time() - account_auth.last_owner_update > HIVE_OWNER_UPDATE_LIMIT: Owner authority can only be updated once an hour. owner_update_limit_mgr"),
			wantKind: business.RateLimited,
			contains: "once per hour",
		},
		{
			name:     "owner update cooldown as plain text",
			raw:      errors.New("owner_update_limit_mgr: owner authority can only be updated once an hour"),
			wantKind: business.RateLimited,
		},
		{
			name:        "dangling reference with a named object",
			raw:         rpcError("Could not apply update: references non-existing account 'zed'"),
			wantKind:    business.DanglingReference,
			wantMessage: "The update references non-existing account 'zed'.",
		},
		{
			name:     "dangling reference with no tail",
			raw:      errors.New("references non-existing"),
			wantKind: business.DanglingReference,
			contains: "does not exist on the ledger",
		},
		{
			name: "missing owner auth envelope with node message",
			raw: &hived.RPCError{
				Code:    -32003,
				Message: "missing required owner authority",
				Data: hived.RPCErrorData{
					Name:    "tx_missing_owner_auth",
					Message: "Missing Owner Authority alice",
				},
			},
			wantKind:    business.MissingOwnerAuth,
			wantMessage: "Missing Owner Authority alice",
		},
		{
			name: "missing owner auth envelope without node message",
			raw: &hived.RPCError{
				Code: -32003,
				Data: hived.RPCErrorData{Name: "tx_missing_owner_auth"},
			},
			wantKind: business.MissingOwnerAuth,
			contains: "owner-level signature",
		},
		{
			name: "key parse error with the offending input in the stack",
			raw: &hived.RPCError{
				Code:    -32000,
				Message: "Parse Error",
				Data: hived.RPCErrorData{
					Name: "parse_error_exception",
					Stack: []hived.RPCStackEntry{
						{Format: "Cannot deserialize public key", Data: map[string]interface{}{"str": "STMBADKEY"}},
					},
				},
			},
			wantKind:    business.InvalidKey,
			wantMessage: `"STMBADKEY" is not a valid public key.`,
		},
		{
			name: "key parse error without stack payload",
			raw: &hived.RPCError{
				Code: -32000,
				Data: hived.RPCErrorData{Name: "parse_error_exception"},
			},
			wantKind: business.InvalidKey,
			contains: "could not be parsed",
		},
		{
			name:     "bare assert text",
			raw:      errors.New("10 assert_exception: Assert Exception\nfalse: "),
			wantKind: business.InvalidKey,
			contains: "malformed",
		},
		{
			name:        "transport failure stays unknown with its own text",
			raw:         errors.New("Post \"https://api.hive.blog\": connection refused"),
			wantKind:    business.UnknownError,
			wantMessage: "Post \"https://api.hive.blog\": connection refused",
		},
		{
			name:        "nil error",
			raw:         nil,
			wantKind:    business.UnknownError,
			wantMessage: "unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := classifier.Classify(tt.raw)

			require.NotNil(t, classified)
			assert.Equal(t, tt.wantKind, classified.Kind)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, classified.Message)
			}
			if tt.contains != "" {
				assert.Contains(t, classified.Message, tt.contains)
			}
		})
	}
}

// An envelope whose message carries both the cooldown marker and assert text
// must resolve by priority, not by whichever substring happens to match.
func TestBroadcastErrorClassifier_PriorityOrder(t *testing.T) {
	classifier := services.NewBroadcastErrorClassifier()

	t.Run("rate limit beats assert text in an envelope", func(t *testing.T) {
		raw := rpcError("assert_exception: owner_update_limit_mgr check failed")
		assert.Equal(t, business.RateLimited, classifier.Classify(raw).Kind)
	})

	t.Run("rate limit beats assert text in plain text", func(t *testing.T) {
		raw := errors.New("assert_exception: owner_update_limit_mgr check failed")
		assert.Equal(t, business.RateLimited, classifier.Classify(raw).Kind)
	})

	t.Run("dangling reference beats assert text", func(t *testing.T) {
		raw := rpcError("assert_exception: update references non-existing account 'ghost'")
		assert.Equal(t, business.DanglingReference, classifier.Classify(raw).Kind)
	})

	t.Run("structured parse error beats bare assert fallback", func(t *testing.T) {
		raw := &hived.RPCError{
			Message: "assert_exception while parsing",
			Data: hived.RPCErrorData{
				Name:  "parse_error_exception",
				Stack: []hived.RPCStackEntry{{Data: map[string]interface{}{"key": "STMSHORT"}}},
			},
		}
		classified := classifier.Classify(raw)
		assert.Equal(t, business.InvalidKey, classified.Kind)
		assert.Contains(t, classified.Message, "STMSHORT")
	})
}

func TestBroadcastErrorClassifier_Deterministic(t *testing.T) {
	classifier := services.NewBroadcastErrorClassifier()
	raw := rpcError("Could not apply update: references non-existing account 'zed'")

	first := classifier.Classify(raw)
	second := classifier.Classify(raw)

	assert.Equal(t, first, second)
}
