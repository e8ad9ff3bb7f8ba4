package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hivewallet/authority-api/client/hived"
	"github.com/hivewallet/authority-api/constants"
	"github.com/hivewallet/authority-api/types/business"
)

// BroadcastErrorClassifier maps the heterogeneous failure shapes a broadcast
// can produce onto the stable BroadcastErrorKind taxonomy. It holds a fixed,
// ordered list of shape matchers; the first match wins. Structured envelope
// matchers run before the generic text matchers because an envelope message
// may itself contain substrings that would match a lower-priority rule.
//
// Classification is pure: the same raw error always yields the same result.
type BroadcastErrorClassifier struct {
	matchers []errorMatcher
}

type errorMatcher func(raw error) (*business.ClassifiedError, bool)

// NewBroadcastErrorClassifier creates a classifier with the standard
// priority order.
func NewBroadcastErrorClassifier() *BroadcastErrorClassifier {
	return &BroadcastErrorClassifier{
		matchers: []errorMatcher{
			matchUserRejection,
			matchRateLimit,
			matchDanglingReference,
			matchMissingOwnerAuth,
			matchKeyParseError,
			matchAssertText,
		},
	}
}

// Classify resolves a raw broadcast failure into a kind plus a short
// human-readable sentence. Unmatched errors surface their own text verbatim
// so a failure is never swallowed silently.
func (c *BroadcastErrorClassifier) Classify(raw error) *business.ClassifiedError {
	if raw == nil {
		return &business.ClassifiedError{Kind: business.UnknownError, Message: "unknown error"}
	}
	for _, match := range c.matchers {
		if classified, ok := match(raw); ok {
			return classified
		}
	}
	return &business.ClassifiedError{Kind: business.UnknownError, Message: raw.Error()}
}

// matchUserRejection catches a signer that declined to sign. No network
// error is involved at all.
func matchUserRejection(raw error) (*business.ClassifiedError, bool) {
	if !errors.Is(raw, hived.ErrUserRejected) &&
		strings.TrimSpace(strings.ToLower(raw.Error())) != constants.UserRejectionErrorString {
		return nil, false
	}
	return &business.ClassifiedError{
		Kind:    business.UserRejected,
		Message: "The signing request was rejected.",
	}, true
}

// matchRateLimit catches the chain's once-per-hour owner update limit.
func matchRateLimit(raw error) (*business.ClassifiedError, bool) {
	if !strings.Contains(envelopeMessage(raw), constants.OwnerUpdateLimitMarker) {
		return nil, false
	}
	return &business.ClassifiedError{
		Kind:    business.RateLimited,
		Message: "The owner authority can only be updated once per hour. Wait for the cooldown and try again.",
	}, true
}

// matchDanglingReference catches updates that grant authority to an account
// or key that does not exist on the ledger. The node names the missing
// object after the marker, so that tail becomes the message.
func matchDanglingReference(raw error) (*business.ClassifiedError, bool) {
	message := envelopeMessage(raw)
	idx := strings.Index(message, constants.NonExistingRefMarker)
	if idx < 0 {
		return nil, false
	}
	tail := strings.TrimSpace(message[idx+len(constants.NonExistingRefMarker):])
	if tail == "" {
		return &business.ClassifiedError{
			Kind:    business.DanglingReference,
			Message: "The update references an account or key that does not exist on the ledger.",
		}, true
	}
	return &business.ClassifiedError{
		Kind:    business.DanglingReference,
		Message: fmt.Sprintf("The update references non-existing %s.", strings.TrimSuffix(tail, ".")),
	}, true
}

// matchMissingOwnerAuth catches a transaction signed below owner level for a
// change that needs the owner key.
func matchMissingOwnerAuth(raw error) (*business.ClassifiedError, bool) {
	var rpcErr *hived.RPCError
	if !errors.As(raw, &rpcErr) || rpcErr.Data.Name != constants.MissingOwnerAuthErrName {
		return nil, false
	}
	message := rpcErr.Data.Message
	if message == "" {
		message = "This change requires an owner-level signature."
	}
	return &business.ClassifiedError{Kind: business.MissingOwnerAuth, Message: message}, true
}

// matchKeyParseError catches a structurally malformed key string. The
// offending input is embedded in the exception stack payload.
func matchKeyParseError(raw error) (*business.ClassifiedError, bool) {
	var rpcErr *hived.RPCError
	if !errors.As(raw, &rpcErr) || rpcErr.Data.Name != constants.ParseErrorName {
		return nil, false
	}
	if key := offendingInput(rpcErr); key != "" {
		return &business.ClassifiedError{
			Kind:    business.InvalidKey,
			Message: fmt.Sprintf("%q is not a valid public key.", key),
		}, true
	}
	return &business.ClassifiedError{
		Kind:    business.InvalidKey,
		Message: "One of the provided keys could not be parsed.",
	}, true
}

// matchAssertText is the best-effort fallback for bare fc assert text with
// no structured payload: one of the supplied keys or accounts is malformed.
func matchAssertText(raw error) (*business.ClassifiedError, bool) {
	if !strings.Contains(raw.Error(), constants.AssertExceptionMarker) {
		return nil, false
	}
	return &business.ClassifiedError{
		Kind:    business.InvalidKey,
		Message: "One of the provided keys or account names is malformed.",
	}, true
}

// envelopeMessage returns the structured envelope message when the error is
// an RPC envelope, and the plain error text otherwise.
func envelopeMessage(raw error) string {
	var rpcErr *hived.RPCError
	if errors.As(raw, &rpcErr) {
		return rpcErr.Message
	}
	return raw.Error()
}

// offendingInput digs the rejected input string out of the exception stack.
func offendingInput(rpcErr *hived.RPCError) string {
	for _, entry := range rpcErr.Data.Stack {
		for _, field := range []string{"str", "key", "what"} {
			if value, ok := entry.Data[field].(string); ok && value != "" {
				return value
			}
		}
	}
	return ""
}
