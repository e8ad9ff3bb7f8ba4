package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hivewallet/authority-api/helpers"
	"github.com/hivewallet/authority-api/interfaces"
	"github.com/hivewallet/authority-api/logger"
	"github.com/hivewallet/authority-api/types/business"
	"go.uber.org/zap"
)

// AuthorityService orchestrates one authority edit end to end: validate,
// compute the next state functionally, serialize the single affected level
// into one ledger operation, delegate signing/broadcast to the chain client,
// and classify whatever comes back.
//
// The service holds no state between calls and never caches. Callers must
// not issue two edits to the same (account, level) concurrently: both would
// validate against the same current state and the later broadcast would
// silently clobber the earlier change. Success never yields a new canonical
// state, only an invalidation token and a refetch requirement - a concurrent
// session may have changed the account while the broadcast was in flight.
type AuthorityService struct {
	chain      interfaces.ChainClient
	validator  *AuthorityValidator
	classifier *BroadcastErrorClassifier
	logger     *zap.Logger
}

// NewAuthorityService creates a new authority service
func NewAuthorityService(chain interfaces.ChainClient) *AuthorityService {
	return &AuthorityService{
		chain:      chain,
		validator:  NewAuthorityValidator(),
		classifier: NewBroadcastErrorClassifier(),
		logger:     logger.Log,
	}
}

// ApplyAuthorityEditParams contains parameters for applying one edit.
// State is optional: when nil the current state is fetched; freshness of a
// caller-supplied state is the caller's responsibility.
type ApplyAuthorityEditParams struct {
	Account string
	Level   business.AuthorityLevel
	Intent  business.AuthorityEditIntent
	State   *business.AccountAuthorityState
}

// InvalidationToken tells the caller's cache layer which (account, level)
// projection to discard after a successful mutation.
type InvalidationToken struct {
	ID      uuid.UUID               `json:"id"`
	Account string                  `json:"account"`
	Level   business.AuthorityLevel `json:"level"`
}

// ApplyAuthorityEditResult is returned on a successful broadcast. It carries
// no authority state on purpose: RefetchRequired is always true, because the
// post-success state is merely "probably applied" until a fresh read.
type ApplyAuthorityEditResult struct {
	TransactionID   string            `json:"transaction_id"`
	BlockNum        int64             `json:"block_num"`
	Invalidation    InvalidationToken `json:"invalidation"`
	RefetchRequired bool              `json:"refetch_required"`
}

// Validate runs only the local validation for an intent, without any
// network effect. Returns nil when the edit would be accepted.
func (s *AuthorityService) Validate(state *business.AccountAuthorityState, level business.AuthorityLevel, intent business.AuthorityEditIntent) *business.ValidationError {
	return s.validator.Validate(state, level, intent)
}

// GetAuthorityState fetches the canonical authority state for an account.
func (s *AuthorityService) GetAuthorityState(ctx context.Context, account string) (*business.AccountAuthorityState, error) {
	if account == "" {
		return nil, fmt.Errorf("account name is required")
	}
	state, err := s.chain.GetAccountAuthority(ctx, account)
	if err != nil {
		s.logger.Error("Failed to fetch authority state",
			zap.String("account", account),
			zap.Error(err))
		return nil, fmt.Errorf("failed to fetch authority state: %w", err)
	}
	return state, nil
}

// ClassifyBroadcastError exposes the classifier for callers that perform
// their own broadcasts.
func (s *AuthorityService) ClassifyBroadcastError(raw error) *business.ClassifiedError {
	return s.classifier.Classify(raw)
}

// Apply performs one authority edit. It returns *business.ValidationError
// when the intent is rejected locally (no network call is made) and
// *business.ClassifiedError when the broadcast fails.
func (s *AuthorityService) Apply(ctx context.Context, params ApplyAuthorityEditParams) (*ApplyAuthorityEditResult, error) {
	if params.Account == "" {
		return nil, fmt.Errorf("account name is required")
	}

	state := params.State
	if state == nil {
		fetched, err := s.GetAuthorityState(ctx, params.Account)
		if err != nil {
			return nil, err
		}
		state = fetched
	}

	if verr := s.validator.Validate(state, params.Level, params.Intent); verr != nil {
		s.logger.Info("Authority edit rejected locally",
			zap.String("account", params.Account),
			zap.String("level", string(params.Level)),
			zap.String("kind", string(verr.Kind)))
		return nil, verr
	}

	next := nextAuthorityState(state, params.Level, params.Intent)
	op := serializeAuthorityUpdate(params.Account, params.Level, &next)

	result, err := s.chain.BroadcastAccountUpdate(ctx, params.Account, op, business.BroadcastOptions{Observe: true})
	if err != nil {
		classified := s.classifier.Classify(err)
		s.logger.Warn("Authority edit broadcast failed",
			zap.String("account", params.Account),
			zap.String("level", string(params.Level)),
			zap.String("kind", string(classified.Kind)),
			zap.Error(err))
		return nil, classified
	}

	s.logger.Info("Authority edit broadcast accepted",
		zap.String("account", params.Account),
		zap.String("level", string(params.Level)),
		zap.String("transaction_id", result.ID))

	// The locally computed next state is discarded here on purpose; the
	// ledger is the only source of truth once the broadcast has landed.
	return &ApplyAuthorityEditResult{
		TransactionID: result.ID,
		BlockNum:      result.BlockNum,
		Invalidation: InvalidationToken{
			ID:      uuid.New(),
			Account: params.Account,
			Level:   params.Level,
		},
		RefetchRequired: true,
	}, nil
}

// nextAuthorityState applies a validated intent functionally: the input
// state is never touched.
func nextAuthorityState(state *business.AccountAuthorityState, level business.AuthorityLevel, intent business.AuthorityEditIntent) business.AccountAuthorityState {
	next := state.Clone()

	if intent.Kind == business.SetMemoKeyIntent {
		next.Memo.Key = intent.MemoKey
		return next
	}

	auth, err := next.Threshold(level)
	if err != nil {
		// Unreachable after validation; keep the state unchanged.
		return next
	}

	switch intent.Kind {
	case business.AddMemberIntent:
		addMember(auth, intent.Identifier, uint16(intent.Weight))
	case business.ReplaceMemberIntent:
		removeMember(auth, intent.OldIdentifier)
		addMember(auth, intent.Identifier, uint16(intent.Weight))
	case business.RemoveMemberIntent:
		removeMember(auth, intent.Identifier)
	case business.SetThresholdIntent:
		auth.WeightThreshold = uint32(intent.Threshold)
	}
	return next
}

// addMember appends the member to the list its identifier classifies into.
func addMember(auth *business.ThresholdAuthority, identifier string, weight uint16) {
	member := business.AuthorityMember{Identifier: identifier, Weight: weight}
	if helpers.IsPublicKey(identifier) {
		auth.KeyMembers = append(auth.KeyMembers, member)
	} else {
		auth.AccountMembers = append(auth.AccountMembers, member)
	}
}

// removeMember drops the member from whichever list holds it.
func removeMember(auth *business.ThresholdAuthority, identifier string) {
	auth.KeyMembers = filterMembers(auth.KeyMembers, identifier)
	auth.AccountMembers = filterMembers(auth.AccountMembers, identifier)
}

func filterMembers(members []business.AuthorityMember, identifier string) []business.AuthorityMember {
	out := members[:0]
	for _, m := range members {
		if m.Identifier != identifier {
			out = append(out, m)
		}
	}
	return out
}

// serializeAuthorityUpdate builds the one ledger operation for the edited
// level. The other levels are left out of the operation entirely so they
// stay byte-identical on chain.
func serializeAuthorityUpdate(account string, level business.AuthorityLevel, next *business.AccountAuthorityState) business.OperationEnvelope {
	op := business.AccountUpdateOperation{
		Account:    account,
		Extensions: []json.RawMessage{},
	}
	switch level {
	case business.OwnerLevel:
		owner := next.Owner.Clone()
		op.Owner = &owner
	case business.ActiveLevel:
		active := next.Active.Clone()
		op.Active = &active
	case business.PostingLevel:
		posting := next.Posting.Clone()
		op.Posting = &posting
	case business.MemoLevel:
		op.MemoKey = next.Memo.Key
	}
	return business.OperationEnvelope{Name: business.AccountUpdateOperationName, Body: op}
}
