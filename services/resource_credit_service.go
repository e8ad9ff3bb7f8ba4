package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hivewallet/authority-api/constants"
	"github.com/hivewallet/authority-api/interfaces"
	"github.com/hivewallet/authority-api/logger"
	"go.uber.org/zap"
)

// ResourceCreditService estimates how much spend capacity an account has.
// Resource credits regenerate linearly from the last recorded mana toward
// the maximum over a fixed window; this is a read-only projection of that
// curve, never a chain mutation.
type ResourceCreditService struct {
	chain  interfaces.ChainClient
	logger *zap.Logger
}

// NewResourceCreditService creates a new resource credit service
func NewResourceCreditService(chain interfaces.ChainClient) *ResourceCreditService {
	return &ResourceCreditService{
		chain:  chain,
		logger: logger.Log,
	}
}

// RCEstimateParams contains the inputs of one regeneration estimate.
type RCEstimateParams struct {
	MaxCredits         int64
	CurrentCredits     int64
	LastUpdateTime     int64
	Now                int64
	RegenPeriodSeconds int64
}

// RCEstimate is the regeneration projection: a whole percentage of capacity
// currently available and the seconds remaining until full.
type RCEstimate struct {
	Percent       int   `json:"percent"`
	SecondsToFull int64 `json:"seconds_to_full"`
}

// EstimateRegeneration projects the current capacity. Pure: for fixed
// inputs a later Now never yields a lower percent, and percent is clamped
// to [0, 100]. A zero or negative maximum estimates to zero percent.
func EstimateRegeneration(params RCEstimateParams) RCEstimate {
	period := params.RegenPeriodSeconds
	if period <= 0 {
		period = constants.RCFullRegenSeconds
	}
	if params.MaxCredits <= 0 {
		return RCEstimate{Percent: 0, SecondsToFull: period}
	}

	elapsed := params.Now - params.LastUpdateTime
	if elapsed < 0 {
		elapsed = 0
	}

	// Mana values can exceed float64's 53-bit integer range only for
	// absurdly large accounts; float math keeps the product from
	// overflowing int64 and the result is clamped anyway.
	regenerated := float64(params.CurrentCredits) +
		float64(params.MaxCredits)*float64(elapsed)/float64(period)
	if regenerated > float64(params.MaxCredits) {
		regenerated = float64(params.MaxCredits)
	}
	if regenerated < 0 {
		regenerated = 0
	}

	percent := int(math.Round(regenerated * 100 / float64(params.MaxCredits)))
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}

	return RCEstimate{
		Percent:       percent,
		SecondsToFull: int64(100-percent) * period / 100,
	}
}

// EstimateForAccount fetches the account's manabar and projects it to now.
func (s *ResourceCreditService) EstimateForAccount(ctx context.Context, account string) (*RCEstimate, error) {
	if account == "" {
		return nil, fmt.Errorf("account name is required")
	}

	rc, err := s.chain.FindRCAccount(ctx, account)
	if err != nil {
		s.logger.Error("Failed to fetch resource credit state",
			zap.String("account", account),
			zap.Error(err))
		return nil, fmt.Errorf("failed to fetch resource credits: %w", err)
	}

	estimate := EstimateRegeneration(RCEstimateParams{
		MaxCredits:         rc.MaxMana,
		CurrentCredits:     rc.CurrentMana,
		LastUpdateTime:     rc.LastUpdateTime,
		Now:                time.Now().Unix(),
		RegenPeriodSeconds: constants.RCFullRegenSeconds,
	})
	return &estimate, nil
}
