package services_test

import (
	"strings"
	"testing"

	"github.com/hivewallet/authority-api/logger"
	"github.com/hivewallet/authority-api/services"
	"github.com/hivewallet/authority-api/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

var (
	testOwnerKey   = "STM" + strings.Repeat("A", 50)
	testActiveKey  = "STM" + strings.Repeat("B", 50)
	testPostingKey = "STM" + strings.Repeat("C", 50)
	testMemoKey    = "STM" + strings.Repeat("D", 50)
	testFreshKey   = "STM" + strings.Repeat("E", 50)
)

func testAuthorityState() *business.AccountAuthorityState {
	return &business.AccountAuthorityState{
		Account: "alice",
		Owner: business.ThresholdAuthority{
			WeightThreshold: 2,
			KeyMembers: []business.AuthorityMember{
				{Identifier: testOwnerKey, Weight: 2},
				{Identifier: testActiveKey, Weight: 3},
			},
		},
		Active: business.ThresholdAuthority{
			WeightThreshold: 1,
			AccountMembers: []business.AuthorityMember{
				{Identifier: "bob", Weight: 1},
			},
		},
		Posting: business.ThresholdAuthority{
			WeightThreshold: 1,
			KeyMembers: []business.AuthorityMember{
				{Identifier: testPostingKey, Weight: 1},
			},
			AccountMembers: []business.AuthorityMember{
				{Identifier: "carol", Weight: 1},
			},
		},
		Memo: business.MemoAuthority{Key: testMemoKey},
	}
}

func TestAuthorityValidator_AddMember(t *testing.T) {
	validator := services.NewAuthorityValidator()

	tests := []struct {
		name     string
		level    business.AuthorityLevel
		intent   business.AuthorityEditIntent
		wantKind business.ValidationErrorKind
	}{
		{
			name:   "accepts new key on posting",
			level:  business.PostingLevel,
			intent: business.AuthorityEditIntent{Kind: business.AddMemberIntent, Identifier: testFreshKey, Weight: 1},
		},
		{
			name:   "accepts new account on active",
			level:  business.ActiveLevel,
			intent: business.AuthorityEditIntent{Kind: business.AddMemberIntent, Identifier: "dave", Weight: 2},
		},
		{
			name:     "rejects key already present at same level",
			level:    business.PostingLevel,
			intent:   business.AuthorityEditIntent{Kind: business.AddMemberIntent, Identifier: testPostingKey, Weight: 2},
			wantKind: business.DuplicateKey,
		},
		{
			name:     "rejects key already present at another level",
			level:    business.PostingLevel,
			intent:   business.AuthorityEditIntent{Kind: business.AddMemberIntent, Identifier: testOwnerKey, Weight: 1},
			wantKind: business.DuplicateKey,
		},
		{
			name:     "rejects memo key as a new member",
			level:    business.ActiveLevel,
			intent:   business.AuthorityEditIntent{Kind: business.AddMemberIntent, Identifier: testMemoKey, Weight: 1},
			wantKind: business.DuplicateKey,
		},
		{
			name:     "rejects account already present at another level",
			level:    business.PostingLevel,
			intent:   business.AuthorityEditIntent{Kind: business.AddMemberIntent, Identifier: "bob", Weight: 1},
			wantKind: business.DuplicateAccount,
		},
		{
			name:     "rejects blank identifier",
			level:    business.ActiveLevel,
			intent:   business.AuthorityEditIntent{Kind: business.AddMemberIntent, Identifier: "   ", Weight: 1},
			wantKind: business.EmptyIdentifier,
		},
		{
			name:     "rejects zero weight",
			level:    business.ActiveLevel,
			intent:   business.AuthorityEditIntent{Kind: business.AddMemberIntent, Identifier: "dave", Weight: 0},
			wantKind: business.InvalidWeight,
		},
		{
			name:     "rejects negative weight",
			level:    business.ActiveLevel,
			intent:   business.AuthorityEditIntent{Kind: business.AddMemberIntent, Identifier: "dave", Weight: -5},
			wantKind: business.InvalidWeight,
		},
		{
			name:     "rejects weight above chain maximum",
			level:    business.ActiveLevel,
			intent:   business.AuthorityEditIntent{Kind: business.AddMemberIntent, Identifier: "dave", Weight: 70000},
			wantKind: business.InvalidWeight,
		},
		{
			name:     "rejects member edits on memo level",
			level:    business.MemoLevel,
			intent:   business.AuthorityEditIntent{Kind: business.AddMemberIntent, Identifier: "dave", Weight: 1},
			wantKind: business.LevelMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := validator.Validate(testAuthorityState(), tt.level, tt.intent)

			if tt.wantKind == "" {
				assert.Nil(t, verr)
			} else {
				require.NotNil(t, verr)
				assert.Equal(t, tt.wantKind, verr.Kind)
			}
		})
	}
}

// Existing key "KEYABC" with weight 1; adding "KEYABC" again must be a
// duplicate key regardless of how the identifier itself would classify.
func TestAuthorityValidator_DuplicateDetectionUsesMemberList(t *testing.T) {
	validator := services.NewAuthorityValidator()

	state := &business.AccountAuthorityState{
		Account: "alice",
		Posting: business.ThresholdAuthority{
			WeightThreshold: 1,
			KeyMembers: []business.AuthorityMember{
				{Identifier: "KEYABC", Weight: 1},
			},
		},
	}

	verr := validator.Validate(state, business.PostingLevel, business.AuthorityEditIntent{
		Kind:       business.AddMemberIntent,
		Identifier: "KEYABC",
		Weight:     2,
	})

	require.NotNil(t, verr)
	assert.Equal(t, business.DuplicateKey, verr.Kind)
}

func TestAuthorityValidator_ReplaceMember(t *testing.T) {
	validator := services.NewAuthorityValidator()

	tests := []struct {
		name     string
		level    business.AuthorityLevel
		intent   business.AuthorityEditIntent
		wantKind business.ValidationErrorKind
	}{
		{
			name:  "accepts replacing a key with a fresh key",
			level: business.PostingLevel,
			intent: business.AuthorityEditIntent{
				Kind:          business.ReplaceMemberIntent,
				OldIdentifier: testPostingKey,
				Identifier:    testFreshKey,
				Weight:        2,
			},
		},
		{
			name:  "accepts a pure weight change",
			level: business.PostingLevel,
			intent: business.AuthorityEditIntent{
				Kind:          business.ReplaceMemberIntent,
				OldIdentifier: testPostingKey,
				Identifier:    testPostingKey,
				Weight:        5,
			},
		},
		{
			name:  "rejects replacing a member that does not exist",
			level: business.PostingLevel,
			intent: business.AuthorityEditIntent{
				Kind:          business.ReplaceMemberIntent,
				OldIdentifier: "nobody",
				Identifier:    "dave",
				Weight:        1,
			},
			wantKind: business.MemberNotFound,
		},
		{
			name:  "rejects replacement that shadows an existing grant",
			level: business.PostingLevel,
			intent: business.AuthorityEditIntent{
				Kind:          business.ReplaceMemberIntent,
				OldIdentifier: "carol",
				Identifier:    "bob",
				Weight:        1,
			},
			wantKind: business.DuplicateAccount,
		},
		{
			name:  "rejects replacement with invalid weight",
			level: business.PostingLevel,
			intent: business.AuthorityEditIntent{
				Kind:          business.ReplaceMemberIntent,
				OldIdentifier: "carol",
				Identifier:    "dave",
				Weight:        0,
			},
			wantKind: business.InvalidWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := validator.Validate(testAuthorityState(), tt.level, tt.intent)

			if tt.wantKind == "" {
				assert.Nil(t, verr)
			} else {
				require.NotNil(t, verr)
				assert.Equal(t, tt.wantKind, verr.Kind)
			}
		})
	}
}

func TestAuthorityValidator_RemoveMember(t *testing.T) {
	validator := services.NewAuthorityValidator()

	t.Run("accepts removing an existing member", func(t *testing.T) {
		verr := validator.Validate(testAuthorityState(), business.PostingLevel, business.AuthorityEditIntent{
			Kind:       business.RemoveMemberIntent,
			Identifier: "carol",
		})
		assert.Nil(t, verr)
	})

	t.Run("rejects removing an unknown member", func(t *testing.T) {
		verr := validator.Validate(testAuthorityState(), business.PostingLevel, business.AuthorityEditIntent{
			Kind:       business.RemoveMemberIntent,
			Identifier: "nobody",
		})
		require.NotNil(t, verr)
		assert.Equal(t, business.MemberNotFound, verr.Kind)
	})

	t.Run("allows removing the last member of a level", func(t *testing.T) {
		state := &business.AccountAuthorityState{
			Account: "alice",
			Active: business.ThresholdAuthority{
				WeightThreshold: 1,
				AccountMembers: []business.AuthorityMember{
					{Identifier: "bob", Weight: 1},
				},
			},
		}
		verr := validator.Validate(state, business.ActiveLevel, business.AuthorityEditIntent{
			Kind:       business.RemoveMemberIntent,
			Identifier: "bob",
		})
		assert.Nil(t, verr)
	})
}

func TestAuthorityValidator_SetThreshold(t *testing.T) {
	validator := services.NewAuthorityValidator()

	t.Run("accepts a positive threshold", func(t *testing.T) {
		verr := validator.Validate(testAuthorityState(), business.OwnerLevel, business.AuthorityEditIntent{
			Kind:      business.SetThresholdIntent,
			Threshold: 3,
		})
		assert.Nil(t, verr)
	})

	t.Run("accepts a threshold above the current total weight", func(t *testing.T) {
		// Reachability is not second-guessed locally.
		verr := validator.Validate(testAuthorityState(), business.OwnerLevel, business.AuthorityEditIntent{
			Kind:      business.SetThresholdIntent,
			Threshold: 1000,
		})
		assert.Nil(t, verr)
	})

	t.Run("accepts the chain's maximum threshold", func(t *testing.T) {
		verr := validator.Validate(testAuthorityState(), business.OwnerLevel, business.AuthorityEditIntent{
			Kind:      business.SetThresholdIntent,
			Threshold: 4294967295,
		})
		assert.Nil(t, verr)
	})

	t.Run("rejects a threshold beyond the chain's field width", func(t *testing.T) {
		// 2^32+3 would wrap to 3 if it ever reached serialization.
		verr := validator.Validate(testAuthorityState(), business.OwnerLevel, business.AuthorityEditIntent{
			Kind:      business.SetThresholdIntent,
			Threshold: 1<<32 + 3,
		})
		require.NotNil(t, verr)
		assert.Equal(t, business.InvalidThreshold, verr.Kind)
	})

	t.Run("rejects a zero threshold", func(t *testing.T) {
		verr := validator.Validate(testAuthorityState(), business.OwnerLevel, business.AuthorityEditIntent{
			Kind:      business.SetThresholdIntent,
			Threshold: 0,
		})
		require.NotNil(t, verr)
		assert.Equal(t, business.InvalidThreshold, verr.Kind)
	})

	t.Run("rejects a threshold on the memo level", func(t *testing.T) {
		verr := validator.Validate(testAuthorityState(), business.MemoLevel, business.AuthorityEditIntent{
			Kind:      business.SetThresholdIntent,
			Threshold: 1,
		})
		require.NotNil(t, verr)
		assert.Equal(t, business.LevelMismatch, verr.Kind)
	})
}

func TestAuthorityValidator_SetMemoKey(t *testing.T) {
	validator := services.NewAuthorityValidator()

	t.Run("accepts a well-formed key", func(t *testing.T) {
		verr := validator.Validate(testAuthorityState(), business.MemoLevel, business.AuthorityEditIntent{
			Kind:    business.SetMemoKeyIntent,
			MemoKey: testFreshKey,
		})
		assert.Nil(t, verr)
	})

	t.Run("rejects an account name as memo key", func(t *testing.T) {
		verr := validator.Validate(testAuthorityState(), business.MemoLevel, business.AuthorityEditIntent{
			Kind:    business.SetMemoKeyIntent,
			MemoKey: "bob",
		})
		require.NotNil(t, verr)
		assert.Equal(t, business.NotAKey, verr.Kind)
	})

	t.Run("rejects an empty memo key", func(t *testing.T) {
		verr := validator.Validate(testAuthorityState(), business.MemoLevel, business.AuthorityEditIntent{
			Kind: business.SetMemoKeyIntent,
		})
		require.NotNil(t, verr)
		assert.Equal(t, business.NotAKey, verr.Kind)
	})

	t.Run("rejects setting the memo key on a threshold level", func(t *testing.T) {
		verr := validator.Validate(testAuthorityState(), business.ActiveLevel, business.AuthorityEditIntent{
			Kind:    business.SetMemoKeyIntent,
			MemoKey: testFreshKey,
		})
		require.NotNil(t, verr)
		assert.Equal(t, business.LevelMismatch, verr.Kind)
	})
}
