package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/waatech/merch-backend/models"
	"github.com/waatech/merch-backend/repository"
)

// Candidate membership token IDs, checked in order. Token ID 2 is the
// current membership token; 1 is kept as a fallback for early mints.
var membershipTokenIDs = []uint64{2, 1}

// MembershipService answers whether a wallet holds a membership token and
// whether it has already claimed the welcome package. Integration failures
// never propagate: a failed chain read resolves to non-member and a failed
// ledger read resolves to not-redeemed, so the UI keeps working through an
// outage.
type MembershipService struct {
	chain  ChainClient
	ledger repository.RedemptionLedger
	logger *zap.Logger
}

func NewMembershipService(chain ChainClient, ledger repository.RedemptionLedger, logger *zap.Logger) *MembershipService {
	return &MembershipService{
		chain:  chain,
		ledger: ledger,
		logger: logger,
	}
}

// CheckMembership reports membership if any candidate token ID has a
// positive balance. The first positive balance wins.
func (s *MembershipService) CheckMembership(ctx context.Context, address string) models.MembershipResult {
	result := models.MembershipResult{Address: address}

	for _, tokenID := range membershipTokenIDs {
		balance, err := s.chain.BalanceOf(ctx, address, tokenID)
		if err != nil {
			s.logger.Warn("chain balance read failed, treating as non-member",
				zap.String("address", address),
				zap.Uint64("token_id", tokenID),
				zap.Error(err),
			)
			continue
		}
		if balance > 0 {
			result.IsMember = true
			result.Balance = balance
			result.TokenID = tokenID
			return result
		}
	}
	return result
}

// CheckRedemption reports whether the wallet has already claimed the
// welcome package. Read failures default to not-redeemed.
func (s *MembershipService) CheckRedemption(ctx context.Context, address string) bool {
	hasRedeemed, err := s.ledger.Has(ctx, strings.ToLower(address))
	if err != nil {
		s.logger.Warn("redemption ledger read failed, treating as not redeemed",
			zap.String("address", address),
			zap.Error(err),
		)
		return false
	}
	return hasRedeemed
}

// MarkRedeemed records the claim. Idempotent: marking twice is observably
// identical to marking once.
func (s *MembershipService) MarkRedeemed(ctx context.Context, address string) error {
	return s.ledger.Mark(ctx, strings.ToLower(address))
}
