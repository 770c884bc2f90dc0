package services

import (
	"errors"
	"fmt"
	"time"

	"gavelhouse/internal/auctionerrors"
	"gavelhouse/internal/domain"
	"gavelhouse/internal/repos"

	"github.com/google/uuid"
)

// BiddingService owns the bidding rules: the minimum-bid floor, server-side
// acceptance of a bid, and highest-bidder resolution.
type BiddingService struct {
	Bids  *repos.BidRepo
	Users *repos.UserRepo
}

func NewBiddingService(bids *repos.BidRepo, users *repos.UserRepo) *BiddingService {
	return &BiddingService{Bids: bids, Users: users}
}

// Place validates and records a bid. The repo re-checks the listing state and
// the minimum inside a transaction, so acceptance never rides on form hints
// or on a price read before the request.
func (s *BiddingService) Place(listingID, userID string, amountCents int64) (domain.Bid, error) {
	if listingID == "" || userID == "" {
		return domain.Bid{}, fmt.Errorf("%w: missing listing or user", auctionerrors.ErrValidation)
	}
	if amountCents <= 0 {
		return domain.Bid{}, fmt.Errorf("%w: non-positive bid amount", auctionerrors.ErrValidation)
	}

	bid := domain.Bid{
		ID:          uuid.NewString(),
		ListingID:   listingID,
		UserID:      userID,
		AmountCents: amountCents,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339Nano),
	}

	if _, err := s.Bids.Place(bid); err != nil {
		if errors.Is(err, auctionerrors.ErrBidTooLow) ||
			errors.Is(err, auctionerrors.ErrListingClosed) ||
			errors.Is(err, auctionerrors.ErrListingNotFound) {
			return domain.Bid{}, err
		}
		return domain.Bid{}, fmt.Errorf("record bid for listing %s: %w", listingID, err)
	}
	return bid, nil
}

// HighestBidder returns the user on the most recently created bid, or nil
// when the listing has no bids yet.
func (s *BiddingService) HighestBidder(listingID string) (*domain.User, error) {
	b, err := s.Bids.Latest(listingID)
	if errors.Is(err, auctionerrors.ErrNoBids) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Users.ByID(b.UserID)
}

func (s *BiddingService) BidsForListing(listingID string) ([]domain.Bid, error) {
	return s.Bids.ForListing(listingID)
}

func (s *BiddingService) BidCount(listingID string) (int, error) {
	return s.Bids.Count(listingID)
}
