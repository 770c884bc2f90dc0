package domain

import "gavelhouse/internal/money"

type Listing struct {
	ID                string `db:"id"`
	UserID            string `db:"user_id"`
	Title             string `db:"title"`
	Description       string `db:"description"`
	StartingBidCents  int64  `db:"starting_bid_cents"`
	CurrentPriceCents int64  `db:"current_price_cents"`
	Photo             string `db:"photo"`
	Category          string `db:"category"`
	Active            bool   `db:"active"`
	CreatedAt         string `db:"created_at"`
}

func (l Listing) CurrentPrice() string { return money.FormatCents(l.CurrentPriceCents) }
func (l Listing) StartingBid() string  { return money.FormatCents(l.StartingBidCents) }

// MinimumBidCents is the floor a new bid must meet. The first bid may equal
// the starting bid; every later bid must beat the current price by at least
// a cent, including after a first bid placed exactly at the starting bid.
func (l Listing) MinimumBidCents(hasBids bool) int64 {
	if hasBids || l.CurrentPriceCents > l.StartingBidCents {
		return l.CurrentPriceCents + 1
	}
	return l.StartingBidCents
}

func (l Listing) MinimumBid(hasBids bool) string {
	return money.FormatCents(l.MinimumBidCents(hasBids))
}

type Bid struct {
	ID          string `db:"id"`
	ListingID   string `db:"listing_id"`
	UserID      string `db:"user_id"`
	AmountCents int64  `db:"amount_cents"`
	CreatedAt   string `db:"created_at"`
}

func (b Bid) Amount() string { return money.FormatCents(b.AmountCents) }

// Comment carries no author column on purpose; the listing is the only owner.
type Comment struct {
	ID        string `db:"id"`
	ListingID string `db:"listing_id"`
	Body      string `db:"body"`
	CreatedAt string `db:"created_at"`
}
