package repos

import (
	"database/sql"
	"errors"

	"gavelhouse/internal/auctionerrors"
	"gavelhouse/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BidRepo struct{ db *sqlx.DB }

func NewBidRepo(db *sqlx.DB) *BidRepo { return &BidRepo{db: db} }

// Place records a bid and bumps the listing price in one transaction. The
// listing row is re-read inside the transaction so two concurrent bids cannot
// both pass the minimum check against a stale price.
func (r *BidRepo) Place(b domain.Bid) (domain.Listing, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Listing{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var l domain.Listing
	err = tx.Get(&l, `SELECT `+listingCols+` FROM listings WHERE id = ?`, b.ListingID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, auctionerrors.ErrListingNotFound
	}
	if err != nil {
		return domain.Listing{}, err
	}
	if !l.Active {
		return l, auctionerrors.ErrListingClosed
	}
	var nbids int
	if err := tx.Get(&nbids, `SELECT COUNT(*) FROM bids WHERE listing_id = ?`, b.ListingID); err != nil {
		return l, err
	}
	if b.AmountCents < l.MinimumBidCents(nbids > 0) {
		return l, auctionerrors.ErrBidTooLow
	}

	if _, err := tx.Exec(`
	  INSERT INTO bids(id,listing_id,user_id,amount_cents,created_at)
	  VALUES(?,?,?,?,?)`,
		b.ID, b.ListingID, b.UserID, b.AmountCents, b.CreatedAt); err != nil {
		return l, err
	}
	// only the price changes; the rest of the row stays untouched
	if _, err := tx.Exec(`UPDATE listings SET current_price_cents = ? WHERE id = ?`,
		b.AmountCents, b.ListingID); err != nil {
		return l, err
	}

	if err := tx.Commit(); err != nil {
		return l, err
	}
	l.CurrentPriceCents = b.AmountCents
	return l, nil
}

// Latest returns the most recently created bid for a listing. The newest bid
// determines the highest bidder; rowid breaks same-timestamp ties.
func (r *BidRepo) Latest(listingID string) (domain.Bid, error) {
	var b domain.Bid
	err := r.db.Get(&b, `
	  SELECT id, listing_id, user_id, amount_cents, created_at
	  FROM bids
	  WHERE listing_id = ?
	  ORDER BY created_at DESC, rowid DESC
	  LIMIT 1`, listingID)
	if errors.Is(err, sql.ErrNoRows) {
		return b, auctionerrors.ErrNoBids
	}
	return b, err
}

func (r *BidRepo) ForListing(listingID string) ([]domain.Bid, error) {
	var out []domain.Bid
	err := r.db.Select(&out, `
	  SELECT id, listing_id, user_id, amount_cents, created_at
	  FROM bids
	  WHERE listing_id = ?
	  ORDER BY created_at ASC, rowid ASC`, listingID)
	return out, err
}

func (r *BidRepo) Count(listingID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM bids WHERE listing_id = ?`, listingID)
	return n, err
}
