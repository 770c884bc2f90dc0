package repos

import (
	"gavelhouse/internal/domain"

	"github.com/jmoiron/sqlx"
)

type WatchlistRepo struct{ db *sqlx.DB }

func NewWatchlistRepo(db *sqlx.DB) *WatchlistRepo { return &WatchlistRepo{db: db} }

func (r *WatchlistRepo) Add(listingID, userID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO watchlist(listing_id, user_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(listing_id, user_id) DO NOTHING
	`, listingID, userID)
	return err
}

func (r *WatchlistRepo) Remove(listingID, userID string) error {
	_, err := r.db.Exec(`DELETE FROM watchlist WHERE listing_id=? AND user_id=?`, listingID, userID)
	return err
}

func (r *WatchlistRepo) IsWatching(listingID, userID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM watchlist WHERE listing_id=? AND user_id=?`, listingID, userID)
	return n > 0, err
}

// CountForUser backs the navbar badge; idx_watchlist_user keeps it a single
// indexed lookup instead of a scan over all listings.
func (r *WatchlistRepo) CountForUser(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM watchlist WHERE user_id=?`, userID)
	return n, err
}

func (r *WatchlistRepo) ListingsForUser(userID string) ([]domain.Listing, error) {
	var out []domain.Listing
	err := r.db.Select(&out, `
	  SELECT l.id, l.user_id, l.title, l.description, l.starting_bid_cents,
	         l.current_price_cents, l.photo, l.category, l.active, l.created_at
	  FROM watchlist w
	  JOIN listings l ON l.id = w.listing_id
	  WHERE w.user_id = ?
	  ORDER BY l.created_at DESC`, userID)
	return out, err
}
