package repos

import (
	"gavelhouse/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ListingRepo struct{ db *sqlx.DB }

func NewListingRepo(db *sqlx.DB) *ListingRepo { return &ListingRepo{db: db} }

const listingCols = `id, user_id, title, description, starting_bid_cents,
  current_price_cents, photo, category, active, created_at`

func (r *ListingRepo) Create(l domain.Listing) error {
	_, err := r.db.Exec(`
	  INSERT INTO listings(id,user_id,title,description,starting_bid_cents,current_price_cents,photo,category,active)
	  VALUES(?,?,?,?,?,?,?,?,1)`,
		l.ID, l.UserID, l.Title, l.Description, l.StartingBidCents, l.CurrentPriceCents, l.Photo, l.Category)
	return err
}

func (r *ListingRepo) Get(id string) (domain.Listing, error) {
	var l domain.Listing
	err := r.db.Get(&l, `SELECT `+listingCols+` FROM listings WHERE id = ?`, id)
	return l, err
}

func (r *ListingRepo) Active() ([]domain.Listing, error) {
	var out []domain.Listing
	err := r.db.Select(&out, `
	  SELECT `+listingCols+`
	  FROM listings
	  WHERE active = 1
	  ORDER BY created_at DESC`)
	return out, err
}

// ByCategory matches the label exactly (case-sensitive) and only active listings.
func (r *ListingRepo) ByCategory(category string) ([]domain.Listing, error) {
	var out []domain.Listing
	err := r.db.Select(&out, `
	  SELECT `+listingCols+`
	  FROM listings
	  WHERE category = ? AND active = 1
	  ORDER BY created_at DESC`, category)
	return out, err
}

// Categories covers all listings regardless of active state; empty labels excluded.
func (r *ListingRepo) Categories() ([]string, error) {
	var out []string
	err := r.db.Select(&out, `
	  SELECT DISTINCT category FROM listings
	  WHERE category <> ''
	  ORDER BY category`)
	return out, err
}

// Close is one-way; a second call is a no-op.
func (r *ListingRepo) Close(id string) error {
	_, err := r.db.Exec(`UPDATE listings SET active = 0 WHERE id = ?`, id)
	return err
}
