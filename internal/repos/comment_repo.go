package repos

import (
	"gavelhouse/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CommentRepo struct{ db *sqlx.DB }

func NewCommentRepo(db *sqlx.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) Add(c domain.Comment) error {
	_, err := r.db.Exec(`
	  INSERT INTO comments(id,listing_id,body,created_at)
	  VALUES(?,?,?,?)`, c.ID, c.ListingID, c.Body, c.CreatedAt)
	return err
}

func (r *CommentRepo) ForListing(listingID string) ([]domain.Comment, error) {
	var out []domain.Comment
	err := r.db.Select(&out, `
	  SELECT id, listing_id, body, created_at
	  FROM comments
	  WHERE listing_id = ?
	  ORDER BY created_at ASC, rowid ASC`, listingID)
	return out, err
}
