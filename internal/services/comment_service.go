package services

import (
	"fmt"
	"time"

	"gavelhouse/internal/auctionerrors"
	"gavelhouse/internal/domain"
	"gavelhouse/internal/repos"
	"gavelhouse/internal/validate"

	"github.com/google/uuid"
)

// CommentService is an append-only log of notes on a listing. No author is
// recorded and comments are never edited or deleted.
type CommentService struct {
	Comments *repos.CommentRepo
	Listings *repos.ListingRepo
}

func NewCommentService(comments *repos.CommentRepo, listings *repos.ListingRepo) *CommentService {
	return &CommentService{Comments: comments, Listings: listings}
}

func (s *CommentService) Add(listingID, body string) (domain.Comment, error) {
	body, ok := validate.Comment(body)
	if !ok {
		return domain.Comment{}, fmt.Errorf("%w: comment must be 1-128 characters", auctionerrors.ErrValidation)
	}
	if _, err := s.Listings.Get(listingID); err != nil {
		return domain.Comment{}, auctionerrors.ErrListingNotFound
	}

	c := domain.Comment{
		ID:        uuid.NewString(),
		ListingID: listingID,
		Body:      body,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.Comments.Add(c); err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}

func (s *CommentService) ForListing(listingID string) ([]domain.Comment, error) {
	return s.Comments.ForListing(listingID)
}
