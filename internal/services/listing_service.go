package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gavelhouse/internal/auctionerrors"
	"gavelhouse/internal/domain"
	"gavelhouse/internal/repos"
	"gavelhouse/internal/validate"

	"github.com/google/uuid"
)

type ListingService struct {
	Listings *repos.ListingRepo
}

func NewListingService(listings *repos.ListingRepo) *ListingService {
	return &ListingService{Listings: listings}
}

// Create validates every field before any write; an invalid form never
// reaches the store. The current price starts at the starting bid.
func (s *ListingService) Create(ownerID, title, description string, startingBidCents int64, photo, category string) (domain.Listing, error) {
	if ownerID == "" {
		return domain.Listing{}, fmt.Errorf("%w: missing owner", auctionerrors.ErrValidation)
	}
	title, ok := validate.Title(title)
	if !ok {
		return domain.Listing{}, fmt.Errorf("%w: title must be 1-64 characters", auctionerrors.ErrValidation)
	}
	description, ok = validate.Description(description)
	if !ok {
		return domain.Listing{}, fmt.Errorf("%w: description must be 1-600 characters", auctionerrors.ErrValidation)
	}
	if startingBidCents <= 0 {
		return domain.Listing{}, fmt.Errorf("%w: starting bid must be positive", auctionerrors.ErrValidation)
	}
	photo, ok = validate.PhotoURL(photo)
	if !ok {
		return domain.Listing{}, fmt.Errorf("%w: photo must be an http(s) URL", auctionerrors.ErrValidation)
	}
	category, ok = validate.Category(category)
	if !ok {
		return domain.Listing{}, fmt.Errorf("%w: category must be at most 12 characters", auctionerrors.ErrValidation)
	}

	l := domain.Listing{
		ID:                uuid.NewString(),
		UserID:            ownerID,
		Title:             title,
		Description:       description,
		StartingBidCents:  startingBidCents,
		CurrentPriceCents: startingBidCents,
		Photo:             photo,
		Category:          category,
		Active:            true,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.Listings.Create(l); err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

func (s *ListingService) Get(id string) (domain.Listing, error) {
	l, err := s.Listings.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return l, auctionerrors.ErrListingNotFound
	}
	return l, err
}

// Close deactivates a listing. Only the owner may close; closing an already
// closed listing is a no-op.
func (s *ListingService) Close(id, callerID string) error {
	l, err := s.Get(id)
	if err != nil {
		return err
	}
	if l.UserID != callerID {
		return auctionerrors.ErrNotOwner
	}
	return s.Listings.Close(id)
}

func (s *ListingService) Active() ([]domain.Listing, error) {
	return s.Listings.Active()
}

func (s *ListingService) ByCategory(category string) ([]domain.Listing, error) {
	return s.Listings.ByCategory(category)
}

func (s *ListingService) Categories() ([]string, error) {
	return s.Listings.Categories()
}
