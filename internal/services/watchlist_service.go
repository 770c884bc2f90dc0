package services

import (
	"gavelhouse/internal/domain"
	"gavelhouse/internal/repos"
)

type WatchlistService struct {
	Repo *repos.WatchlistRepo
}

func NewWatchlistService(r *repos.WatchlistRepo) *WatchlistService { return &WatchlistService{Repo: r} }

// Toggle flips the user's membership in the listing's watcher set and reports
// the state after the flip. Two toggles restore the original membership.
func (s *WatchlistService) Toggle(listingID, userID string) (bool, error) {
	watching, err := s.Repo.IsWatching(listingID, userID)
	if err != nil {
		return false, err
	}
	if watching {
		return false, s.Repo.Remove(listingID, userID)
	}
	return true, s.Repo.Add(listingID, userID)
}

func (s *WatchlistService) IsWatching(listingID, userID string) (bool, error) {
	return s.Repo.IsWatching(listingID, userID)
}

func (s *WatchlistService) Count(userID string) (int, error) {
	return s.Repo.CountForUser(userID)
}

func (s *WatchlistService) ListingsFor(userID string) ([]domain.Listing, error) {
	return s.Repo.ListingsForUser(userID)
}
