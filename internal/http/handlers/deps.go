package handlers

import (
	"gavelhouse/internal/repos"
	"gavelhouse/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ListingHandler   *ListingHandler
	BidHandler       *BidHandler
	CommentHandler   *CommentHandler
	WatchlistHandler *WatchlistHandler
	CategoryHandler  *CategoryHandler

	WatchlistService *services.WatchlistService
}

func NewDeps(db *sqlx.DB) *Deps {
	userRepo := repos.NewUserRepo(db)
	listingRepo := repos.NewListingRepo(db)
	bidRepo := repos.NewBidRepo(db)
	commentRepo := repos.NewCommentRepo(db)
	watchRepo := repos.NewWatchlistRepo(db)

	listingSvc := services.NewListingService(listingRepo)
	biddingSvc := services.NewBiddingService(bidRepo, userRepo)
	commentSvc := services.NewCommentService(commentRepo, listingRepo)
	watchSvc := services.NewWatchlistService(watchRepo)

	return &Deps{
		ListingHandler: &ListingHandler{
			Listings: listingSvc,
			Bidding:  biddingSvc,
			Comments: commentSvc,
			Watch:    watchSvc,
		},
		BidHandler:       &BidHandler{Bidding: biddingSvc},
		CommentHandler:   &CommentHandler{Comments: commentSvc},
		WatchlistHandler: &WatchlistHandler{Watch: watchSvc},
		CategoryHandler:  &CategoryHandler{Listings: listingSvc},
		WatchlistService: watchSvc,
	}
}
