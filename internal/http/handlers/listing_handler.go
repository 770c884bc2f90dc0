package handlers

import (
	"errors"

	"gavelhouse/internal/auctionerrors"
	"gavelhouse/internal/domain"
	"gavelhouse/internal/log"
	"gavelhouse/internal/money"
	"gavelhouse/internal/services"
	"gavelhouse/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	Listings *services.ListingService
	Bidding  *services.BiddingService
	Comments *services.CommentService
	Watch    *services.WatchlistService
}

// Write actions funnel back to the listing detail; failures carry an error
// code in the query string so the page can show what went wrong.
var detailErrors = map[string]string{
	"bad_amount": "Enter a valid bid amount.",
	"bid_low":    "Your bid is below the minimum. Bid again.",
	"closed":     "This auction has closed and no longer accepts bids.",
	"comment":    "Comments must be 1-128 characters.",
	"owner":      "Only the owner can close this auction.",
}

func (h *ListingHandler) Index(c *fiber.Ctx) error {
	listings, err := h.Listings.Active()
	if err != nil {
		log.Error(c, "listing.index.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load listings"})
	}
	return render(c, "index", fiber.Map{"Listings": listings})
}

func (h *ListingHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "createlisting", fiber.Map{"Err": ""})
}

func (h *ListingHandler) Create(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}

	cents, err := money.ParseCents(c.FormValue("starting_bid"))
	if err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "starting_bid"})
		return c.Status(fiber.StatusBadRequest).Render("createlisting", fiber.Map{"Err": "Enter a valid starting bid, e.g. 15.00.", "CSRFToken": c.Cookies("csrf_")})
	}

	l, err := h.Listings.Create(u.ID, c.FormValue("title"), c.FormValue("description"),
		cents, c.FormValue("photo"), c.FormValue("category"))
	if errors.Is(err, auctionerrors.ErrValidation) {
		log.Security(c, "validation.fail", map[string]any{"action": "listing.create"})
		return c.Status(fiber.StatusBadRequest).Render("createlisting", fiber.Map{"Err": err.Error(), "CSRFToken": c.Cookies("csrf_")})
	}
	if err != nil {
		log.Error(c, "listing.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not create listing"})
	}

	log.Audit(c, "listing.create", map[string]any{"listing": l.ID, "title": l.Title})
	return c.Redirect("/listings/" + l.ID)
}

func (h *ListingHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This listing does not exist"})
	}
	l, err := h.Listings.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This listing does not exist"})
	}

	bids, err := h.Bidding.BidsForListing(id)
	if err != nil {
		log.Error(c, "listing.detail.fail", err, map[string]any{"listing": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load listing"})
	}
	highest, err := h.Bidding.HighestBidder(id)
	if err != nil {
		log.Error(c, "listing.detail.fail", err, map[string]any{"listing": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load listing"})
	}
	comments, err := h.Comments.ForListing(id)
	if err != nil {
		log.Error(c, "listing.detail.fail", err, map[string]any{"listing": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load listing"})
	}

	watching := false
	isOwner := false
	if u, _ := c.Locals("user").(*domain.User); u != nil {
		watching, _ = h.Watch.IsWatching(id, u.ID)
		isOwner = l.UserID == u.ID
	}

	data := fiber.Map{
		"L":             l,
		"Bids":          bids,
		"BidCount":      len(bids),
		"MinBid":        l.MinimumBid(len(bids) > 0),
		"HighestBidder": highest,
		"Comments":      comments,
		"Watching":      watching,
		"IsOwner":       isOwner,
	}
	if msg, ok := detailErrors[c.Query("err")]; ok {
		data["Err"] = msg
	}
	return render(c, "listing", data)
}

func (h *ListingHandler) Close(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This listing does not exist"})
	}

	err := h.Listings.Close(id, u.ID)
	switch {
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This listing does not exist"})
	case errors.Is(err, auctionerrors.ErrNotOwner):
		log.Security(c, "listing.close.denied", map[string]any{"listing": id, "user": u.ID})
		return c.Redirect("/listings/" + id + "?err=owner")
	case err != nil:
		log.Error(c, "listing.close.fail", err, map[string]any{"listing": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not close auction"})
	}

	log.Audit(c, "listing.close", map[string]any{"listing": id})
	return c.Redirect("/listings/" + id)
}
