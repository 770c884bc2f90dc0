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

type BidHandler struct {
	Bidding *services.BiddingService
}

func (h *BidHandler) Place(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This listing does not exist"})
	}

	cents, err := money.ParseCents(c.FormValue("bid"))
	if err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "bid"})
		return c.Redirect("/listings/"+id+"?err=bad_amount", fiber.StatusSeeOther)
	}

	bid, err := h.Bidding.Place(id, u.ID, cents)
	switch {
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This listing does not exist"})
	case errors.Is(err, auctionerrors.ErrListingClosed):
		return c.Redirect("/listings/"+id+"?err=closed", fiber.StatusSeeOther)
	case errors.Is(err, auctionerrors.ErrBidTooLow), errors.Is(err, auctionerrors.ErrValidation):
		return c.Redirect("/listings/"+id+"?err=bid_low", fiber.StatusSeeOther)
	case err != nil:
		log.Error(c, "bid.place.fail", err, map[string]any{"listing": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not place bid"})
	}

	log.Audit(c, "bid.place", map[string]any{"listing": id, "bid": bid.ID, "amount": bid.Amount()})
	return c.Redirect("/listings/" + id)
}
