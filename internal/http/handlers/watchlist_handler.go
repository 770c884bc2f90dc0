package handlers

import (
	"gavelhouse/internal/domain"
	"gavelhouse/internal/log"
	"gavelhouse/internal/services"
	"gavelhouse/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type WatchlistHandler struct {
	Watch *services.WatchlistService
}

func (h *WatchlistHandler) List(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	listings, err := h.Watch.ListingsFor(u.ID)
	if err != nil {
		log.Error(c, "watchlist.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load watchlist"})
	}
	return render(c, "watchlist", fiber.Map{"Listings": listings})
}

func (h *WatchlistHandler) Toggle(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This listing does not exist"})
	}

	watching, err := h.Watch.Toggle(id, u.ID)
	if err != nil {
		log.Error(c, "watchlist.toggle.fail", err, map[string]any{"listing": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not update watchlist"})
	}

	log.Audit(c, "watchlist.toggle", map[string]any{"listing": id, "watching": watching})
	return c.Redirect("/listings/" + id)
}
