package handlers

import (
	"net/url"

	"gavelhouse/internal/log"
	"gavelhouse/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Listings *services.ListingService
}

func (h *CategoryHandler) Index(c *fiber.Ctx) error {
	cats, err := h.Listings.Categories()
	if err != nil {
		log.Error(c, "category.index.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load categories"})
	}
	return render(c, "categories", fiber.Map{"Categories": cats})
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	name := c.Params("name")
	if dec, err := url.PathUnescape(name); err == nil {
		name = dec
	}
	listings, err := h.Listings.ByCategory(name)
	if err != nil {
		log.Error(c, "category.list.fail", err, map[string]any{"category": name})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load category"})
	}
	return render(c, "category", fiber.Map{"Category": name, "Listings": listings})
}
