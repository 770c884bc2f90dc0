package handlers

import (
	"errors"

	"gavelhouse/internal/auctionerrors"
	"gavelhouse/internal/domain"
	"gavelhouse/internal/log"
	"gavelhouse/internal/services"
	"gavelhouse/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	Comments *services.CommentService
}

func (h *CommentHandler) Add(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This listing does not exist"})
	}

	_, err := h.Comments.Add(id, c.FormValue("comment"))
	switch {
	case errors.Is(err, auctionerrors.ErrValidation):
		log.Security(c, "validation.fail", map[string]any{"field": "comment"})
		return c.Redirect("/listings/"+id+"?err=comment", fiber.StatusSeeOther)
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This listing does not exist"})
	case err != nil:
		log.Error(c, "comment.add.fail", err, map[string]any{"listing": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not post comment"})
	}

	log.Audit(c, "comment.add", map[string]any{"listing": id})
	return c.Redirect("/listings/" + id)
}
