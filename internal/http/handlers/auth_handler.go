package handlers

import (
	"errors"
	"time"

	"gavelhouse/internal/auctionerrors"
	"gavelhouse/internal/log"
	"gavelhouse/internal/services"
	"gavelhouse/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	username := c.FormValue("username")
	pass := c.FormValue("password")
	if _, ok := validate.Username(username); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"username": username, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid username and/or password.", "CSRFToken": c.Cookies("csrf_")})
	}

	_, err := h.Auth.Login(sid, username, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"username": username})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid username and/or password.", "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.login.success", map[string]any{"username": username})
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)
	username, ok := validate.Username(c.FormValue("username"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{"Err": "Username must be 3-30 letters, digits, - or _.", "CSRFToken": c.Cookies("csrf_")})
	}
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{"Err": "Enter a valid email address.", "CSRFToken": c.Cookies("csrf_")})
	}
	pass := c.FormValue("password")
	if !validate.Password(pass) {
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{"Err": "Password must be 8-64 characters.", "CSRFToken": c.Cookies("csrf_")})
	}

	_, err := h.Auth.Register(sid, username, email, pass, c.FormValue("confirmation"))
	switch {
	case errors.Is(err, auctionerrors.ErrValidation):
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{"Err": "Passwords must match.", "CSRFToken": c.Cookies("csrf_")})
	case errors.Is(err, auctionerrors.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).Render("register", fiber.Map{"Err": "Username already taken.", "CSRFToken": c.Cookies("csrf_")})
	case err != nil:
		log.Error(c, "auth.register.fail", err, map[string]any{"username": username})
		return c.Status(fiber.StatusInternalServerError).Render("register", fiber.Map{"Err": "Could not create account. Please try again.", "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.register", map[string]any{"username": username})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
