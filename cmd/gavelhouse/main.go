package main

import (
	"io"
	stdlog "log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"gavelhouse/internal/config"
	"gavelhouse/internal/http/handlers"
	applog "gavelhouse/internal/log"
	"gavelhouse/internal/repos"
	"gavelhouse/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			stdlog.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		stdlog.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	deps := handlers.NewDeps(db)

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user and watchlist badge to context if logged in (for templates)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				if n, err := deps.WatchlistService.Count(u.ID); err == nil {
					c.Locals("watchCount", n)
				}
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Routes ----------
	// Public pages ("/listings/new" must register before the ":id" route)
	app.Get("/", deps.ListingHandler.Index)
	app.Get("/listings/new", handlers.RequireUser(authSvc), deps.ListingHandler.NewForm)
	app.Get("/listings/:id", deps.ListingHandler.Detail)
	app.Get("/categories", deps.CategoryHandler.Index)
	app.Get("/categories/:name", deps.CategoryHandler.List)

	// Auth (login/register throttled)
	authLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.auth.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	})
	app.Get("/login", authH.LoginForm)
	app.Post("/login", authLimiter, authH.Login)
	app.Get("/register", authH.RegisterForm)
	app.Post("/register", authLimiter, authH.Register)
	app.Post("/logout", authH.Logout)

	// Listing lifecycle
	app.Post("/listings", handlers.RequireUser(authSvc), deps.ListingHandler.Create)
	app.Post("/listings/:id/close", handlers.RequireUser(authSvc), deps.ListingHandler.Close)

	// Bids & comments
	app.Post("/listings/:id/bids", handlers.RequireUser(authSvc), deps.BidHandler.Place)
	app.Post("/listings/:id/comments", handlers.RequireUser(authSvc), deps.CommentHandler.Add)

	// Watchlist
	app.Get("/watchlist", handlers.RequireUser(authSvc), deps.WatchlistHandler.List)
	app.Post("/listings/:id/watch", handlers.RequireUser(authSvc), deps.WatchlistHandler.Toggle)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	stdlog.Fatal(app.Listen(":" + cfg.Port))
}
