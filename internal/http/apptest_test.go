package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"gavelhouse/internal/http/handlers"
	"gavelhouse/internal/repos"
	"gavelhouse/internal/services"
)

// newApp wires the full route table against an in-memory store, mirroring
// cmd/gavelhouse (rate limiting and helmet left out of the fixture).
func newApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}
	deps := handlers.NewDeps(db)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
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
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	app.Get("/", deps.ListingHandler.Index)
	app.Get("/listings/new", handlers.RequireUser(authSvc), deps.ListingHandler.NewForm)
	app.Get("/listings/:id", deps.ListingHandler.Detail)
	app.Get("/categories", deps.CategoryHandler.Index)
	app.Get("/categories/:name", deps.CategoryHandler.List)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)
	app.Get("/register", authH.RegisterForm)
	app.Post("/register", authH.Register)
	app.Post("/logout", authH.Logout)
	app.Post("/listings", handlers.RequireUser(authSvc), deps.ListingHandler.Create)
	app.Post("/listings/:id/close", handlers.RequireUser(authSvc), deps.ListingHandler.Close)
	app.Post("/listings/:id/bids", handlers.RequireUser(authSvc), deps.BidHandler.Place)
	app.Post("/listings/:id/comments", handlers.RequireUser(authSvc), deps.CommentHandler.Add)
	app.Get("/watchlist", handlers.RequireUser(authSvc), deps.WatchlistHandler.List)
	app.Post("/listings/:id/watch", handlers.RequireUser(authSvc), deps.WatchlistHandler.Toggle)

	return app, db
}

type session struct {
	sid  string
	csrf string
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// login opens a session for a seeded user and captures sid + csrf cookies.
func login(t *testing.T, app *fiber.App, username, password string) session {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	s := session{csrf: extractCookie(resp, "csrf_")}
	if s.csrf == "" {
		t.Fatal("csrf token missing")
	}

	form := url.Values{"csrf": {s.csrf}, "username": {username}, "password": {password}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: s.csrf})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login: expected redirect, got %d", resp.StatusCode)
	}
	s.sid = extractCookie(resp, "sid")
	if s.sid == "" {
		t.Fatal("sid cookie missing after login")
	}
	return s
}

// post submits a form within the session and returns the response.
func post(t *testing.T, app *fiber.App, s session, path string, form url.Values) *http.Response {
	t.Helper()
	form.Set("csrf", s.csrf)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: s.csrf})
	if s.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: s.sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func get(t *testing.T, app *fiber.App, s session, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if s.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: s.sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
