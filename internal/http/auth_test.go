package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"gavelhouse/internal/repos"
)

// Seeded passwords must be stored hashed, never plaintext.
func TestPasswordsSeededAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatalf("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestLoginSuccessAndFailure(t *testing.T) {
	app, _ := newApp(t)

	respLogin, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := extractCookie(respLogin, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	// bad password -> 401
	formBad := url.Values{"csrf": {csrfTok}, "username": {"alice"}, "password": {"wrongpass!"}}
	reqBad := httptest.NewRequest("POST", "/login", strings.NewReader(formBad.Encode()))
	reqBad.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	reqBad.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	respBad, err := app.Test(reqBad)
	if err != nil {
		t.Fatal(err)
	}
	if respBad.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", respBad.StatusCode)
	}

	// good password -> redirect to index
	formGood := url.Values{"csrf": {csrfTok}, "username": {"alice"}, "password": {"Passw0rd!"}}
	reqGood := httptest.NewRequest("POST", "/login", strings.NewReader(formGood.Encode()))
	reqGood.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	reqGood.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	respGood, err := app.Test(reqGood)
	if err != nil {
		t.Fatal(err)
	}
	if respGood.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on success, got %d", respGood.StatusCode)
	}
}

func TestRegisterFlow(t *testing.T) {
	app, db := newApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/register", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := extractCookie(resp, "csrf_")
	s := session{csrf: csrfTok}

	// mismatched confirmation -> 400
	resp = post(t, app, s, "/register", url.Values{
		"username": {"carol"}, "email": {"carol@gavelhouse.test"},
		"password": {"S3cretPass!"}, "confirmation": {"different"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for mismatched passwords, got %d", resp.StatusCode)
	}

	// taken username -> 409
	resp = post(t, app, s, "/register", url.Values{
		"username": {"alice"}, "email": {"dup@gavelhouse.test"},
		"password": {"S3cretPass!"}, "confirmation": {"S3cretPass!"},
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for taken username, got %d", resp.StatusCode)
	}

	// valid registration -> redirect, user persisted and logged in
	resp = post(t, app, s, "/register", url.Values{
		"username": {"carol"}, "email": {"carol@gavelhouse.test"},
		"password": {"S3cretPass!"}, "confirmation": {"S3cretPass!"},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on register, got %d", resp.StatusCode)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users WHERE username='carol'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected carol persisted once, got %d", n)
	}
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	app, _ := newApp(t)

	for _, path := range []string{"/watchlist", "/listings/new"} {
		resp := get(t, app, session{}, path)
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("%s: expected redirect for anonymous user, got %d", path, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}
