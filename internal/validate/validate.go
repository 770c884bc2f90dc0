package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reUsername = regexp.MustCompile(`^[A-Za-z0-9_-]{3,30}$`)
	reID       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePhoto    = regexp.MustCompile(`^https?://\S+$`)
)

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUsername.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces a simple length window for login/registration checks.
func Password(s string) bool {
	return len(s) >= 8 && len(s) <= 64
}

// ID validates a resource identifier (listing ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 64
}

func Description(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 600
}

// Category is optional; empty is fine, otherwise a short label.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) <= 12
}

// PhotoURL is optional; when present it must look like an http(s) URL.
func PhotoURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if len(s) > 200 {
		return "", false
	}
	return s, rePhoto.MatchString(s)
}

func Comment(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 128
}
