// Package auth resolves the bearer credential for the Scholarship API.
// The credential is read once per operation and checked locally so an
// expired session fails before any network round trip, not after.
package auth

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
	"github.com/bersekolah/beswanadmin/internal/core/ports"
)

// StaticTokenSource hands out one fixed credential, typically from an
// environment variable.
type StaticTokenSource struct {
	token string
	now   func() time.Time
}

var _ ports.TokenSource = (*StaticTokenSource)(nil)

func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: strings.TrimSpace(token), now: time.Now}
}

func (s *StaticTokenSource) Token(context.Context) (string, error) {
	return checkToken(s.token, s.now())
}

// FileTokenSource reads the credential from a file on every call, the way
// the original client re-read browser storage before each request, so a
// re-login lands without restarting the process.
type FileTokenSource struct {
	path string
	now  func() time.Time
}

var _ ports.TokenSource = (*FileTokenSource)(nil)

func NewFileTokenSource(path string) *FileTokenSource {
	return &FileTokenSource{path: path, now: time.Now}
}

func (s *FileTokenSource) Token(context.Context) (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", domain.WrapError(domain.ErrUnauthorized, "read token",
			fmt.Errorf("token tidak ditemukan di %s: %w", s.path, err))
	}
	return checkToken(string(raw), s.now())
}

func checkToken(raw string, now time.Time) (string, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return "", fmt.Errorf("%w: token kosong; silakan login ulang", domain.ErrUnauthorized)
	}
	if err := checkJWTExpiry(token, now); err != nil {
		return "", err
	}
	return token, nil
}

// checkJWTExpiry rejects an expired JWT locally. Opaque (non-JWT) tokens
// pass through untouched; the server remains the authority either way.
func checkJWTExpiry(token string, now time.Time) error {
	if strings.Count(token, ".") != 2 {
		return nil
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// not a parseable JWT after all; let the server decide
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if exp.Before(now) {
		return fmt.Errorf("%w: sesi berakhir pada %s; silakan login ulang",
			domain.ErrUnauthorized, exp.Format(time.RFC3339))
	}
	return nil
}
