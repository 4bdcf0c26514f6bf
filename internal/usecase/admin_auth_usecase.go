package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/LCtech96/EmilyBoutique/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

// email/passwordをIDプロバイダで確認し、ユーザーIDを返す
type CredentialVerifier interface {
	VerifyPassword(ctx context.Context, email, password string) (string, error)
}

type AdminAuthUsecase struct {
	verifier CredentialVerifier
	admins   map[string]struct{}
	secret   []byte
	ttl      time.Duration
	clock    Clock
}

func NewAdminAuthUsecase(verifier CredentialVerifier, adminEmails []string, secret string, ttl time.Duration, clock Clock) *AdminAuthUsecase {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[normalizeEmail(e)] = struct{}{}
	}
	return &AdminAuthUsecase{
		verifier: verifier,
		admins:   admins,
		secret:   []byte(secret),
		ttl:      ttl,
		clock:    clock,
	}
}

type AdminLoginInput struct {
	Email    string
	Password string
}

type AdminLoginOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// 管理者のaccess tokenを発行。未登録emailとパスワード違いは同じ401
func (u *AdminAuthUsecase) Login(ctx context.Context, in AdminLoginInput) (AdminLoginOutput, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return AdminLoginOutput{}, NewHTTPError(http.StatusBadRequest, "invalid input")
	}

	if _, ok := u.admins[email]; !ok {
		return AdminLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	userID, err := u.verifier.VerifyPassword(ctx, email, in.Password)
	if err != nil || userID == "" {
		return AdminLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := u.clock.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  string(model.RoleAdmin),
		"iat":   now.Unix(),
		"exp":   now.Add(u.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return AdminLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return AdminLoginOutput{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(u.ttl.Seconds()),
	}, nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
