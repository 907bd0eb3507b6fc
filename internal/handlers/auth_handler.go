package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/chenglu1/admin-console/internal/config"
	"github.com/chenglu1/admin-console/internal/dto"
	"github.com/chenglu1/admin-console/internal/services"
	"github.com/chenglu1/admin-console/internal/token"
)

// RefreshCookieName is the HTTP-only cookie carrying the refresh token.
const RefreshCookieName = "refresh_token"

// refreshCookiePath scopes the cookie to the auth endpoints only.
const refreshCookiePath = "/api/auth"

type AuthHandler struct {
	authService *services.AuthService
	issuer      *token.Issuer
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, issuer *token.Issuer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, issuer: issuer, cfg: cfg}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: fiber.StatusBadRequest, Message: "invalid request body",
		})
	}

	resp, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: fiber.StatusUnauthorized, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAccountDisabled):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: fiber.StatusUnauthorized, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code: fiber.StatusInternalServerError, Message: "internal server error",
			})
		}
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	presented := ExtractRefreshToken(c)

	resp, err := h.authService.Refresh(presented)
	if err != nil {
		if errors.Is(err, services.ErrMissingToken) || errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: fiber.StatusUnauthorized, Message: "invalid or missing refresh token",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: fiber.StatusInternalServerError, Message: "internal server error",
		})
	}

	return c.JSON(resp)
}

// Logout revokes best-effort and always reports success, so session
// existence cannot be probed.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	presented := ExtractRefreshToken(c)

	var userID *uuid.UUID
	if claims := h.bearerClaims(c); claims != nil {
		userID = &claims.UserID
	}

	h.authService.Logout(presented, userID)
	h.clearRefreshCookie(c)

	return c.JSON(dto.MessageResponse{Message: "logged out"})
}

// ExtractRefreshToken tries cookie, then body field, then header; the first
// non-empty value wins.
func ExtractRefreshToken(c *fiber.Ctx) string {
	extractors := []func(*fiber.Ctx) string{
		func(c *fiber.Ctx) string { return c.Cookies(RefreshCookieName) },
		func(c *fiber.Ctx) string {
			var req dto.RefreshRequest
			if err := c.BodyParser(&req); err != nil {
				return ""
			}
			return req.RefreshToken
		},
		func(c *fiber.Ctx) string { return c.Get("X-Refresh-Token") },
	}

	for _, extract := range extractors {
		if v := extract(c); v != "" {
			return v
		}
	}
	return ""
}

// bearerClaims parses an optional Authorization header. Logout works without
// it, so failures just yield nil.
func (h *AuthHandler) bearerClaims(c *fiber.Ctx) *token.Claims {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	claims, err := h.issuer.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil
	}
	return claims
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    value,
		Path:     refreshCookiePath,
		Expires:  time.Now().Add(h.cfg.JWTRefreshExpiry),
		HTTPOnly: true,
		Secure:   h.cfg.Production(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.Production(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
