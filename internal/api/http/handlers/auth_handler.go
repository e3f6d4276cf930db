package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/riadov001/Myjantesappv2/internal/api/dto"
	"github.com/riadov001/Myjantesappv2/internal/auth"
	"github.com/riadov001/Myjantesappv2/internal/domain"
	"github.com/riadov001/Myjantesappv2/internal/provider"
	"github.com/riadov001/Myjantesappv2/internal/service"
	apperrors "github.com/riadov001/Myjantesappv2/pkg/util"
)

// AuthHandler exposes the authentication endpoints consumed by the PWA proxy.
type AuthHandler struct {
	accounts      *service.AccountService
	sessions      *service.SessionService
	google        provider.Verifier
	facebook      provider.Verifier
	sessionTTL    time.Duration
	secureCookies bool
}

// AuthHandlerConfig bundles handler dependencies.
type AuthHandlerConfig struct {
	Accounts      *service.AccountService
	Sessions      *service.SessionService
	Google        provider.Verifier
	Facebook      provider.Verifier
	SessionTTL    time.Duration
	SecureCookies bool
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		accounts:      cfg.Accounts,
		sessions:      cfg.Sessions,
		google:        cfg.Google,
		facebook:      cfg.Facebook,
		sessionTTL:    cfg.SessionTTL,
		secureCookies: cfg.SecureCookies,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, err := h.accounts.Register(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return apperrors.MapError(err)
	}
	return h.respondWithSession(c, account)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, err := h.accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return apperrors.MapError(err)
	}
	return h.respondWithSession(c, account)
}

// OAuthGoogle handles POST /api/auth/oauth/google.
func (h *AuthHandler) OAuthGoogle(c *fiber.Ctx) error {
	var req dto.GoogleOAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.IDToken == "" {
		return apperrors.NewValidationError("idToken required", nil)
	}
	return h.resolveVerified(c, h.google, req.IDToken)
}

// OAuthFacebook handles POST /api/auth/oauth/facebook.
func (h *AuthHandler) OAuthFacebook(c *fiber.Ctx) error {
	var req dto.FacebookOAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AccessToken == "" {
		return apperrors.NewValidationError("accessToken required", nil)
	}
	return h.resolveVerified(c, h.facebook, req.AccessToken)
}

// OAuthApple handles POST /api/auth/oauth/apple.
func (h *AuthHandler) OAuthApple(c *fiber.Ctx) error {
	var req dto.AppleOAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.User == "" {
		return apperrors.NewValidationError("apple user identifier required", nil)
	}

	claim := provider.AppleClaim{SubjectID: req.User, Email: req.Email}
	if req.FullName != nil {
		claim.GivenName = req.FullName.GivenName
		claim.FamilyName = req.FullName.FamilyName
	}

	identity, err := provider.AppleIdentity(claim)
	if err != nil {
		return apperrors.MapError(err)
	}

	account, err := h.accounts.ResolveExternal(c.UserContext(), domain.ProviderApple, identity)
	if err != nil {
		return apperrors.MapError(err)
	}
	return h.respondWithSession(c, account)
}

// CurrentUser handles GET /api/auth/user. The session middleware runs first.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	account, ok := auth.AccountFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	return c.JSON(dto.NewAccountView(account))
}

// Logout handles POST /api/auth/logout. Revocation is idempotent; a missing
// or already-revoked cookie still logs out cleanly.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(auth.CookieName); token != "" {
		if err := h.sessions.Revoke(c.UserContext(), token); err != nil {
			return apperrors.MapError(err)
		}
	}
	h.clearSessionCookie(c)
	return c.JSON(dto.MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) resolveVerified(c *fiber.Ctx, verifier provider.Verifier, proof string) error {
	identity, err := verifier.Verify(c.UserContext(), proof)
	if err != nil {
		return apperrors.MapError(err)
	}

	account, err := h.accounts.ResolveExternal(c.UserContext(), verifier.Provider(), identity)
	if err != nil {
		return apperrors.MapError(err)
	}
	return h.respondWithSession(c, account)
}

func (h *AuthHandler) respondWithSession(c *fiber.Ctx, account *domain.Account) error {
	session, err := h.sessions.Create(c.UserContext(), account.ID)
	if err != nil {
		return apperrors.MapError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    session.Token,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(dto.NewAccountView(account))
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
