package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/riadov001/Myjantesappv2/internal/domain"
	apperrors "github.com/riadov001/Myjantesappv2/pkg/util"
)

// CookieName carries the session token. The cookie is the only place the
// token lives on the client; handlers and services always receive it as an
// explicit parameter.
const CookieName = "auth_token"

const principalKey = "auth_account"

// SessionResolver maps a bearer token to its owning account.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Account, error)
}

// Middleware validates the session cookie and loads the account.
type Middleware struct {
	sessions SessionResolver
}

// NewMiddleware constructs middleware.
func NewMiddleware(sessions SessionResolver) *Middleware {
	return &Middleware{sessions: sessions}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := c.Cookies(CookieName)
	if token == "" {
		return apperrors.NewUnauthorized("not authenticated")
	}

	account, err := m.sessions.Resolve(c.UserContext(), token)
	if err != nil {
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, account)
	return c.Next()
}

// AccountFromContext retrieves the authenticated account.
func AccountFromContext(c *fiber.Ctx) (*domain.Account, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	account, ok := val.(*domain.Account)
	return account, ok
}
