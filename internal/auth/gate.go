package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/timeclock-service/internal/domain"
	"github.com/spec-kit/timeclock-service/internal/repository"
	"github.com/spec-kit/timeclock-service/internal/session"
)

const userKey = "auth_user"

// Status tags the outcome of a gate check. Unauthenticated and Unauthorized
// are deliberately distinct internally even though both redirect to the
// entry point externally.
type Status int

const (
	StatusOk Status = iota
	StatusUnauthenticated
	StatusUnauthorized
)

// Result is the tagged outcome of resolving a request's session.
type Result struct {
	Status Status
	User   *domain.User
}

// Gate resolves session cookies to users and enforces role requirements.
type Gate struct {
	sessions   *session.Manager
	users      repository.UserRepository
	cookieName string
	logger     *zap.Logger
}

// NewGate constructs the gate.
func NewGate(sessions *session.Manager, users repository.UserRepository, cookieName string, logger *zap.Logger) *Gate {
	return &Gate{sessions: sessions, users: users, cookieName: cookieName, logger: logger}
}

// Check resolves the request's session cookie to a user. It never writes to
// the response; callers decide how each status maps to one.
func (g *Gate) Check(c *fiber.Ctx) Result {
	cookie := c.Cookies(g.cookieName)
	if cookie == "" {
		return Result{Status: StatusUnauthenticated}
	}

	userID, err := g.sessions.Resolve(c.Context(), cookie)
	if err != nil {
		if err != session.ErrNotFound {
			g.logger.Warn("session resolve failed", zap.Error(err))
		}
		return Result{Status: StatusUnauthenticated}
	}

	user, err := g.users.GetByID(c.Context(), userID)
	if err != nil {
		g.logger.Warn("session user load failed", zap.String("user_id", userID), zap.Error(err))
		return Result{Status: StatusUnauthenticated}
	}

	return Result{Status: StatusOk, User: user}
}

// RequireSession admits any signed-in user; everything else redirects to the
// entry point.
func (g *Gate) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := g.Check(c)
		if result.Status != StatusOk {
			g.logger.Debug("session required", zap.String("path", c.Path()))
			return c.Redirect("/", fiber.StatusFound)
		}
		c.Locals(userKey, result.User)
		return c.Next()
	}
}

// RequireAdmin admits only admins. A signed-in non-admin gets the same
// redirect as an anonymous caller; only the log line differs.
func (g *Gate) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := g.Check(c)
		if result.Status == StatusOk && !result.User.IsAdmin {
			result = Result{Status: StatusUnauthorized, User: result.User}
		}
		switch result.Status {
		case StatusOk:
			c.Locals(userKey, result.User)
			return c.Next()
		case StatusUnauthorized:
			g.logger.Info("admin required",
				zap.String("path", c.Path()),
				zap.String("user_id", result.User.ID))
			return c.Redirect("/", fiber.StatusFound)
		default:
			g.logger.Debug("session required", zap.String("path", c.Path()))
			return c.Redirect("/", fiber.StatusFound)
		}
	}
}

// SignIn establishes a session for the user and sets the cookie.
func (g *Gate) SignIn(c *fiber.Ctx, user *domain.User) error {
	value, expiresAt, err := g.sessions.Begin(c.Context(), user.ID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     g.cookieName,
		Value:    value,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// SignOut destroys the session binding and expires the cookie. Always
// succeeds from the caller's point of view.
func (g *Gate) SignOut(c *fiber.Ctx) {
	if cookie := c.Cookies(g.cookieName); cookie != "" {
		if err := g.sessions.End(c.Context(), cookie); err != nil {
			g.logger.Warn("session destroy failed", zap.Error(err))
		}
	}
	c.ClearCookie(g.cookieName)
}

// CurrentUser retrieves the user loaded by a require middleware.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(userKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
