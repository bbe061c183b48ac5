package middleware

import (
	"crypto/subtle"
	"time"

	"server/config"
	"server/internal/database"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"golang.org/x/crypto/bcrypt"
)

type Middleware struct {
	config  config.Config
	storage fiber.Storage
	log     logger.Logger
}

func New(db database.DB, config config.Config) Middleware {
	log := logger.New("middleware")

	// Shared counters when valkey is configured; fiber's in-memory storage
	// otherwise (fine for a single instance).
	var storage fiber.Storage
	if db.Cache != nil {
		storage = database.NewLimiterStorage(db.Cache, "ratelimit")
		log.Info("Rate limiter using shared cache storage")
	}

	if config.AdminUser == "" || (config.AdminPass == "" && config.AdminPassHash == "") {
		log.Warn("Admin credentials not configured, admin routes will reject all requests")
	}

	return Middleware{
		config:  config,
		storage: storage,
		log:     log,
	}
}

// FormLimiter caps submissions per client address over the rolling window.
// It runs before validation, so a limited request has no side effects.
func (m Middleware) FormLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          m.config.RateLimitMax,
		Expiration:   time.Duration(m.config.RateLimitWindow) * time.Second,
		Storage:      m.storage,
		KeyGenerator: limiterKey("form"),
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).
				JSON(fiber.Map{"error": "Too many submissions. Please try again shortly."})
		},
	})
}

// StrictLimiter counts only non-successful attempts, so a burst of failed
// or malformed submissions trips it while legitimate traffic does not.
func (m Middleware) StrictLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:                    m.config.RateLimitStrictMax,
		Expiration:             time.Duration(m.config.RateLimitWindow) * time.Second,
		Storage:                m.storage,
		KeyGenerator:           limiterKey("strict"),
		SkipSuccessfulRequests: true,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).
				JSON(fiber.Map{"error": "Too many submission attempts. Please try again later."})
		},
	})
}

// limiterKey scopes each limiter's counters. The default key is the bare
// client IP; both limiters can share one external storage, so the key must
// carry which limiter owns the window.
func limiterKey(scope string) func(*fiber.Ctx) string {
	return func(c *fiber.Ctx) string {
		return scope + ":" + c.IP()
	}
}

// AdminAuth gates the admin surface behind HTTP Basic credentials from
// config. The password check is constant-time; a bcrypt hash is used when
// configured.
func (m Middleware) AdminAuth() fiber.Handler {
	return basicauth.New(basicauth.Config{
		Realm:      "Admin Area",
		Authorizer: m.authorize,
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="Admin Area"`)
			return c.Status(fiber.StatusUnauthorized).SendString("Access denied")
		},
	})
}

func (m Middleware) authorize(user, pass string) bool {
	if m.config.AdminUser == "" {
		return false
	}

	userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(m.config.AdminUser)) == 1

	var passMatch bool
	switch {
	case m.config.AdminPassHash != "":
		passMatch = bcrypt.CompareHashAndPassword(
			[]byte(m.config.AdminPassHash), []byte(pass)) == nil
	case m.config.AdminPass != "":
		passMatch = subtle.ConstantTimeCompare([]byte(pass), []byte(m.config.AdminPass)) == 1
	}

	return userMatch && passMatch
}
