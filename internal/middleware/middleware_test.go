package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func sign(t *testing.T, key []byte, method jwt.SigningMethod, claims jwt.MapClaims) string {
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", Auth(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": UserID(c), "role": UserRole(c)})
	})
	app.Get("/admin", Auth(secret), Role("admin"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) int {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuth(t *testing.T) {
	app := newApp()
	valid := jwt.MapClaims{"user_id": 7, "role": "employee", "exp": time.Now().Add(time.Hour).Unix()}

	assert.Equal(t, fiber.StatusOK, get(t, app, "/me", sign(t, secret, jwt.SigningMethodHS256, valid)))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", "garbage"))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", sign(t, []byte("other"), jwt.SigningMethodHS256, valid)))

	expired := jwt.MapClaims{"user_id": 7, "role": "employee", "exp": time.Now().Add(-time.Hour).Unix()}
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", sign(t, secret, jwt.SigningMethodHS256, expired)))

	noUser := jwt.MapClaims{"role": "admin", "exp": time.Now().Add(time.Hour).Unix()}
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", sign(t, secret, jwt.SigningMethodHS256, noUser)))
}

func TestRole(t *testing.T) {
	app := newApp()
	exp := time.Now().Add(time.Hour).Unix()

	employee := sign(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 7, "role": "employee", "exp": exp})
	admin := sign(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1, "role": "admin", "exp": exp})

	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin", employee))
	assert.Equal(t, fiber.StatusOK, get(t, app, "/admin", admin))
}
