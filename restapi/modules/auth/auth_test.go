package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/model"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	hash, err := HashPassword("kalkan-2025")
	require.NoError(t, err)
	return NewAuthenticator(config.Auth{
		JWTSecret:            "test-secret",
		OperatorUser:         "operator",
		OperatorPasswordHash: hash,
		TokenTTL:             time.Hour,
	})
}

func newApp(a *Authenticator) *fiber.App {
	app := fiber.New()
	app.Post("/login", Login(a))
	app.Post("/engine/activate", RequireOperator(a), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"by": c.Locals("username")})
	})
	app.Get("/me", OptionalAuth(a), Me())
	return app
}

func login(t *testing.T, app *fiber.App, user, pass string) (int, model.LoginResponse) {
	t.Helper()
	body, _ := json.Marshal(model.LoginRequest{Username: user, Password: pass})
	req := httptest.NewRequest(fiber.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out model.LoginResponse
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestLoginAndRequireOperator(t *testing.T) {
	a := newAuthenticator(t)
	app := newApp(a)

	status, _ := login(t, app, "operator", "wrong")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, out := login(t, app, "operator", "kalkan-2025")
	require.Equal(t, fiber.StatusOK, status)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, model.RoleOperator, out.Operator.Role)

	req := httptest.NewRequest(fiber.MethodPost, "/engine/activate", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodPost, "/engine/activate", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+out.Token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+out.Token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireOperator_DisabledPassesThrough(t *testing.T) {
	app := newApp(NewAuthenticator(config.Auth{}))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/engine/activate", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	status, _ := login(t, app, "operator", "x")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestValidateJWT_Expired(t *testing.T) {
	a := newAuthenticator(t)
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return issued }

	token, _, err := a.GenerateJWT("operator", model.RoleOperator)
	require.NoError(t, err)

	_, err = a.ValidateJWT(token)
	require.NoError(t, err)

	a.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = a.ValidateJWT(token)
	assert.Error(t, err)

	other := NewAuthenticator(config.Auth{JWTSecret: "different"})
	other.now = func() time.Time { return issued }
	_, err = other.ValidateJWT(token)
	assert.Error(t, err)
}
