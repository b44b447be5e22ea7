package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(token string) *fiber.App {
	app := fiber.New()
	app.Use(DeviceTokenMiddleware(token))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app
}

func TestDeviceTokenMiddleware(t *testing.T) {
	app := newApp("s3cret")

	tests := []struct {
		name   string
		target string
		header map[string]string
		want   int
	}{
		{"missing", "/ping", nil, fiber.StatusUnauthorized},
		{"wrong bearer", "/ping", map[string]string{"Authorization": "Bearer nope"}, fiber.StatusUnauthorized},
		{"bearer", "/ping", map[string]string{"Authorization": "Bearer s3cret"}, fiber.StatusOK},
		{"raw authorization", "/ping", map[string]string{"Authorization": "s3cret"}, fiber.StatusOK},
		{"app token header", "/ping", map[string]string{"X-App-Token": "s3cret"}, fiber.StatusOK},
		{"query param", "/ping?token=s3cret", nil, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestDeviceTokenMiddlewareDisabled(t *testing.T) {
	resp, err := newApp("").Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
