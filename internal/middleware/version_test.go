package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newVersionTestApp() *fiber.App {
	app := fiber.New()
	app.Use(VersionMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		version, _ := c.Locals("apiVersion").(string)
		return c.SendString(version)
	})
	return app
}

func TestVersionMiddlewareDefault(t *testing.T) {
	app := newVersionTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := resp.Header.Get("X-Api-Version"); got != "1.0.0" {
		t.Errorf("expected default version 1.0.0 echoed, got %q", got)
	}
}

func TestVersionMiddlewareAlias(t *testing.T) {
	app := newVersionTestApp()

	cases := map[string]string{
		"1.0":   "1.0.0",
		"1.0.0": "1.0.0",
		"2.1.3": "2.1.3",
	}
	for requested, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Api-Version", requested)

		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if got := resp.Header.Get("X-Api-Version"); got != want {
			t.Errorf("requested %q: expected %q, got %q", requested, want, got)
		}
	}
}
