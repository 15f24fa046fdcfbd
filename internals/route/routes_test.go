package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveikita_web/internals/views"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{Views: views.NewEngine()})
	SetupRoutes(app, nil)
	return app
}

func TestRoutesWithoutDatabase(t *testing.T) {
	app := newTestApp()

	cases := []struct {
		name     string
		method   string
		path     string
		body     string
		want     int
		contains string
	}{
		{"health", http.MethodGet, "/health", "", fiber.StatusOK, "Not configured"},
		{"landing", http.MethodGet, "/", "", fiber.StatusOK, "<form"},
		{"thank you", http.MethodGet, "/terimakasih", "", fiber.StatusOK, "Terima kasih"},
		// /api/auth tidak boleh ikut tertahan auth milik /api/a
		{"login not configured", http.MethodPost, "/api/auth/login", `{"username":"admin","password":"x"}`, fiber.StatusServiceUnavailable, ""},
		{"admin requires token", http.MethodGet, "/api/a/contact-leads", "", fiber.StatusUnauthorized, ""},
		{"unknown api", http.MethodGet, "/api/tidak/ada/sama/sekali", "", fiber.StatusNotFound, "NOT_FOUND"},
		{"unknown page", http.MethodGet, "/a/b/c", "", fiber.StatusNotFound, "Halaman tidak ditemukan"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			if tc.body != "" {
				req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			raw, _ := io.ReadAll(resp.Body)

			assert.Equal(t, tc.want, resp.StatusCode)
			if tc.contains != "" {
				assert.Contains(t, string(raw), tc.contains)
			}
		})
	}
}
