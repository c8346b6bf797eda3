package http_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tu-usuario/retail-pos/internal/interfaces/http"
)

// Sin swagger.json el middleware no se registra y el servidor sirve igual:
// arrancar no puede depender de un archivo de documentación.
func TestRegisterSwagger_SinArchivoElServidorSirveIgual(t *testing.T) {
	app := fiber.New()
	ok := apphttp.RegisterSwagger(app, filepath.Join(t.TempDir(), "no-existe.json"))
	assert.False(t, ok, "sin archivo no se registra el middleware")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterSwagger_ConArchivoMontaLaUI(t *testing.T) {
	file := filepath.Join(t.TempDir(), "swagger.json")
	spec := `{"swagger":"2.0","info":{"title":"Retail POS API","version":"1.0"},"paths":{}}`
	require.NoError(t, os.WriteFile(file, []byte(spec), 0o644))

	app := fiber.New()
	require.True(t, apphttp.RegisterSwagger(app, file))

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
