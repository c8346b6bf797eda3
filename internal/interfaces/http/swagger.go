package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// RegisterSwagger monta la UI de Swagger en /docs si el archivo de
// especificación existe. swagger.New entra en pánico con un archivo
// inexistente, así que sin archivo el middleware no se registra y el servidor
// arranca igual, solo sin documentación.
func RegisterSwagger(app *fiber.App, filePath string) bool {
	if _, err := os.Stat(filePath); err != nil {
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    "Retail POS API",
	}))
	return true
}
