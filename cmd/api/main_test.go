package main

import (
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/marjoc/farmacia-api/pkg/logger"
)

// Sin docs generados el servidor debe arrancar igual: el middleware de
// swagger lee el archivo al construirse y entra en pánico si no existe.
func TestRegisterSwagger_SpecAusenteNoDerribaElArranque(t *testing.T) {
	app := fiber.New()
	log := logger.New(logger.Config{Env: "development", Level: "error"})

	missing := filepath.Join(t.TempDir(), "docs", "swagger.json")
	assert.NotPanics(t, func() {
		registerSwagger(app, missing, log)
	})
}
