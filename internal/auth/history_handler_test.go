package auth

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newHistorialApp(userID uint, rol string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(CtxUserIDKey, userID)
		c.Locals(CtxUserRolKey, rol)
		return c.Next()
	})
	app.Get("/api/auth/historial-logins", ListLoginHistoryHandler())
	return app
}

func seedHistorial(t *testing.T, db *gorm.DB, usuarioID uint) {
	t.Helper()
	fila := models.HistorialLogin{UsuarioID: usuarioID, FechaLogin: time.Now(), IP: "10.0.0.1", Exitoso: true}
	require.NoError(t, db.Create(&fila).Error)
}

func TestHistorialLoginsSeLimitaAlPropioUsuario(t *testing.T) {
	db := database.OpenTest(t)
	seedHistorial(t, db, 1)
	seedHistorial(t, db, 2)
	seedHistorial(t, db, 2)

	app := newHistorialApp(2, models.RolMecanico)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/auth/historial-logins", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var historial []models.HistorialLogin
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&historial))
	require.Len(t, historial, 2)
	for _, h := range historial {
		assert.EqualValues(t, 2, h.UsuarioID)
	}
}

func TestHistorialLoginsAdminFiltraPorUsuario(t *testing.T) {
	db := database.OpenTest(t)
	seedHistorial(t, db, 1)
	seedHistorial(t, db, 2)

	app := newHistorialApp(1, models.RolAdministrador)

	// sin filtro el administrador ve todo
	resp, err := app.Test(httptest.NewRequest("GET", "/api/auth/historial-logins", nil))
	require.NoError(t, err)
	var historial []models.HistorialLogin
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&historial))
	assert.Len(t, historial, 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/auth/historial-logins?usuario_id=2", nil))
	require.NoError(t, err)
	historial = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&historial))
	require.Len(t, historial, 1)
	assert.EqualValues(t, 2, historial[0].UsuarioID)
}
