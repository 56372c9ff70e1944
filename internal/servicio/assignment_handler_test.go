package servicio

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"taller-backend/internal/auth"
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// monta la ruta igual que cmd/server/main.go, con un admin autenticado
func newAsignacionApp() *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, uint(1))
		c.Locals(auth.CtxUserRolKey, models.RolAdministrador)
		return c.Next()
	})
	app.Post("/api/servicios/:id/asignaciones", CreateAsignacionHandler())
	return app
}

func seedEmpleadoMecanico(t *testing.T, db *gorm.DB) *models.Usuario {
	t.Helper()

	rol := models.Rol{Nombre: models.RolMecanico}
	require.NoError(t, db.Create(&rol).Error)

	empleado := models.Usuario{PersonaID: 1, RolID: rol.ID, Username: "lmendoza", PasswordHash: "x"}
	require.NoError(t, db.Create(&empleado).Error)
	return &empleado
}

func TestCreateAsignacionViaRuta(t *testing.T) {
	db := database.OpenTest(t)
	app := newAsignacionApp()

	registro := seedRegistro(t, db)
	empleado := seedEmpleadoMecanico(t, db)

	tipo := models.TipoMantenimiento{Nombre: "Cambio de aceite", PrecioBase: 35.00}
	require.NoError(t, db.Create(&tipo).Error)

	body := `{"tipo_mantenimiento_id":` + itoa(tipo.ID) + `,"empleado_id":` + itoa(empleado.ID) + `}`
	req := httptest.NewRequest("POST", "/api/servicios/"+itoa(registro.ID)+"/asignaciones", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var creada models.AsignacionTrabajo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&creada))
	assert.Equal(t, registro.ID, creada.RegistroID)
	assert.Equal(t, empleado.ID, creada.EmpleadoID)
	assert.EqualValues(t, 1, creada.AdminID)
	assert.Equal(t, models.AsignacionAsignada, creada.Estado)
	assert.Equal(t, 35.00, creada.Precio) // precio base del tipo por defecto

	var count int64
	db.Model(&models.AsignacionTrabajo{}).Where("registro_id = ?", registro.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateAsignacionRegistroInexistente(t *testing.T) {
	db := database.OpenTest(t)
	app := newAsignacionApp()

	empleado := seedEmpleadoMecanico(t, db)
	tipo := models.TipoMantenimiento{Nombre: "Alineación", PrecioBase: 20.00}
	require.NoError(t, db.Create(&tipo).Error)

	body := `{"tipo_mantenimiento_id":` + itoa(tipo.ID) + `,"empleado_id":` + itoa(empleado.ID) + `}`
	req := httptest.NewRequest("POST", "/api/servicios/999/asignaciones", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateAsignacionRegistroCerrado(t *testing.T) {
	db := database.OpenTest(t)
	app := newAsignacionApp()

	registro := seedRegistro(t, db)
	require.NoError(t, db.Model(registro).Update("estado", models.ServicioCancelado).Error)

	empleado := seedEmpleadoMecanico(t, db)
	tipo := models.TipoMantenimiento{Nombre: "Balanceo", PrecioBase: 15.00}
	require.NoError(t, db.Create(&tipo).Error)

	body := `{"tipo_mantenimiento_id":` + itoa(tipo.ID) + `,"empleado_id":` + itoa(empleado.ID) + `}`
	req := httptest.NewRequest("POST", "/api/servicios/"+itoa(registro.ID)+"/asignaciones", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
