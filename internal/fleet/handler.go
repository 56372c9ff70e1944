package fleet

import (
	"strings"

	"taller-backend/internal/auth"
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateVehiculoRequest struct {
	UsuarioID   uint   `json:"usuario_id"` // dueño; opcional para clientes (usa su propia sesión)
	Marca       string `json:"marca"`
	Modelo      string `json:"modelo"`
	Placa       string `json:"placa"`
	Anio        int    `json:"anio"`
	Color       string `json:"color"`
	VIN         string `json:"vin"`
	Kilometraje int    `json:"kilometraje"`
}

type UpdateVehiculoRequest struct {
	Color       *string `json:"color"`
	Kilometraje *int    `json:"kilometraje"`
	Estado      *string `json:"estado"`
}

// POST /api/vehiculos
func CreateVehiculoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
		rol, _ := c.Locals(auth.CtxUserRolKey).(string)

		var body CreateVehiculoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Placa = strings.ToUpper(strings.TrimSpace(body.Placa))
		if body.Marca == "" || body.Modelo == "" || body.Placa == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Marca, modelo y placa son obligatorios")
		}

		duenioID := body.UsuarioID
		if rol == models.RolCliente || duenioID == 0 {
			duenioID = userID
		}

		var duenio models.Usuario
		if err := database.DB.First(&duenio, duenioID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El dueño indicado no existe")
		}

		vehiculo := models.Vehiculo{
			UsuarioID:   duenioID,
			Marca:       body.Marca,
			Modelo:      body.Modelo,
			Placa:       body.Placa,
			Anio:        body.Anio,
			Color:       body.Color,
			VIN:         body.VIN,
			Kilometraje: body.Kilometraje,
			Estado:      models.VehiculoActivo,
		}

		if err := database.DB.Create(&vehiculo).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "No se pudo crear el vehículo (¿placa duplicada?)")
		}

		return c.Status(fiber.StatusCreated).JSON(vehiculo)
	}
}

// GET /api/vehiculos
// Los clientes ven solo sus vehículos; el personal del taller ve todos.
func ListVehiculosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
		rol, _ := c.Locals(auth.CtxUserRolKey).(string)

		dbq := database.DB.Model(&models.Vehiculo{})
		if rol == models.RolCliente {
			dbq = dbq.Where("usuario_id = ?", userID)
		} else if q := c.Query("usuario_id"); q != "" {
			dbq = dbq.Where("usuario_id = ?", q)
		}
		if placa := c.Query("placa"); placa != "" {
			dbq = dbq.Where("placa = ?", strings.ToUpper(strings.TrimSpace(placa)))
		}

		var vehiculos []models.Vehiculo
		if err := dbq.Order("placa asc").Find(&vehiculos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los vehículos")
		}
		return c.JSON(vehiculos)
	}
}

// GET /api/vehiculos/:id
func GetVehiculoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
		rol, _ := c.Locals(auth.CtxUserRolKey).(string)

		var vehiculo models.Vehiculo
		if err := database.DB.First(&vehiculo, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vehículo no encontrado")
		}

		if rol == models.RolCliente && vehiculo.UsuarioID != userID {
			return fiber.NewError(fiber.StatusForbidden, "El vehículo no pertenece al usuario")
		}
		return c.JSON(vehiculo)
	}
}

// PUT /api/vehiculos/:id
// Actualiza color, kilometraje o estado; fecha_modificacion se refresca sola.
func UpdateVehiculoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vehiculo models.Vehiculo
		if err := database.DB.First(&vehiculo, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vehículo no encontrado")
		}

		var body UpdateVehiculoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Color != nil {
			vehiculo.Color = *body.Color
		}
		if body.Kilometraje != nil {
			if *body.Kilometraje < vehiculo.Kilometraje {
				return fiber.NewError(fiber.StatusBadRequest, "El kilometraje no puede disminuir")
			}
			vehiculo.Kilometraje = *body.Kilometraje
		}
		if body.Estado != nil {
			estado := models.EstadoVehiculo(*body.Estado)
			switch estado {
			case models.VehiculoActivo, models.VehiculoEnTaller, models.VehiculoDadoDeBaja:
				vehiculo.Estado = estado
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Estado inválido")
			}
		}

		if err := database.DB.Save(&vehiculo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el vehículo")
		}
		return c.JSON(vehiculo)
	}
}
