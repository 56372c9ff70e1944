package servicio

import (
	"errors"
	"strings"
	"time"

	"taller-backend/internal/auth"
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateRegistroRequest struct {
	VehiculoID          uint    `json:"vehiculo_id"`
	DescripcionProblema string  `json:"descripcion_problema"`
	Prioridad           string  `json:"prioridad"`
	FechaEstimada       *string `json:"fecha_estimada"` // "2026-09-15"
}

type CalificarRequest struct {
	Calificacion int `json:"calificacion"`
}

// POST /api/servicios
// Ingreso de un vehículo al taller: abre un caso PENDIENTE.
func CreateRegistroHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRegistroRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.DescripcionProblema = strings.TrimSpace(body.DescripcionProblema)
		if body.VehiculoID == 0 || body.DescripcionProblema == "" {
			return fiber.NewError(fiber.StatusBadRequest, "vehiculo_id y descripcion_problema son obligatorios")
		}

		var vehiculo models.Vehiculo
		if err := database.DB.First(&vehiculo, body.VehiculoID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El vehículo indicado no existe")
		}

		prioridad := models.PrioridadMedia
		if body.Prioridad != "" {
			p := models.Prioridad(body.Prioridad)
			switch p {
			case models.PrioridadBaja, models.PrioridadMedia, models.PrioridadAlta, models.PrioridadUrgente:
				prioridad = p
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Prioridad inválida")
			}
		}

		registro := models.RegistroServicio{
			VehiculoID:          body.VehiculoID,
			DescripcionProblema: body.DescripcionProblema,
			Estado:              models.ServicioPendiente,
			Prioridad:           prioridad,
			FechaIngreso:        time.Now(),
		}

		if body.FechaEstimada != nil {
			fecha, err := time.Parse("2006-01-02", *body.FechaEstimada)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fecha_estimada inválida, formato esperado AAAA-MM-DD")
			}
			registro.FechaEstimada = &fecha
		}

		if err := database.DB.Create(&registro).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el registro de servicio")
		}

		return c.Status(fiber.StatusCreated).JSON(registro)
	}
}

// GET /api/servicios?estado=&prioridad=&vehiculo_id=
func ListRegistrosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
		rol, _ := c.Locals(auth.CtxUserRolKey).(string)

		dbq := database.DB.Preload("Vehiculo").Model(&models.RegistroServicio{})

		if rol == models.RolCliente {
			dbq = dbq.Joins("JOIN vehiculos ON vehiculos.id = registros_servicio.vehiculo_id").
				Where("vehiculos.usuario_id = ?", userID)
		}
		if estado := c.Query("estado"); estado != "" {
			dbq = dbq.Where("registros_servicio.estado = ?", estado)
		}
		if prioridad := c.Query("prioridad"); prioridad != "" {
			dbq = dbq.Where("registros_servicio.prioridad = ?", prioridad)
		}
		if vid := c.Query("vehiculo_id"); vid != "" {
			dbq = dbq.Where("registros_servicio.vehiculo_id = ?", vid)
		}

		var registros []models.RegistroServicio
		if err := dbq.Order("registros_servicio.fecha_ingreso desc").Find(&registros).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los registros")
		}
		return c.JSON(registros)
	}
}

// GET /api/servicios/:id
func GetRegistroHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var registro models.RegistroServicio
		err := database.DB.
			Preload("Vehiculo").
			Preload("Asignaciones").
			Preload("Asignaciones.TipoMantenimiento").
			First(&registro, "id = ?", c.Params("id")).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Registro de servicio no encontrado")
		}
		return c.JSON(registro)
	}
}

// POST /api/servicios/:id/cancelar
func CancelRegistroHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var registro models.RegistroServicio
		if err := database.DB.First(&registro, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Registro de servicio no encontrado")
		}

		actualizado, err := CancelRecord(database.DB, registro.ID)
		if err != nil {
			if errors.Is(err, ErrRegistroCerrado) {
				return fiber.NewError(fiber.StatusConflict, "El registro ya está cerrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cancelar el registro")
		}
		return c.JSON(actualizado)
	}
}

// POST /api/servicios/:id/calificar
// Solo registros completados; calificación 1..5.
func CalificarRegistroHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CalificarRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Calificacion < 1 || body.Calificacion > 5 {
			return fiber.NewError(fiber.StatusBadRequest, "La calificación debe estar entre 1 y 5")
		}

		var registro models.RegistroServicio
		if err := database.DB.First(&registro, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Registro de servicio no encontrado")
		}
		if registro.Estado != models.ServicioCompletado {
			return fiber.NewError(fiber.StatusConflict, "Solo se puede calificar un servicio completado")
		}

		registro.Calificacion = &body.Calificacion
		if err := database.DB.Save(&registro).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la calificación")
		}
		return c.JSON(registro)
	}
}
