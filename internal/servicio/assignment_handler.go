package servicio

import (
	"errors"
	"time"

	"taller-backend/internal/auth"
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateAsignacionRequest struct {
	TipoMantenimientoID uint     `json:"tipo_mantenimiento_id"`
	EmpleadoID          uint     `json:"empleado_id"`
	Precio              *float64 `json:"precio"` // si falta se usa el precio base del tipo
}

type CompletarRequest struct {
	FechaFinalizacion *string `json:"fecha_finalizacion"` // "2026-09-15T17:00:00Z"; omitir = ahora
}

// POST /api/servicios/:id/asignaciones
// El administrador autenticado queda como asignador.
func CreateAsignacionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, _ := c.Locals(auth.CtxUserIDKey).(uint)

		var registro models.RegistroServicio
		if err := database.DB.First(&registro, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Registro de servicio no encontrado")
		}
		if registro.Estado == models.ServicioCompletado || registro.Estado == models.ServicioCancelado {
			return fiber.NewError(fiber.StatusConflict, "El registro ya está cerrado")
		}

		var body CreateAsignacionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.TipoMantenimientoID == 0 || body.EmpleadoID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "tipo_mantenimiento_id y empleado_id son obligatorios")
		}

		var tipo models.TipoMantenimiento
		if err := database.DB.First(&tipo, body.TipoMantenimientoID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El tipo de mantenimiento no existe")
		}

		var empleado models.Usuario
		if err := database.DB.Preload("Rol").First(&empleado, body.EmpleadoID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El empleado indicado no existe")
		}
		if empleado.Rol.Nombre != models.RolMecanico && empleado.Rol.Nombre != models.RolEspecialista {
			return fiber.NewError(fiber.StatusBadRequest, "El usuario asignado debe ser mecánico o especialista")
		}

		precio := tipo.PrecioBase
		if body.Precio != nil {
			if *body.Precio < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
			}
			precio = *body.Precio
		}

		asignacion := models.AsignacionTrabajo{
			RegistroID:          registro.ID,
			TipoMantenimientoID: tipo.ID,
			EmpleadoID:          empleado.ID,
			AdminID:             adminID,
			Estado:              models.AsignacionAsignada,
			Precio:              models.Round2(precio),
		}

		if err := database.DB.Create(&asignacion).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la asignación")
		}

		return c.Status(fiber.StatusCreated).JSON(asignacion)
	}
}

// GET /api/asignaciones?empleado_id=&estado=
func ListAsignacionesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
		rol, _ := c.Locals(auth.CtxUserRolKey).(string)

		dbq := database.DB.Preload("TipoMantenimiento").Model(&models.AsignacionTrabajo{})

		// Mecánicos y especialistas ven su propia cola de trabajo.
		if rol == models.RolMecanico || rol == models.RolEspecialista {
			dbq = dbq.Where("empleado_id = ?", userID)
		} else if eid := c.Query("empleado_id"); eid != "" {
			dbq = dbq.Where("empleado_id = ?", eid)
		}
		if estado := c.Query("estado"); estado != "" {
			dbq = dbq.Where("estado = ?", estado)
		}

		var asignaciones []models.AsignacionTrabajo
		if err := dbq.Order("created_at desc").Find(&asignaciones).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las asignaciones")
		}
		return c.JSON(asignaciones)
	}
}

// GET /api/asignaciones/:id
func GetAsignacionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var asignacion models.AsignacionTrabajo
		err := database.DB.
			Preload("TipoMantenimiento").
			Preload("Diagnosticos").
			Preload("Sintomas").
			Preload("Avances").
			Preload("Danios").
			Preload("Solicitudes").
			Preload("Adicionales").
			First(&asignacion, "id = ?", c.Params("id")).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Asignación no encontrada")
		}
		return c.JSON(asignacion)
	}
}

// POST /api/asignaciones/:id/iniciar
func StartAsignacionHandler() fiber.Handler {
	return transitionHandler(func(id uint) (*models.AsignacionTrabajo, error) {
		return StartAssignment(database.DB, id)
	})
}

// POST /api/asignaciones/:id/pausar
func PauseAsignacionHandler() fiber.Handler {
	return transitionHandler(func(id uint) (*models.AsignacionTrabajo, error) {
		return PauseAssignment(database.DB, id)
	})
}

// POST /api/asignaciones/:id/completar
func CompleteAsignacionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body CompletarRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
			}
		}

		var fechaFin time.Time
		if body.FechaFinalizacion != nil {
			fechaFin, err = time.Parse(time.RFC3339, *body.FechaFinalizacion)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fecha_finalizacion inválida, formato esperado RFC3339")
			}
		}

		asignacion, err := CompleteAssignment(database.DB, uint(id), fechaFin)
		if err != nil {
			return transitionError(err)
		}
		return c.JSON(asignacion)
	}
}

// POST /api/asignaciones/:id/cancelar
func CancelAsignacionHandler() fiber.Handler {
	return transitionHandler(func(id uint) (*models.AsignacionTrabajo, error) {
		return CancelAssignment(database.DB, id)
	})
}

func transitionHandler(fn func(id uint) (*models.AsignacionTrabajo, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		asignacion, err := fn(uint(id))
		if err != nil {
			return transitionError(err)
		}
		return c.JSON(asignacion)
	}
}

func transitionError(err error) error {
	switch {
	case errors.Is(err, ErrTransicionInvalida):
		return fiber.NewError(fiber.StatusConflict, "Transición de estado no permitida")
	case errors.Is(err, ErrAsignacionCerrada):
		return fiber.NewError(fiber.StatusConflict, "La asignación ya está cerrada")
	case errors.Is(err, ErrRegistroCerrado):
		return fiber.NewError(fiber.StatusConflict, "El registro ya está cerrado")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Asignación no encontrada")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo aplicar la transición")
	}
}
