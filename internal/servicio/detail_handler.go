package servicio

import (
	"strings"

	"taller-backend/internal/auth"
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Recursos hijos de una asignación: diagnósticos, síntomas, avances, daños,
// solicitudes de apoyo y mantenimientos adicionales. Todos se eliminan en
// cascada con la asignación.

type DiagnosticoRequest struct {
	Descripcion string `json:"descripcion"`
	Solucion    string `json:"solucion"`
}

type SintomaRequest struct {
	Descripcion string `json:"descripcion"`
}

type AvanceRequest struct {
	Descripcion string `json:"descripcion"`
	Porcentaje  int    `json:"porcentaje"`
}

type DanioRequest struct {
	Descripcion string `json:"descripcion"`
	Reportado   bool   `json:"reportado"`
}

type SolicitudApoyoRequest struct {
	Motivo string `json:"motivo"`
}

type AdicionalRequest struct {
	Descripcion    string  `json:"descripcion"`
	PrecioEstimado float64 `json:"precio_estimado"`
}

func loadAsignacionAbierta(c *fiber.Ctx) (*models.AsignacionTrabajo, error) {
	var asignacion models.AsignacionTrabajo
	if err := database.DB.First(&asignacion, "id = ?", c.Params("id")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Asignación no encontrada")
	}
	if esTerminal(asignacion.Estado) {
		return nil, fiber.NewError(fiber.StatusConflict, "La asignación ya está cerrada")
	}
	return &asignacion, nil
}

// POST /api/asignaciones/:id/diagnosticos
func CreateDiagnosticoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		asignacion, err := loadAsignacionAbierta(c)
		if err != nil {
			return err
		}

		var body DiagnosticoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if strings.TrimSpace(body.Descripcion) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "La descripción es obligatoria")
		}

		diagnostico := models.Diagnostico{
			AsignacionID: asignacion.ID,
			Descripcion:  body.Descripcion,
			Solucion:     body.Solucion,
		}
		if err := database.DB.Create(&diagnostico).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el diagnóstico")
		}
		return c.Status(fiber.StatusCreated).JSON(diagnostico)
	}
}

// POST /api/asignaciones/:id/sintomas
func CreateSintomaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		asignacion, err := loadAsignacionAbierta(c)
		if err != nil {
			return err
		}

		var body SintomaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if strings.TrimSpace(body.Descripcion) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "La descripción es obligatoria")
		}

		sintoma := models.Sintoma{AsignacionID: asignacion.ID, Descripcion: body.Descripcion}
		if err := database.DB.Create(&sintoma).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el síntoma")
		}
		return c.Status(fiber.StatusCreated).JSON(sintoma)
	}
}

// POST /api/asignaciones/:id/avances
func CreateAvanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		asignacion, err := loadAsignacionAbierta(c)
		if err != nil {
			return err
		}

		var body AvanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if strings.TrimSpace(body.Descripcion) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "La descripción es obligatoria")
		}
		if body.Porcentaje < 0 || body.Porcentaje > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "El porcentaje debe estar entre 0 y 100")
		}

		avance := models.Avance{
			AsignacionID: asignacion.ID,
			Descripcion:  body.Descripcion,
			Porcentaje:   body.Porcentaje,
		}
		if err := database.DB.Create(&avance).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el avance")
		}
		return c.Status(fiber.StatusCreated).JSON(avance)
	}
}

// POST /api/asignaciones/:id/danios
func CreateDanioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		asignacion, err := loadAsignacionAbierta(c)
		if err != nil {
			return err
		}

		var body DanioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if strings.TrimSpace(body.Descripcion) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "La descripción es obligatoria")
		}

		danio := models.DanioAdicional{
			AsignacionID: asignacion.ID,
			Descripcion:  body.Descripcion,
			Reportado:    body.Reportado,
		}
		if err := database.DB.Create(&danio).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el daño adicional")
		}
		return c.Status(fiber.StatusCreated).JSON(danio)
	}
}

// POST /api/asignaciones/:id/solicitudes-apoyo
func CreateSolicitudApoyoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		asignacion, err := loadAsignacionAbierta(c)
		if err != nil {
			return err
		}

		var body SolicitudApoyoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if strings.TrimSpace(body.Motivo) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El motivo es obligatorio")
		}

		solicitud := models.SolicitudApoyo{
			AsignacionID: asignacion.ID,
			Motivo:       body.Motivo,
			Estado:       models.ApoyoPendiente,
		}
		if err := database.DB.Create(&solicitud).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la solicitud de apoyo")
		}
		return c.Status(fiber.StatusCreated).JSON(solicitud)
	}
}

// POST /api/solicitudes-apoyo/:id/atender
// La atiende un especialista; queda registrado quién la atendió.
func AtenderSolicitudApoyoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)

		var solicitud models.SolicitudApoyo
		if err := database.DB.First(&solicitud, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Solicitud no encontrada")
		}
		if solicitud.Estado != models.ApoyoPendiente {
			return fiber.NewError(fiber.StatusConflict, "La solicitud ya fue atendida")
		}

		solicitud.Estado = models.ApoyoAtendida
		solicitud.AtendidaPor = &userID
		if err := database.DB.Save(&solicitud).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la solicitud")
		}
		return c.JSON(solicitud)
	}
}

// POST /api/asignaciones/:id/adicionales
func CreateAdicionalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		asignacion, err := loadAsignacionAbierta(c)
		if err != nil {
			return err
		}

		var body AdicionalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if strings.TrimSpace(body.Descripcion) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "La descripción es obligatoria")
		}

		adicional := models.MantenimientoAdicional{
			AsignacionID:   asignacion.ID,
			Descripcion:    body.Descripcion,
			PrecioEstimado: models.Round2(body.PrecioEstimado),
			Estado:         models.AdicionalPropuesto,
		}
		if err := database.DB.Create(&adicional).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el mantenimiento adicional")
		}
		return c.Status(fiber.StatusCreated).JSON(adicional)
	}
}

// POST /api/adicionales/:id/aprobar | /rechazar
func ResolveAdicionalHandler(aprobar bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var adicional models.MantenimientoAdicional
		if err := database.DB.First(&adicional, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mantenimiento adicional no encontrado")
		}
		if adicional.Estado != models.AdicionalPropuesto {
			return fiber.NewError(fiber.StatusConflict, "El mantenimiento adicional ya fue resuelto")
		}

		if aprobar {
			adicional.Estado = models.AdicionalAprobado
		} else {
			adicional.Estado = models.AdicionalRechazado
		}
		if err := database.DB.Save(&adicional).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el mantenimiento adicional")
		}
		return c.JSON(adicional)
	}
}
