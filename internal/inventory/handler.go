package inventory

import (
	"errors"

	"taller-backend/internal/auth"
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateInventarioRequest struct {
	RepuestoID     uint    `json:"repuesto_id"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
}

type AjusteInventarioRequest struct {
	Cantidad       *int     `json:"cantidad"` // valor absoluto nuevo
	PrecioUnitario *float64 `json:"precio_unitario"`
}

type CreateSolicitudRequest struct {
	AsignacionID uint `json:"asignacion_id"`
	InventarioID uint `json:"inventario_id"`
	Cantidad     int  `json:"cantidad"`
}

// POST /api/inventario
// Da de alta la línea de inventario de un repuesto (1:1 con el repuesto).
func CreateInventarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInventarioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.RepuestoID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "repuesto_id es obligatorio")
		}
		if body.Cantidad < 0 || body.PrecioUnitario < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cantidad y precio no pueden ser negativos")
		}

		var repuesto models.Repuesto
		if err := database.DB.First(&repuesto, body.RepuestoID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El repuesto indicado no existe")
		}

		linea := models.Inventario{
			RepuestoID:     body.RepuestoID,
			Cantidad:       body.Cantidad,
			PrecioUnitario: models.Round2(body.PrecioUnitario),
		}
		if err := database.DB.Create(&linea).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "El repuesto ya tiene línea de inventario")
		}
		return c.Status(fiber.StatusCreated).JSON(linea)
	}
}

// GET /api/inventario?bajo_stock=10
func ListInventarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Repuesto").Model(&models.Inventario{})
		if umbral := c.QueryInt("bajo_stock", -1); umbral >= 0 {
			dbq = dbq.Where("cantidad <= ?", umbral)
		}

		var lineas []models.Inventario
		if err := dbq.Order("id asc").Find(&lineas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar el inventario")
		}
		return c.JSON(lineas)
	}
}

// PUT /api/inventario/:id
// Ajuste administrativo de stock o precio; fecha_actualizacion se refresca sola.
func UpdateInventarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var linea models.Inventario
		if err := database.DB.First(&linea, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Línea de inventario no encontrada")
		}

		var body AjusteInventarioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Cantidad != nil {
			if *body.Cantidad < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "La cantidad no puede ser negativa")
			}
			linea.Cantidad = *body.Cantidad
		}
		if body.PrecioUnitario != nil {
			if *body.PrecioUnitario < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
			}
			linea.PrecioUnitario = models.Round2(*body.PrecioUnitario)
		}

		if err := database.DB.Save(&linea).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el inventario")
		}
		return c.JSON(linea)
	}
}

// POST /api/inventario/solicitudes
// Un mecánico pide piezas para su asignación; nace PENDIENTE.
func CreateSolicitudHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSolicitudRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.AsignacionID == 0 || body.InventarioID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "asignacion_id e inventario_id son obligatorios")
		}
		if body.Cantidad <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "La cantidad debe ser mayor a cero")
		}

		var asignacion models.AsignacionTrabajo
		if err := database.DB.First(&asignacion, body.AsignacionID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La asignación indicada no existe")
		}
		if asignacion.Estado == models.AsignacionCompletada || asignacion.Estado == models.AsignacionCancelada {
			return fiber.NewError(fiber.StatusConflict, "La asignación ya está cerrada")
		}

		var linea models.Inventario
		if err := database.DB.First(&linea, body.InventarioID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La línea de inventario indicada no existe")
		}

		solicitud := models.SolicitudRepuesto{
			AsignacionID: body.AsignacionID,
			InventarioID: body.InventarioID,
			Cantidad:     body.Cantidad,
			Estado:       models.SolicitudPendiente,
		}
		if err := database.DB.Create(&solicitud).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la solicitud")
		}
		return c.Status(fiber.StatusCreated).JSON(solicitud)
	}
}

// GET /api/inventario/solicitudes?estado=&asignacion_id=
func ListSolicitudesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Inventario").Preload("Inventario.Repuesto").Model(&models.SolicitudRepuesto{})
		if estado := c.Query("estado"); estado != "" {
			dbq = dbq.Where("estado = ?", estado)
		}
		if aid := c.Query("asignacion_id"); aid != "" {
			dbq = dbq.Where("asignacion_id = ?", aid)
		}

		var solicitudes []models.SolicitudRepuesto
		if err := dbq.Order("created_at desc").Find(&solicitudes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las solicitudes")
		}
		return c.JSON(solicitudes)
	}
}

// POST /api/inventario/solicitudes/:id/aprobar
func AprobarSolicitudHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		aprobadorID, _ := c.Locals(auth.CtxUserIDKey).(uint)

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		solicitud, err := ApproveUsageRequest(database.DB, uint(id), aprobadorID)
		if err != nil {
			return solicitudError(err)
		}
		return c.JSON(solicitud)
	}
}

// POST /api/inventario/solicitudes/:id/rechazar
func RechazarSolicitudHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		aprobadorID, _ := c.Locals(auth.CtxUserIDKey).(uint)

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		solicitud, err := RejectUsageRequest(database.DB, uint(id), aprobadorID)
		if err != nil {
			return solicitudError(err)
		}
		return c.JSON(solicitud)
	}
}

// POST /api/inventario/solicitudes/:id/usar
func UsarSolicitudHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		solicitud, err := MarkUsed(database.DB, uint(id))
		if err != nil {
			return solicitudError(err)
		}
		return c.JSON(solicitud)
	}
}

func solicitudError(err error) error {
	switch {
	case errors.Is(err, ErrSolicitudResuelta):
		return fiber.NewError(fiber.StatusConflict, "La solicitud ya fue resuelta")
	case errors.Is(err, ErrStockInsuficiente):
		return fiber.NewError(fiber.StatusConflict, "Stock insuficiente para aprobar la solicitud")
	case errors.Is(err, ErrSolicitudNoAprobada):
		return fiber.NewError(fiber.StatusConflict, "La solicitud no está aprobada")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Solicitud no encontrada")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo procesar la solicitud")
	}
}
