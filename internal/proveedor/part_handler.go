package proveedor

import (
	"strings"

	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateRepuestoRequest struct {
	Nombre          string `json:"nombre"`
	Descripcion     string `json:"descripcion"`
	Codigo          string `json:"codigo"`
	MarcaCompatible string `json:"marca_compatible"`
}

type UpdateRepuestoRequest struct {
	Nombre          *string `json:"nombre"`
	Descripcion     *string `json:"descripcion"`
	MarcaCompatible *string `json:"marca_compatible"`
	Estado          *string `json:"estado"`
}

// POST /api/proveedores/:id/repuestos
func CreateRepuestoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var proveedor models.Proveedor
		if err := database.DB.First(&proveedor, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proveedor no encontrado")
		}

		var body CreateRepuestoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		body.Codigo = strings.TrimSpace(body.Codigo)
		if body.Nombre == "" || body.Codigo == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre y código son obligatorios")
		}

		repuesto := models.Repuesto{
			ProveedorID:     proveedor.ID,
			Nombre:          body.Nombre,
			Descripcion:     body.Descripcion,
			Codigo:          body.Codigo,
			MarcaCompatible: body.MarcaCompatible,
			Estado:          models.RepuestoActivo,
		}
		if err := database.DB.Create(&repuesto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el repuesto")
		}
		return c.Status(fiber.StatusCreated).JSON(repuesto)
	}
}

// GET /api/proveedores/:id/repuestos
func ListRepuestosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Where("proveedor_id = ?", c.Params("id"))
		if estado := c.Query("estado"); estado != "" {
			dbq = dbq.Where("estado = ?", estado)
		}

		var repuestos []models.Repuesto
		if err := dbq.Order("nombre asc").Find(&repuestos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los repuestos")
		}
		return c.JSON(repuestos)
	}
}

// PUT /api/repuestos/:id
func UpdateRepuestoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var repuesto models.Repuesto
		if err := database.DB.First(&repuesto, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Repuesto no encontrado")
		}

		var body UpdateRepuestoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Nombre != nil {
			repuesto.Nombre = strings.TrimSpace(*body.Nombre)
		}
		if body.Descripcion != nil {
			repuesto.Descripcion = *body.Descripcion
		}
		if body.MarcaCompatible != nil {
			repuesto.MarcaCompatible = *body.MarcaCompatible
		}
		if body.Estado != nil {
			estado := models.EstadoRepuesto(*body.Estado)
			if estado != models.RepuestoActivo && estado != models.RepuestoDescontinuado {
				return fiber.NewError(fiber.StatusBadRequest, "Estado inválido")
			}
			repuesto.Estado = estado
		}

		if err := database.DB.Save(&repuesto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el repuesto")
		}
		return c.JSON(repuesto)
	}
}
