package proveedor

import (
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CatalogoRequest struct {
	RepuestoID         uint     `json:"repuesto_id"`
	Precio             *float64 `json:"precio"`
	CantidadDisponible *int     `json:"cantidad_disponible"`
	TiempoEntrega      *int     `json:"tiempo_entrega"`
	Estado             *string  `json:"estado"`
}

// POST /api/proveedores/:id/catalogo
func CreateCatalogoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var proveedor models.Proveedor
		if err := database.DB.First(&proveedor, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proveedor no encontrado")
		}

		var body CatalogoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.RepuestoID == 0 || body.Precio == nil {
			return fiber.NewError(fiber.StatusBadRequest, "repuesto_id y precio son obligatorios")
		}
		if *body.Precio < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
		}

		var repuesto models.Repuesto
		if err := database.DB.First(&repuesto, body.RepuestoID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El repuesto indicado no existe")
		}

		entrada := models.CatalogoProveedor{
			ProveedorID: proveedor.ID,
			RepuestoID:  repuesto.ID,
			Precio:      models.Round2(*body.Precio),
			Estado:      "ACTIVO",
		}
		if body.CantidadDisponible != nil {
			entrada.CantidadDisponible = *body.CantidadDisponible
		}
		if body.TiempoEntrega != nil {
			entrada.TiempoEntrega = *body.TiempoEntrega
		}

		if err := database.DB.Create(&entrada).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la entrada de catálogo")
		}
		return c.Status(fiber.StatusCreated).JSON(entrada)
	}
}

// GET /api/proveedores/:id/catalogo
func ListCatalogoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entradas []models.CatalogoProveedor
		err := database.DB.Preload("Repuesto").
			Where("proveedor_id = ?", c.Params("id")).
			Order("id asc").
			Find(&entradas).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar el catálogo")
		}
		return c.JSON(entradas)
	}
}

// PUT /api/catalogo/:id
func UpdateCatalogoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entrada models.CatalogoProveedor
		if err := database.DB.First(&entrada, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Entrada de catálogo no encontrada")
		}

		var body CatalogoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Precio != nil {
			if *body.Precio < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
			}
			entrada.Precio = models.Round2(*body.Precio)
		}
		if body.CantidadDisponible != nil {
			entrada.CantidadDisponible = *body.CantidadDisponible
		}
		if body.TiempoEntrega != nil {
			entrada.TiempoEntrega = *body.TiempoEntrega
		}
		if body.Estado != nil {
			entrada.Estado = *body.Estado
		}

		if err := database.DB.Save(&entrada).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la entrada de catálogo")
		}
		return c.JSON(entrada)
	}
}
