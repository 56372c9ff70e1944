package proveedor

import (
	"strings"

	"taller-backend/internal/audit"
	"taller-backend/internal/auth"
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateProveedorRequest struct {
	UsuarioID   uint   `json:"usuario_id"`
	RUC         string `json:"ruc"`
	RazonSocial string `json:"razon_social"`
}

type UpdateProveedorRequest struct {
	RUC         *string `json:"ruc"`
	RazonSocial *string `json:"razon_social"`
	Estado      *string `json:"estado"`
}

// POST /api/proveedores
// Un usuario mapea a lo sumo a un proveedor; el índice único lo respalda.
func CreateProveedorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, adminName, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateProveedorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.RUC = strings.TrimSpace(body.RUC)
		body.RazonSocial = strings.TrimSpace(body.RazonSocial)
		if body.UsuarioID == 0 || body.RUC == "" || body.RazonSocial == "" {
			return fiber.NewError(fiber.StatusBadRequest, "usuario_id, ruc y razon_social son obligatorios")
		}

		var usuario models.Usuario
		if err := database.DB.First(&usuario, body.UsuarioID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El usuario indicado no existe")
		}

		var count int64
		database.DB.Model(&models.Proveedor{}).Where("usuario_id = ?", body.UsuarioID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "El usuario ya está asociado a un proveedor")
		}

		proveedor := models.Proveedor{
			UsuarioID:   body.UsuarioID,
			RUC:         body.RUC,
			RazonSocial: body.RazonSocial,
			Estado:      "ACTIVO",
		}
		if err := database.DB.Create(&proveedor).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "No se pudo crear el proveedor")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      adminID,
			UserName:    adminName,
			EntityType:  "proveedor",
			EntityID:    proveedor.ID,
			Action:      models.AuditActionCreate,
			Description: "Proveedor creado: " + proveedor.RazonSocial,
			After:       proveedor,
		})

		return c.Status(fiber.StatusCreated).JSON(proveedor)
	}
}

// GET /api/proveedores
func ListProveedoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Proveedor{})
		if estado := c.Query("estado"); estado != "" {
			dbq = dbq.Where("estado = ?", estado)
		}

		var proveedores []models.Proveedor
		if err := dbq.Order("razon_social asc").Find(&proveedores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los proveedores")
		}
		return c.JSON(proveedores)
	}
}

// GET /api/proveedores/:id
func GetProveedorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var proveedor models.Proveedor
		if err := database.DB.First(&proveedor, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proveedor no encontrado")
		}
		return c.JSON(proveedor)
	}
}

// PUT /api/proveedores/:id
func UpdateProveedorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var proveedor models.Proveedor
		if err := database.DB.First(&proveedor, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proveedor no encontrado")
		}

		var body UpdateProveedorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.RUC != nil {
			proveedor.RUC = strings.TrimSpace(*body.RUC)
		}
		if body.RazonSocial != nil {
			proveedor.RazonSocial = strings.TrimSpace(*body.RazonSocial)
		}
		if body.Estado != nil {
			proveedor.Estado = *body.Estado
		}

		if err := database.DB.Save(&proveedor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el proveedor")
		}
		return c.JSON(proveedor)
	}
}

// DELETE /api/proveedores/:id
// Solo proveedores sin repuestos ni pedidos asociados.
func DeleteProveedorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, adminName, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var proveedor models.Proveedor
		if err := database.DB.First(&proveedor, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proveedor no encontrado")
		}

		var repuestos, pedidos int64
		database.DB.Model(&models.Repuesto{}).Where("proveedor_id = ?", proveedor.ID).Count(&repuestos)
		database.DB.Model(&models.Pedido{}).Where("proveedor_id = ?", proveedor.ID).Count(&pedidos)
		if repuestos > 0 || pedidos > 0 {
			return fiber.NewError(fiber.StatusConflict, "El proveedor tiene repuestos o pedidos asociados")
		}

		if err := database.DB.Delete(&proveedor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el proveedor")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      adminID,
			UserName:    adminName,
			EntityType:  "proveedor",
			EntityID:    proveedor.ID,
			Action:      models.AuditActionDelete,
			Description: "Proveedor eliminado: " + proveedor.RazonSocial,
			Before:      proveedor,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
