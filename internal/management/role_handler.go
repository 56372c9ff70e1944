package management

import (
	"strings"

	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RolRequest struct {
	Nombre string `json:"nombre"`
}

// GET /api/management/roles
func ListRolesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var roles []models.Rol
		if err := database.DB.Order("nombre asc").Find(&roles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los roles")
		}
		return c.JSON(roles)
	}
}

// POST /api/management/roles
func CreateRolHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RolRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.ToUpper(strings.TrimSpace(body.Nombre))
		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre del rol es obligatorio")
		}

		rol := models.Rol{Nombre: body.Nombre}
		if err := database.DB.Create(&rol).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "No se pudo crear el rol (¿nombre duplicado?)")
		}
		return c.Status(fiber.StatusCreated).JSON(rol)
	}
}

// DELETE /api/management/roles/:id
// Solo roles sin usuarios asociados.
func DeleteRolHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rol models.Rol
		if err := database.DB.First(&rol, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rol no encontrado")
		}

		var count int64
		database.DB.Model(&models.Usuario{}).Where("rol_id = ?", rol.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "El rol tiene usuarios asociados")
		}

		if err := database.DB.Delete(&rol).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el rol")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
