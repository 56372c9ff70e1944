package auth

import (
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CurrentUser devuelve el id y el nombre visible del usuario autenticado,
// para handlers que escriben auditoría.
func CurrentUser(c *fiber.Ctx) (uint, string, error) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "No se pudo obtener el usuario")
	}

	var user models.Usuario
	if err := database.DB.Preload("Persona").First(&user, userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Usuario no encontrado")
	}

	return user.ID, user.Persona.Nombre + " " + user.Persona.Apellido, nil
}
