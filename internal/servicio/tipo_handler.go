package servicio

import (
	"strings"

	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TipoMantenimientoRequest struct {
	Nombre           string   `json:"nombre"`
	Descripcion      string   `json:"descripcion"`
	PrecioBase       *float64 `json:"precio_base"`
	DuracionEstimada *int     `json:"duracion_estimada"`
	Estado           *string  `json:"estado"`
}

// GET /api/tipos-mantenimiento
func ListTiposHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tipos []models.TipoMantenimiento
		if err := database.DB.Order("nombre asc").Find(&tipos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los tipos de mantenimiento")
		}
		return c.JSON(tipos)
	}
}

// POST /api/tipos-mantenimiento
func CreateTipoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TipoMantenimientoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" || body.PrecioBase == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre y precio_base son obligatorios")
		}
		if *body.PrecioBase < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El precio base no puede ser negativo")
		}

		tipo := models.TipoMantenimiento{
			Nombre:      body.Nombre,
			Descripcion: body.Descripcion,
			PrecioBase:  models.Round2(*body.PrecioBase),
			Estado:      "ACTIVO",
		}
		if body.DuracionEstimada != nil {
			tipo.DuracionEstimada = *body.DuracionEstimada
		}

		if err := database.DB.Create(&tipo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el tipo de mantenimiento")
		}
		return c.Status(fiber.StatusCreated).JSON(tipo)
	}
}

// PUT /api/tipos-mantenimiento/:id
func UpdateTipoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tipo models.TipoMantenimiento
		if err := database.DB.First(&tipo, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tipo de mantenimiento no encontrado")
		}

		var body TipoMantenimientoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if nombre := strings.TrimSpace(body.Nombre); nombre != "" {
			tipo.Nombre = nombre
		}
		if body.Descripcion != "" {
			tipo.Descripcion = body.Descripcion
		}
		if body.PrecioBase != nil {
			if *body.PrecioBase < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El precio base no puede ser negativo")
			}
			tipo.PrecioBase = models.Round2(*body.PrecioBase)
		}
		if body.DuracionEstimada != nil {
			tipo.DuracionEstimada = *body.DuracionEstimada
		}
		if body.Estado != nil {
			tipo.Estado = *body.Estado
		}

		if err := database.DB.Save(&tipo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el tipo de mantenimiento")
		}
		return c.JSON(tipo)
	}
}
