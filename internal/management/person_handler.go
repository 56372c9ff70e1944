package management

import (
	"strings"
	"time"

	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreatePersonaRequest struct {
	Nombre          string  `json:"nombre"`
	Apellido        string  `json:"apellido"`
	Cedula          string  `json:"cedula"`
	FechaNacimiento *string `json:"fecha_nacimiento"` // "2000-01-31"
	Direccion       string  `json:"direccion"`
	Telefono        string  `json:"telefono"`
}

type UpdatePersonaRequest struct {
	Nombre    *string `json:"nombre"`
	Apellido  *string `json:"apellido"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
	Estado    *string `json:"estado"`
}

// POST /api/management/persons
func CreatePersonaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePersonaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		body.Apellido = strings.TrimSpace(body.Apellido)
		body.Cedula = strings.TrimSpace(body.Cedula)
		if body.Nombre == "" || body.Apellido == "" || body.Cedula == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, apellido y cédula son obligatorios")
		}

		persona := models.Persona{
			Nombre:    body.Nombre,
			Apellido:  body.Apellido,
			Cedula:    body.Cedula,
			Direccion: body.Direccion,
			Telefono:  body.Telefono,
			Estado:    models.PersonaActiva,
		}

		if body.FechaNacimiento != nil {
			fecha, err := time.Parse("2006-01-02", *body.FechaNacimiento)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fecha_nacimiento inválida, formato esperado AAAA-MM-DD")
			}
			persona.FechaNacimiento = &fecha
		}

		if err := database.DB.Create(&persona).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "No se pudo crear la persona (¿cédula duplicada?)")
		}

		return c.Status(fiber.StatusCreated).JSON(persona)
	}
}

// GET /api/management/persons
func ListPersonasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Persona{})
		if q := c.Query("cedula"); q != "" {
			dbq = dbq.Where("cedula = ?", q)
		}

		var personas []models.Persona
		if err := dbq.Order("apellido asc, nombre asc").Find(&personas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las personas")
		}
		return c.JSON(personas)
	}
}

// GET /api/management/persons/:id
func GetPersonaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var persona models.Persona
		if err := database.DB.First(&persona, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Persona no encontrada")
		}
		return c.JSON(persona)
	}
}

// PUT /api/management/persons/:id
func UpdatePersonaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var persona models.Persona
		if err := database.DB.First(&persona, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Persona no encontrada")
		}

		var body UpdatePersonaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Nombre != nil {
			persona.Nombre = strings.TrimSpace(*body.Nombre)
		}
		if body.Apellido != nil {
			persona.Apellido = strings.TrimSpace(*body.Apellido)
		}
		if body.Direccion != nil {
			persona.Direccion = *body.Direccion
		}
		if body.Telefono != nil {
			persona.Telefono = *body.Telefono
		}
		if body.Estado != nil {
			estado := models.EstadoPersona(*body.Estado)
			if estado != models.PersonaActiva && estado != models.PersonaInactiva {
				return fiber.NewError(fiber.StatusBadRequest, "Estado inválido")
			}
			persona.Estado = estado
		}

		if err := database.DB.Save(&persona).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la persona")
		}
		return c.JSON(persona)
	}
}
