package management

import (
	"strings"

	"taller-backend/internal/audit"
	"taller-backend/internal/auth"
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type CreateUsuarioRequest struct {
	PersonaID   uint   `json:"persona_id"`
	RolID       uint   `json:"rol_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	DobleFactor bool   `json:"doble_factor"`
}

type UpdateUsuarioRequest struct {
	RolID       *uint   `json:"rol_id"`
	Estado      *string `json:"estado"`
	DobleFactor *bool   `json:"doble_factor"`
	Password    *string `json:"password"`
}

type UsuarioResponse struct {
	ID          uint                 `json:"id"`
	Username    string               `json:"username"`
	Rol         string               `json:"rol"`
	Estado      models.EstadoUsuario `json:"estado"`
	DobleFactor bool                 `json:"doble_factor"`
	Nombre      string               `json:"nombre"`
	Apellido    string               `json:"apellido"`
	Cedula      string               `json:"cedula"`
	UltimoLogin *string              `json:"ultimo_login"`
}

func toUsuarioResponse(u models.Usuario) UsuarioResponse {
	res := UsuarioResponse{
		ID:          u.ID,
		Username:    u.Username,
		Rol:         u.Rol.Nombre,
		Estado:      u.Estado,
		DobleFactor: u.DobleFactor,
		Nombre:      u.Persona.Nombre,
		Apellido:    u.Persona.Apellido,
		Cedula:      u.Persona.Cedula,
	}
	if u.UltimoLogin != nil {
		s := u.UltimoLogin.Format("2006-01-02 15:04:05")
		res.UltimoLogin = &s
	}
	return res
}

// POST /api/management/users
func CreateUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, adminName, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateUsuarioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))
		if body.Username == "" || body.Password == "" || body.PersonaID == 0 || body.RolID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "persona_id, rol_id, username y contraseña son obligatorios")
		}

		var persona models.Persona
		if err := database.DB.First(&persona, body.PersonaID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La persona indicada no existe")
		}
		var rol models.Rol
		if err := database.DB.First(&rol, body.RolID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El rol indicado no existe")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cifrar la contraseña")
		}

		usuario := models.Usuario{
			PersonaID:    body.PersonaID,
			RolID:        body.RolID,
			Username:     body.Username,
			PasswordHash: string(hash),
			Estado:       models.UsuarioActivo,
			DobleFactor:  body.DobleFactor,
		}

		if err := database.DB.Create(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "No se pudo crear el usuario (¿username duplicado?)")
		}

		usuario.Rol = rol
		usuario.Persona = persona

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      adminID,
			UserName:    adminName,
			EntityType:  "usuario",
			EntityID:    usuario.ID,
			Action:      models.AuditActionCreate,
			Description: "Usuario creado: " + usuario.Username,
			After:       toUsuarioResponse(usuario),
		})

		return c.Status(fiber.StatusCreated).JSON(toUsuarioResponse(usuario))
	}
}

// GET /api/management/users
func ListUsuariosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Rol").Preload("Persona").Model(&models.Usuario{})

		if rol := c.Query("rol"); rol != "" {
			dbq = dbq.Joins("JOIN roles ON roles.id = usuarios.rol_id").Where("roles.nombre = ?", rol)
		}
		if estado := c.Query("estado"); estado != "" {
			dbq = dbq.Where("usuarios.estado = ?", estado)
		}

		var usuarios []models.Usuario
		if err := dbq.Order("usuarios.username asc").Find(&usuarios).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los usuarios")
		}

		res := make([]UsuarioResponse, 0, len(usuarios))
		for _, u := range usuarios {
			res = append(res, toUsuarioResponse(u))
		}
		return c.JSON(res)
	}
}

// GET /api/management/users/:id
func GetUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var usuario models.Usuario
		if err := database.DB.Preload("Rol").Preload("Persona").First(&usuario, "usuarios.id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}
		return c.JSON(toUsuarioResponse(usuario))
	}
}

// PUT /api/management/users/:id
// Cambios de rol, estado (ACTIVO/INACTIVO/BLOQUEADO), 2FA o contraseña.
func UpdateUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, adminName, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var usuario models.Usuario
		if err := database.DB.Preload("Rol").Preload("Persona").First(&usuario, "usuarios.id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}
		before := toUsuarioResponse(usuario)

		var body UpdateUsuarioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.RolID != nil {
			var rol models.Rol
			if err := database.DB.First(&rol, *body.RolID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "El rol indicado no existe")
			}
			usuario.RolID = rol.ID
			usuario.Rol = rol
		}
		if body.Estado != nil {
			estado := models.EstadoUsuario(*body.Estado)
			switch estado {
			case models.UsuarioActivo, models.UsuarioInactivo, models.UsuarioBloqueado:
				usuario.Estado = estado
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Estado inválido")
			}
		}
		if body.DobleFactor != nil {
			usuario.DobleFactor = *body.DobleFactor
		}
		if body.Password != nil {
			if len(*body.Password) < 8 {
				return fiber.NewError(fiber.StatusBadRequest, "La contraseña debe tener al menos 8 caracteres")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cifrar la contraseña")
			}
			usuario.PasswordHash = string(hash)
		}

		if err := database.DB.Save(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el usuario")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      adminID,
			UserName:    adminName,
			EntityType:  "usuario",
			EntityID:    usuario.ID,
			Action:      models.AuditActionUpdate,
			Description: "Usuario actualizado: " + usuario.Username,
			Before:      before,
			After:       toUsuarioResponse(usuario),
		})

		return c.JSON(toUsuarioResponse(usuario))
	}
}
