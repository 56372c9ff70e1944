package auth

import (
	"errors"
	"strings"
	"time"

	"taller-backend/internal/config"
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterAdminRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Cedula   string `json:"cedula"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Verify2FARequest struct {
	Token  string `json:"token"`
	Codigo string `json:"codigo"`
}

type RecoverRequest struct {
	Username string `json:"username"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// POST /api/auth/registrar-admin
// Bootstrap: solo permite crear el primer administrador del sistema.
func RegisterAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))
		if body.Nombre == "" || body.Apellido == "" || body.Cedula == "" || body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, apellido, cédula, username y contraseña son obligatorios")
		}

		var rolAdmin models.Rol
		if err := database.DB.Where("nombre = ?", models.RolAdministrador).First(&rolAdmin).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rol administrador no encontrado")
		}

		var count int64
		database.DB.Model(&models.Usuario{}).Where("rol_id = ?", rolAdmin.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Ya existe un administrador")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cifrar la contraseña")
		}

		var usuario models.Usuario
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			persona := models.Persona{
				Nombre:   body.Nombre,
				Apellido: body.Apellido,
				Cedula:   body.Cedula,
				Estado:   models.PersonaActiva,
			}
			if err := tx.Create(&persona).Error; err != nil {
				return err
			}

			usuario = models.Usuario{
				PersonaID:    persona.ID,
				RolID:        rolAdmin.ID,
				Username:     body.Username,
				PasswordHash: string(hash),
				Estado:       models.UsuarioActivo,
			}
			return tx.Create(&usuario).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el usuario")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       usuario.ID,
			"username": usuario.Username,
			"rol":      models.RolAdministrador,
		})
	}
}

// POST /api/auth/login
// Si el usuario tiene 2FA habilitado no se emite JWT todavía: se devuelve un
// token DOBLE_FACTOR que debe verificarse con el código.
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))

		var user models.Usuario
		if err := database.DB.Preload("Rol").Where("username = ?", body.Username).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuario o contraseña incorrectos")
		}

		if user.Estado == models.UsuarioBloqueado {
			writeLoginHistory(c, user.ID, false)
			return fiber.NewError(fiber.StatusForbidden, "El usuario está bloqueado")
		}
		if user.Estado == models.UsuarioInactivo {
			writeLoginHistory(c, user.ID, false)
			return fiber.NewError(fiber.StatusForbidden, "El usuario está inactivo")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			writeLoginHistory(c, user.ID, false)
			return fiber.NewError(fiber.StatusUnauthorized, "Usuario o contraseña incorrectos")
		}

		if user.DobleFactor {
			token, err := IssueToken(user.ID, models.TokenDobleFactor)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el token de verificación")
			}
			// El código viaja por el canal secundario del usuario (correo/SMS);
			// acá solo se devuelve la referencia del token.
			return c.JSON(fiber.Map{
				"requiere_2fa": true,
				"token":        token.Token,
				"expiracion":   token.Expiracion,
			})
		}

		return issueSession(c, cfg, &user)
	}
}

// POST /api/auth/verificar-2fa
func Verify2FAHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Verify2FARequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		token, err := ConsumeToken(body.Token, models.TokenDobleFactor, body.Codigo)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpirado):
				return fiber.NewError(fiber.StatusUnauthorized, "El token de verificación expiró")
			case errors.Is(err, ErrCodigoInvalido):
				return fiber.NewError(fiber.StatusUnauthorized, "Código de verificación incorrecto")
			default:
				return fiber.NewError(fiber.StatusUnauthorized, "Token de verificación inválido")
			}
		}

		var user models.Usuario
		if err := database.DB.Preload("Rol").First(&user, token.UsuarioID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Usuario no encontrado")
		}

		return issueSession(c, cfg, &user)
	}
}

// POST /api/auth/recuperar
func RecoverPasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecoverRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))

		var user models.Usuario
		if err := database.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
			// No revelar si el usuario existe
			return c.JSON(fiber.Map{"mensaje": "Si el usuario existe, se envió un enlace de recuperación"})
		}

		token, err := IssueToken(user.ID, models.TokenRecuperacion)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el token de recuperación")
		}

		// El token se entrega por correo; se devuelve acá porque el sistema no
		// tiene integración de correo.
		return c.JSON(fiber.Map{
			"mensaje":    "Si el usuario existe, se envió un enlace de recuperación",
			"token":      token.Token,
			"expiracion": token.Expiracion,
		})
	}
}

// POST /api/auth/restablecer
func ResetPasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if len(body.Password) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "La contraseña debe tener al menos 8 caracteres")
		}

		token, err := ConsumeToken(body.Token, models.TokenRecuperacion, "")
		if err != nil {
			if errors.Is(err, ErrTokenExpirado) {
				return fiber.NewError(fiber.StatusUnauthorized, "El token de recuperación expiró")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Token de recuperación inválido")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cifrar la contraseña")
		}

		if err := database.DB.Model(&models.Usuario{}).
			Where("id = ?", token.UsuarioID).
			Update("password_hash", string(hash)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la contraseña")
		}

		return c.JSON(fiber.Map{"mensaje": "Contraseña actualizada"})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(CtxUserIDKey).(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Sesión inválida")
		}

		var user models.Usuario
		if err := database.DB.Preload("Rol").Preload("Persona").First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}

		return c.JSON(fiber.Map{
			"id":           user.ID,
			"username":     user.Username,
			"rol":          user.Rol.Nombre,
			"estado":       user.Estado,
			"doble_factor": user.DobleFactor,
			"ultimo_login": user.UltimoLogin,
			"persona": fiber.Map{
				"nombre":   user.Persona.Nombre,
				"apellido": user.Persona.Apellido,
				"cedula":   user.Persona.Cedula,
			},
		})
	}
}

// GET /api/auth/historial-logins
// Un usuario ve su propio historial; el administrador puede filtrar por usuario.
func ListLoginHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(CtxUserIDKey).(uint)
		rol, _ := c.Locals(CtxUserRolKey).(string)

		dbq := database.DB.Model(&models.HistorialLogin{})
		if rol == models.RolAdministrador {
			if uidStr := c.Query("usuario_id"); uidStr != "" {
				dbq = dbq.Where("usuario_id = ?", uidStr)
			}
		} else {
			dbq = dbq.Where("usuario_id = ?", userID)
		}

		var historial []models.HistorialLogin
		if err := dbq.Order("fecha_login desc").Limit(100).Find(&historial).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar el historial")
		}

		return c.JSON(historial)
	}
}

func issueSession(c *fiber.Ctx, cfg *config.Config, user *models.Usuario) error {
	token, err := GenerateToken(cfg.JWTSecret, user, user.Rol.Nombre)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el token")
	}

	now := time.Now()
	database.DB.Model(user).Update("ultimo_login", now)
	writeLoginHistory(c, user.ID, true)

	return c.JSON(fiber.Map{
		"token": token,
		"usuario": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"rol":      user.Rol.Nombre,
		},
	})
}

func writeLoginHistory(c *fiber.Ctx, usuarioID uint, exitoso bool) {
	h := models.HistorialLogin{
		UsuarioID:  usuarioID,
		FechaLogin: time.Now(),
		IP:         c.IP(),
		UserAgent:  string(c.Request().Header.UserAgent()),
		Exitoso:    exitoso,
	}
	database.DB.Create(&h)
}
