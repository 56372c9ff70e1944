package database

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taller-backend/internal/models"
)

// Seed inserta los roles base y tres usuarios de demostración (admin, mecánico,
// cliente) si la base está vacía. Idempotente.
func Seed(db *gorm.DB) error {
	roles := []string{
		models.RolAdministrador,
		models.RolMecanico,
		models.RolEspecialista,
		models.RolCliente,
		models.RolProveedor,
	}
	for _, nombre := range roles {
		var rol models.Rol
		if err := db.Where("nombre = ?", nombre).First(&rol).Error; err != nil {
			if err := db.Create(&models.Rol{Nombre: nombre}).Error; err != nil {
				return err
			}
		}
	}

	var count int64
	if err := db.Model(&models.Usuario{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demos := []struct {
		nombre, apellido, cedula, username, password, rol string
	}{
		{"Carlos", "Ramírez", "1712345678", "cramirez", "admin123", models.RolAdministrador},
		{"Luis", "Mendoza", "1723456789", "lmendoza", "mecanico123", models.RolMecanico},
		{"Ana", "Torres", "1734567890", "atorres", "cliente123", models.RolCliente},
	}

	for _, d := range demos {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		var rol models.Rol
		if err := db.Where("nombre = ?", d.rol).First(&rol).Error; err != nil {
			return err
		}

		persona := models.Persona{
			Nombre:   d.nombre,
			Apellido: d.apellido,
			Cedula:   d.cedula,
			Estado:   models.PersonaActiva,
		}
		if err := db.Create(&persona).Error; err != nil {
			return err
		}

		usuario := models.Usuario{
			PersonaID:    persona.ID,
			RolID:        rol.ID,
			Username:     d.username,
			PasswordHash: string(hash),
			Estado:       models.UsuarioActivo,
		}
		if err := db.Create(&usuario).Error; err != nil {
			return err
		}
	}

	log.Info("datos de demostración insertados")
	return nil
}
