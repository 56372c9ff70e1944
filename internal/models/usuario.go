package models

import "time"

type EstadoUsuario string

const (
	UsuarioActivo    EstadoUsuario = "ACTIVO"
	UsuarioInactivo  EstadoUsuario = "INACTIVO"
	UsuarioBloqueado EstadoUsuario = "BLOQUEADO"
)

// Roles sembrados por database.Seed. El control de acceso compara por nombre.
const (
	RolAdministrador = "ADMINISTRADOR"
	RolMecanico      = "MECANICO"
	RolEspecialista  = "ESPECIALISTA"
	RolCliente       = "CLIENTE"
	RolProveedor     = "PROVEEDOR"
)

type Rol struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:50;uniqueIndex;not null" json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Rol) TableName() string { return "roles" }

type Usuario struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	PersonaID    uint          `gorm:"index;not null" json:"persona_id"`
	Persona      Persona       `json:"persona,omitempty"`
	RolID        uint          `gorm:"index;not null" json:"rol_id"`
	Rol          Rol           `json:"rol,omitempty"`
	Username     string        `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string        `gorm:"size:255;not null" json:"-"`
	Estado       EstadoUsuario `gorm:"size:20;not null;default:ACTIVO" json:"estado"`
	DobleFactor  bool          `gorm:"not null;default:false" json:"doble_factor"`
	UltimoLogin  *time.Time    `json:"ultimo_login"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (Usuario) TableName() string { return "usuarios" }
