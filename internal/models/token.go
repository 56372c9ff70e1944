package models

import "time"

type TipoToken string

const (
	TokenDobleFactor  TipoToken = "DOBLE_FACTOR"
	TokenRecuperacion TipoToken = "RECUPERACION"
)

type EstadoToken string

const (
	TokenActivo   EstadoToken = "ACTIVO"
	TokenUsado    EstadoToken = "USADO"
	TokenExpirado EstadoToken = "EXPIRADO"
)

// TokenAutenticacion respalda los flujos de 2FA y recuperación de contraseña.
// Un token expirado o ya usado nunca valida.
type TokenAutenticacion struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UsuarioID  uint        `gorm:"index;not null" json:"usuario_id"`
	Usuario    Usuario     `json:"-"`
	Token      string      `gorm:"size:64;uniqueIndex;not null" json:"token"`
	Tipo       TipoToken   `gorm:"size:20;not null" json:"tipo"`
	Codigo     string      `gorm:"size:10" json:"-"` // código de verificación de 6 dígitos
	Expiracion time.Time   `gorm:"not null" json:"expiracion"`
	Estado     EstadoToken `gorm:"size:20;not null;default:ACTIVO" json:"estado"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (TokenAutenticacion) TableName() string { return "tokens_autenticacion" }

type HistorialLogin struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UsuarioID  uint      `gorm:"index;not null" json:"usuario_id"`
	Usuario    Usuario   `json:"-"`
	FechaLogin time.Time `gorm:"index;not null" json:"fecha_login"`
	IP         string    `gorm:"size:45" json:"ip"`
	UserAgent  string    `gorm:"size:255" json:"user_agent"`
	Exitoso    bool      `gorm:"not null" json:"exitoso"`
}

func (HistorialLogin) TableName() string { return "historial_logins" }
