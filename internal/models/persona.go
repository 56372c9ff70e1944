package models

import "time"

type EstadoPersona string

const (
	PersonaActiva   EstadoPersona = "ACTIVO"
	PersonaInactiva EstadoPersona = "INACTIVO"
)

type Persona struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Nombre          string        `gorm:"size:100;not null" json:"nombre"`
	Apellido        string        `gorm:"size:100;not null" json:"apellido"`
	Cedula          string        `gorm:"size:20;uniqueIndex;not null" json:"cedula"`
	FechaNacimiento *time.Time    `json:"fecha_nacimiento"`
	Direccion       string        `gorm:"size:255" json:"direccion"`
	Telefono        string        `gorm:"size:20" json:"telefono"`
	Estado          EstadoPersona `gorm:"size:20;not null;default:ACTIVO" json:"estado"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (Persona) TableName() string { return "personas" }
