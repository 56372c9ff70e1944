package models

import "time"

type TipoMantenimiento struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Nombre           string    `gorm:"size:100;not null" json:"nombre"`
	Descripcion      string    `gorm:"size:255" json:"descripcion"`
	PrecioBase       float64   `gorm:"not null" json:"precio_base"`
	DuracionEstimada int       `json:"duracion_estimada"` // minutos
	Estado           string    `gorm:"size:20;not null;default:ACTIVO" json:"estado"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (TipoMantenimiento) TableName() string { return "tipos_mantenimiento" }
