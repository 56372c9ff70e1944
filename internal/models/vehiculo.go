package models

import "time"

type EstadoVehiculo string

const (
	VehiculoActivo     EstadoVehiculo = "ACTIVO"
	VehiculoEnTaller   EstadoVehiculo = "EN_TALLER"
	VehiculoDadoDeBaja EstadoVehiculo = "DADO_DE_BAJA"
)

type Vehiculo struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UsuarioID   uint           `gorm:"index;not null" json:"usuario_id"` // dueño (cliente)
	Usuario     Usuario        `json:"-"`
	Marca       string         `gorm:"size:50;not null" json:"marca"`
	Modelo      string         `gorm:"size:50;not null" json:"modelo"`
	Placa       string         `gorm:"size:20;uniqueIndex;not null" json:"placa"`
	Anio        int            `json:"anio"`
	Color       string         `gorm:"size:30" json:"color"`
	VIN         string         `gorm:"size:30" json:"vin"`
	Kilometraje int            `json:"kilometraje"`
	Estado      EstadoVehiculo `gorm:"size:20;not null;default:ACTIVO" json:"estado"`
	CreatedAt   time.Time      `json:"created_at"`
	// FechaModificacion se refresca en cada update del vehículo.
	FechaModificacion time.Time `gorm:"autoUpdateTime" json:"fecha_modificacion"`
}

func (Vehiculo) TableName() string { return "vehiculos" }
