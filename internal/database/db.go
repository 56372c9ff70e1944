package database

import (
	log "github.com/sirupsen/logrus"

	"taller-backend/internal/config"
	"taller-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("no se pudo conectar a la base de datos: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("error en la migración: %v", err)
	}

	log.Info("conexión a la base de datos establecida, migración completa")
}

// Migrate corre AutoMigrate sobre todos los modelos más los ajustes manuales
// que AutoMigrate no cubre. Lo usan también los tests sobre sqlite.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Persona{},
		&models.Rol{},
		&models.Usuario{},
		&models.TokenAutenticacion{},
		&models.HistorialLogin{},
		&models.Vehiculo{},
		&models.TipoMantenimiento{},
		&models.RegistroServicio{},
		&models.AsignacionTrabajo{},
		&models.Diagnostico{},
		&models.Sintoma{},
		&models.Avance{},
		&models.DanioAdicional{},
		&models.SolicitudApoyo{},
		&models.MantenimientoAdicional{},
		&models.Proveedor{},
		&models.Repuesto{},
		&models.CatalogoProveedor{},
		&models.Inventario{},
		&models.SolicitudRepuesto{},
		&models.Pedido{},
		&models.DetallePedido{},
		&models.EntregaPedido{},
		&models.Factura{},
		&models.Pago{},
		&models.AuditLog{},
	)
	if err != nil {
		return err
	}

	// Esquemas viejos traían proveedores.usuario_id sin unicidad; el índice del
	// modelo no se aplica sobre la columna ya existente, así que se fuerza acá.
	if db.Migrator().HasTable(&models.Proveedor{}) {
		if !db.Migrator().HasIndex(&models.Proveedor{}, "idx_proveedores_usuario_id") {
			db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_proveedores_usuario_id ON proveedores(usuario_id)")
		}
	}

	return nil
}
