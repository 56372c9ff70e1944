package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTest abre una base sqlite en memoria con el esquema migrado y la deja
// como DB global para los handlers. Cada test recibe una base limpia.
func OpenTest(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("no se pudo abrir sqlite en memoria: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("error migrando esquema de prueba: %v", err)
	}

	prev := DB
	DB = db
	t.Cleanup(func() { DB = prev })

	return db
}
