package database

import (
	"testing"
	"time"

	"taller-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsernameUnico(t *testing.T) {
	db := OpenTest(t)

	u1 := models.Usuario{PersonaID: 1, RolID: 1, Username: "cramirez", PasswordHash: "x"}
	require.NoError(t, db.Create(&u1).Error)

	u2 := models.Usuario{PersonaID: 2, RolID: 1, Username: "cramirez", PasswordHash: "x"}
	assert.Error(t, db.Create(&u2).Error)
}

func TestPlacaUnica(t *testing.T) {
	db := OpenTest(t)

	v1 := models.Vehiculo{UsuarioID: 1, Marca: "Toyota", Modelo: "Hilux", Placa: "PBX-1234"}
	require.NoError(t, db.Create(&v1).Error)

	v2 := models.Vehiculo{UsuarioID: 2, Marca: "Kia", Modelo: "Sportage", Placa: "PBX-1234"}
	assert.Error(t, db.Create(&v2).Error)
}

func TestUnProveedorPorUsuario(t *testing.T) {
	db := OpenTest(t)

	p1 := models.Proveedor{UsuarioID: 5, RUC: "1790012345001", RazonSocial: "Repuestos Andinos S.A."}
	require.NoError(t, db.Create(&p1).Error)

	p2 := models.Proveedor{UsuarioID: 5, RUC: "1790099999001", RazonSocial: "Otra Comercial"}
	assert.Error(t, db.Create(&p2).Error)
}

func TestUnaFacturaPorRegistro(t *testing.T) {
	db := OpenTest(t)

	now := time.Now()
	f1 := models.Factura{RegistroID: 3, NumeroFactura: "FAC-AAAA1111", Subtotal: 100, Total: 112,
		Estado: models.FacturaActiva, EstadoPago: models.PagoPendiente, FechaEmision: now, FechaVencimiento: now}
	require.NoError(t, db.Create(&f1).Error)

	f2 := models.Factura{RegistroID: 3, NumeroFactura: "FAC-BBBB2222", Subtotal: 50, Total: 56,
		Estado: models.FacturaActiva, EstadoPago: models.PagoPendiente, FechaEmision: now, FechaVencimiento: now}
	assert.Error(t, db.Create(&f2).Error)
}

func TestSeedIdempotente(t *testing.T) {
	db := OpenTest(t)

	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var roles int64
	db.Model(&models.Rol{}).Count(&roles)
	assert.EqualValues(t, 5, roles)

	var admin models.Usuario
	require.NoError(t, db.Where("username = ?", "cramirez").First(&admin).Error)
}
