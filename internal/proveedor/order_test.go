package proveedor

import (
	"testing"
	"time"

	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCatalogo(t *testing.T, db *gorm.DB, precio float64) (*models.Proveedor, *models.CatalogoProveedor) {
	t.Helper()

	prov := models.Proveedor{UsuarioID: 1, RUC: "1790012345001", RazonSocial: "Repuestos Andinos S.A.", Estado: "ACTIVO"}
	require.NoError(t, db.Create(&prov).Error)

	repuesto := models.Repuesto{ProveedorID: prov.ID, Nombre: "Amortiguador delantero", Codigo: "AMD-300"}
	require.NoError(t, db.Create(&repuesto).Error)

	entrada := models.CatalogoProveedor{
		ProveedorID:        prov.ID,
		RepuestoID:         repuesto.ID,
		Precio:             precio,
		CantidadDisponible: 50,
		TiempoEntrega:      5,
	}
	require.NoError(t, db.Create(&entrada).Error)
	return &prov, &entrada
}

func TestCreateOrderCopiaPrecioDelCatalogo(t *testing.T) {
	db := database.OpenTest(t)
	prov, entrada := seedCatalogo(t, db, 45.50)

	pedido, err := CreateOrder(db, prov.ID, []LineaPedido{{CatalogoID: entrada.ID, Cantidad: 3}})
	require.NoError(t, err)

	assert.Contains(t, pedido.NumeroPedido, "PED-")
	assert.Equal(t, models.PedidoPendiente, pedido.Estado)
	assert.Equal(t, 136.50, pedido.Total)

	var detalle models.DetallePedido
	require.NoError(t, db.Where("pedido_id = ?", pedido.ID).First(&detalle).Error)
	assert.Equal(t, 45.50, detalle.PrecioUnitario)
	assert.Equal(t, 136.50, detalle.Subtotal)

	// subir el precio del catálogo no altera el detalle ya emitido
	require.NoError(t, db.Model(entrada).Update("precio", 60.00).Error)
	require.NoError(t, db.Where("pedido_id = ?", pedido.ID).First(&detalle).Error)
	assert.Equal(t, 45.50, detalle.PrecioUnitario)
}

func TestCreateOrderSinLineas(t *testing.T) {
	db := database.OpenTest(t)
	prov, _ := seedCatalogo(t, db, 10.00)

	_, err := CreateOrder(db, prov.ID, nil)
	assert.ErrorIs(t, err, ErrPedidoVacio)
}

func TestAdvanceOrderStatusSoloContiguo(t *testing.T) {
	db := database.OpenTest(t)
	prov, entrada := seedCatalogo(t, db, 10.00)

	pedido, err := CreateOrder(db, prov.ID, []LineaPedido{{CatalogoID: entrada.ID, Cantidad: 1}})
	require.NoError(t, err)

	// saltar PENDIENTE -> EN_TRANSITO no está permitido
	_, err = AdvanceOrderStatus(db, pedido.ID, models.PedidoEnTransito)
	assert.ErrorIs(t, err, ErrEstadoNoContiguo)

	actual, err := AdvanceOrderStatus(db, pedido.ID, models.PedidoConfirmado)
	require.NoError(t, err)
	assert.Equal(t, models.PedidoConfirmado, actual.Estado)

	actual, err = AdvanceOrderStatus(db, pedido.ID, models.PedidoEnTransito)
	require.NoError(t, err)
	assert.Equal(t, models.PedidoEnTransito, actual.Estado)
}

func TestCancelarPedidoDespachado(t *testing.T) {
	db := database.OpenTest(t)
	prov, entrada := seedCatalogo(t, db, 10.00)

	pedido, err := CreateOrder(db, prov.ID, []LineaPedido{{CatalogoID: entrada.ID, Cantidad: 1}})
	require.NoError(t, err)

	// antes del despacho sí se puede cancelar
	_, err = AdvanceOrderStatus(db, pedido.ID, models.PedidoConfirmado)
	require.NoError(t, err)
	_, err = AdvanceOrderStatus(db, pedido.ID, models.PedidoEnTransito)
	require.NoError(t, err)

	_, err = AdvanceOrderStatus(db, pedido.ID, models.PedidoCancelado)
	assert.ErrorIs(t, err, ErrCancelarEnvio)
}

func TestPedidoCerradoNoAvanza(t *testing.T) {
	db := database.OpenTest(t)
	prov, entrada := seedCatalogo(t, db, 10.00)

	pedido, err := CreateOrder(db, prov.ID, []LineaPedido{{CatalogoID: entrada.ID, Cantidad: 1}})
	require.NoError(t, err)

	_, err = AdvanceOrderStatus(db, pedido.ID, models.PedidoCancelado)
	require.NoError(t, err)

	_, err = AdvanceOrderStatus(db, pedido.ID, models.PedidoConfirmado)
	assert.ErrorIs(t, err, ErrPedidoCerrado)
}

func TestRegisterDeliveryCierraPedido(t *testing.T) {
	db := database.OpenTest(t)
	prov, entrada := seedCatalogo(t, db, 10.00)

	pedido, err := CreateOrder(db, prov.ID, []LineaPedido{{CatalogoID: entrada.ID, Cantidad: 2}})
	require.NoError(t, err)

	_, err = AdvanceOrderStatus(db, pedido.ID, models.PedidoConfirmado)
	require.NoError(t, err)
	_, err = AdvanceOrderStatus(db, pedido.ID, models.PedidoEnTransito)
	require.NoError(t, err)

	entrega, err := RegisterDelivery(db, pedido.ID, time.Now(), "Recibido completo")
	require.NoError(t, err)
	assert.True(t, entrega.Recibido)

	var actual models.Pedido
	require.NoError(t, db.First(&actual, pedido.ID).Error)
	assert.Equal(t, models.PedidoEntregado, actual.Estado)
}
