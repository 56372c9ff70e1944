package proveedor

import (
	"errors"
	"strings"
	"time"

	"taller-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPedidoVacio      = errors.New("el pedido no tiene líneas")
	ErrPedidoCerrado    = errors.New("el pedido ya está cerrado")
	ErrEstadoNoContiguo = errors.New("el estado destino no es contiguo al actual")
	ErrCancelarEnvio    = errors.New("no se puede cancelar un pedido ya despachado")
)

type LineaPedido struct {
	CatalogoID uint
	Cantidad   int
}

func nuevoNumeroPedido() string {
	return "PED-" + strings.ToUpper(uuid.NewString()[:8])
}

// CreateOrder arma el pedido en una transacción, copiando el precio vigente de
// cada entrada de catálogo al detalle para conservar el precio histórico.
func CreateOrder(db *gorm.DB, proveedorID uint, lineas []LineaPedido) (*models.Pedido, error) {
	if len(lineas) == 0 {
		return nil, ErrPedidoVacio
	}

	var pedido models.Pedido
	err := db.Transaction(func(tx *gorm.DB) error {
		var proveedor models.Proveedor
		if err := tx.First(&proveedor, proveedorID).Error; err != nil {
			return err
		}

		pedido = models.Pedido{
			ProveedorID:  proveedorID,
			NumeroPedido: nuevoNumeroPedido(),
			Estado:       models.PedidoPendiente,
			FechaPedido:  time.Now(),
		}
		if err := tx.Create(&pedido).Error; err != nil {
			return err
		}

		total := 0.0
		for _, l := range lineas {
			if l.Cantidad <= 0 {
				return errors.New("cantidad inválida en línea de pedido")
			}

			var entrada models.CatalogoProveedor
			if err := tx.First(&entrada, l.CatalogoID).Error; err != nil {
				return err
			}
			if entrada.ProveedorID != proveedorID {
				return errors.New("la entrada de catálogo no pertenece al proveedor")
			}

			subtotal := models.Round2(entrada.Precio * float64(l.Cantidad))
			detalle := models.DetallePedido{
				PedidoID:       pedido.ID,
				CatalogoID:     entrada.ID,
				Cantidad:       l.Cantidad,
				PrecioUnitario: entrada.Precio,
				Subtotal:       subtotal,
			}
			if err := tx.Create(&detalle).Error; err != nil {
				return err
			}
			total += subtotal
		}

		pedido.Total = models.Round2(total)
		return tx.Model(&pedido).Update("total", pedido.Total).Error
	})
	if err != nil {
		return nil, err
	}
	return &pedido, nil
}

// AdvanceOrderStatus avanza el pedido un paso:
// PENDIENTE -> CONFIRMADO -> EN_TRANSITO -> ENTREGADO. CANCELADO solo aplica
// antes del despacho.
func AdvanceOrderStatus(db *gorm.DB, pedidoID uint, destino models.EstadoPedido) (*models.Pedido, error) {
	var pedido models.Pedido
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pedido, pedidoID).Error; err != nil {
			return err
		}
		if pedido.Estado == models.PedidoEntregado || pedido.Estado == models.PedidoCancelado {
			return ErrPedidoCerrado
		}

		if destino == models.PedidoCancelado {
			if pedido.Estado == models.PedidoEnTransito {
				return ErrCancelarEnvio
			}
			pedido.Estado = models.PedidoCancelado
			return tx.Save(&pedido).Error
		}

		siguiente := map[models.EstadoPedido]models.EstadoPedido{
			models.PedidoPendiente:  models.PedidoConfirmado,
			models.PedidoConfirmado: models.PedidoEnTransito,
			models.PedidoEnTransito: models.PedidoEntregado,
		}
		if siguiente[pedido.Estado] != destino {
			return ErrEstadoNoContiguo
		}

		pedido.Estado = destino
		return tx.Save(&pedido).Error
	})
	if err != nil {
		return nil, err
	}
	return &pedido, nil
}

// RegisterDelivery registra la entrega y deja el pedido en ENTREGADO dentro de
// la misma transacción.
func RegisterDelivery(db *gorm.DB, pedidoID uint, fecha time.Time, observacion string) (*models.EntregaPedido, error) {
	if fecha.IsZero() {
		fecha = time.Now()
	}

	var entrega models.EntregaPedido
	err := db.Transaction(func(tx *gorm.DB) error {
		var pedido models.Pedido
		if err := tx.First(&pedido, pedidoID).Error; err != nil {
			return err
		}
		if pedido.Estado == models.PedidoCancelado {
			return ErrPedidoCerrado
		}

		entrega = models.EntregaPedido{
			PedidoID:     pedido.ID,
			FechaEntrega: fecha,
			Recibido:     true,
			Observacion:  observacion,
		}
		if err := tx.Create(&entrega).Error; err != nil {
			return err
		}

		if pedido.Estado != models.PedidoEntregado {
			pedido.Estado = models.PedidoEntregado
			return tx.Save(&pedido).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entrega, nil
}
