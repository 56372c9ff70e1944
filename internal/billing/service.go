package billing

import (
	"errors"
	"strings"
	"time"

	"taller-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRegistroNoCompletado = errors.New("el registro de servicio no está completado")
	ErrRegistroYaFacturado  = errors.New("el registro de servicio ya tiene factura")
	ErrSinAsignaciones      = errors.New("el registro no tiene asignaciones completadas")
	ErrFacturaAnulada       = errors.New("la factura está anulada")
	ErrPagoExcedeSaldo      = errors.New("el pago excede el saldo de la factura")
	ErrTasaInvalida         = errors.New("tasa de impuesto o descuento inválida")
)

func nuevoNumeroFactura() string {
	return "FAC-" + strings.ToUpper(uuid.NewString()[:8])
}

// GenerateInvoice emite la factura de un registro COMPLETADO. El subtotal es
// la suma de los precios de las asignaciones completadas y el total sigue la
// fórmula total = subtotal - subtotal*descuento + subtotal*impuesto, redondeado
// a centavos. Todo dentro de una transacción: la agregación y la emisión no se
// separan.
func GenerateInvoice(db *gorm.DB, registroID uint, tasaImpuesto, tasaDescuento float64, diasVencimiento int) (*models.Factura, error) {
	if tasaImpuesto < 0 || tasaDescuento < 0 || tasaDescuento > 1 {
		return nil, ErrTasaInvalida
	}
	if diasVencimiento <= 0 {
		diasVencimiento = 30
	}

	var factura models.Factura
	err := db.Transaction(func(tx *gorm.DB) error {
		var registro models.RegistroServicio
		if err := tx.First(&registro, registroID).Error; err != nil {
			return err
		}
		if registro.Estado != models.ServicioCompletado {
			return ErrRegistroNoCompletado
		}

		var count int64
		if err := tx.Model(&models.Factura{}).Where("registro_id = ?", registroID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrRegistroYaFacturado
		}

		var asignaciones []models.AsignacionTrabajo
		err := tx.Where("registro_id = ? AND estado = ?", registroID, models.AsignacionCompletada).
			Find(&asignaciones).Error
		if err != nil {
			return err
		}
		if len(asignaciones) == 0 {
			return ErrSinAsignaciones
		}

		subtotal := 0.0
		for _, a := range asignaciones {
			subtotal += a.Precio
		}
		subtotal = models.Round2(subtotal)

		descuento := models.Round2(subtotal * tasaDescuento)
		impuesto := models.Round2(subtotal * tasaImpuesto)
		total := models.Round2(subtotal - descuento + impuesto)

		now := time.Now()
		factura = models.Factura{
			RegistroID:       registroID,
			NumeroFactura:    nuevoNumeroFactura(),
			Subtotal:         subtotal,
			Descuento:        descuento,
			Impuesto:         impuesto,
			Total:            total,
			Estado:           models.FacturaActiva,
			EstadoPago:       models.PagoPendiente,
			FechaEmision:     now,
			FechaVencimiento: now.AddDate(0, 0, diasVencimiento),
		}
		return tx.Create(&factura).Error
	})
	if err != nil {
		return nil, err
	}
	return &factura, nil
}

// RegisterPayment inserta el pago y recalcula estado_pago en la misma
// transacción: PENDIENTE sin pagos, PARCIAL con saldo abierto, PAGADO cuando la
// suma alcanza el total. Un pago que exceda el saldo se rechaza.
func RegisterPayment(db *gorm.DB, facturaID uint, monto float64, metodo models.MetodoPago, referencia string) (*models.Pago, error) {
	monto = models.Round2(monto)

	var pago models.Pago
	err := db.Transaction(func(tx *gorm.DB) error {
		var factura models.Factura
		if err := tx.First(&factura, facturaID).Error; err != nil {
			return err
		}
		if factura.Estado == models.FacturaAnulada {
			return ErrFacturaAnulada
		}

		var pagado float64
		err := tx.Model(&models.Pago{}).
			Where("factura_id = ?", facturaID).
			Select("COALESCE(SUM(monto), 0)").
			Scan(&pagado).Error
		if err != nil {
			return err
		}

		if models.Round2(pagado+monto) > factura.Total {
			return ErrPagoExcedeSaldo
		}

		pago = models.Pago{
			FacturaID:  &factura.ID,
			Monto:      monto,
			Metodo:     metodo,
			Referencia: referencia,
			FechaPago:  time.Now(),
		}
		if err := tx.Create(&pago).Error; err != nil {
			return err
		}

		estado := models.PagoParcial
		if models.Round2(pagado+monto) >= factura.Total {
			estado = models.PagoCompleto
		}
		return tx.Model(&factura).Update("estado_pago", estado).Error
	})
	if err != nil {
		return nil, err
	}
	return &pago, nil
}

// RefreshOverdue marca VENCIDA toda factura activa cuyo vencimiento pasó sin
// quedar pagada. Se evalúa al leer; el sistema no tiene trabajos programados.
func RefreshOverdue(db *gorm.DB, facturas []models.Factura) []models.Factura {
	now := time.Now()
	for i := range facturas {
		f := &facturas[i]
		if f.Estado == models.FacturaActiva &&
			f.EstadoPago != models.PagoCompleto &&
			now.After(f.FechaVencimiento) {
			f.Estado = models.FacturaVencida
			db.Model(f).Update("estado", models.FacturaVencida)
		}
	}
	return facturas
}

// InvoiceBalance: total menos la suma de pagos registrados.
func InvoiceBalance(db *gorm.DB, facturaID uint) (float64, error) {
	var factura models.Factura
	if err := db.First(&factura, facturaID).Error; err != nil {
		return 0, err
	}

	var pagado float64
	err := db.Model(&models.Pago{}).
		Where("factura_id = ?", facturaID).
		Select("COALESCE(SUM(monto), 0)").
		Scan(&pagado).Error
	if err != nil {
		return 0, err
	}
	return models.Round2(factura.Total - pagado), nil
}
