package billing

import (
	"errors"
	"strconv"

	"taller-backend/internal/audit"
	"taller-backend/internal/auth"
	"taller-backend/internal/config"
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GenerarFacturaRequest struct {
	TasaImpuesto    *float64 `json:"tasa_impuesto"`
	TasaDescuento   *float64 `json:"tasa_descuento"`
	DiasVencimiento *int     `json:"dias_vencimiento"`
}

type CreatePagoRequest struct {
	Monto      float64 `json:"monto"`
	Metodo     string  `json:"metodo"`
	Referencia string  `json:"referencia"`
}

// POST /api/facturas/generar/:registroID
func GenerarFacturaHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, adminName, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		registroID, err := strconv.Atoi(c.Params("registroID"))
		if err != nil || registroID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de registro inválido")
		}

		var body GenerarFacturaRequest
		// El cuerpo es opcional; sin él aplican las tasas por defecto
		_ = c.BodyParser(&body)

		impuesto := cfg.TasaImpuesto
		if body.TasaImpuesto != nil {
			impuesto = *body.TasaImpuesto
		}
		descuento := 0.0
		if body.TasaDescuento != nil {
			descuento = *body.TasaDescuento
		}
		dias := cfg.DiasVencimiento
		if body.DiasVencimiento != nil {
			dias = *body.DiasVencimiento
		}

		factura, err := GenerateInvoice(database.DB, uint(registroID), impuesto, descuento, dias)
		if err != nil {
			return facturaError(err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      adminID,
			UserName:    adminName,
			EntityType:  "factura",
			EntityID:    factura.ID,
			Action:      models.AuditActionCreate,
			Description: "Factura emitida: " + factura.NumeroFactura,
			After:       factura,
		})

		return c.Status(fiber.StatusCreated).JSON(factura)
	}
}

// GET /api/facturas?estado=&estado_pago=
// El estado VENCIDA se refresca al leer.
func ListFacturasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Factura{}).Order("fecha_emision DESC")
		if estado := c.Query("estado"); estado != "" {
			query = query.Where("estado = ?", estado)
		}
		if estadoPago := c.Query("estado_pago"); estadoPago != "" {
			query = query.Where("estado_pago = ?", estadoPago)
		}

		var facturas []models.Factura
		if err := query.Find(&facturas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las facturas")
		}

		return c.JSON(RefreshOverdue(database.DB, facturas))
	}
}

// GET /api/facturas/:id
func GetFacturaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var factura models.Factura
		err = database.DB.Preload("Pagos").First(&factura, id).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Factura no encontrada")
		}

		facturas := RefreshOverdue(database.DB, []models.Factura{factura})

		saldo, err := InvoiceBalance(database.DB, factura.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el saldo")
		}

		return c.JSON(fiber.Map{
			"factura": facturas[0],
			"saldo":   saldo,
		})
	}
}

// POST /api/facturas/:id/pagos
func CreatePagoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body CreatePagoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Monto <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El monto debe ser mayor que cero")
		}

		metodo := models.MetodoPago(body.Metodo)
		switch metodo {
		case models.MetodoEfectivo, models.MetodoTarjeta, models.MetodoTransferencia, models.MetodoCheque:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Método de pago inválido")
		}

		pago, err := RegisterPayment(database.DB, uint(id), body.Monto, metodo, body.Referencia)
		if err != nil {
			return facturaError(err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "pago",
			EntityID:    pago.ID,
			Action:      models.AuditActionCreate,
			Description: "Pago registrado contra factura",
			After:       pago,
		})

		return c.Status(fiber.StatusCreated).JSON(pago)
	}
}

// GET /api/facturas/:id/pagos
func ListPagosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var factura models.Factura
		if err := database.DB.First(&factura, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Factura no encontrada")
		}

		var pagos []models.Pago
		err = database.DB.Where("factura_id = ?", factura.ID).
			Order("fecha_pago ASC").Find(&pagos).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los pagos")
		}

		return c.JSON(pagos)
	}
}

func facturaError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Registro no encontrado")
	case errors.Is(err, ErrRegistroNoCompletado):
		return fiber.NewError(fiber.StatusConflict, "Solo se facturan registros completados")
	case errors.Is(err, ErrRegistroYaFacturado):
		return fiber.NewError(fiber.StatusConflict, "El registro ya tiene una factura emitida")
	case errors.Is(err, ErrSinAsignaciones):
		return fiber.NewError(fiber.StatusConflict, "El registro no tiene trabajos completados que facturar")
	case errors.Is(err, ErrFacturaAnulada):
		return fiber.NewError(fiber.StatusConflict, "La factura está anulada")
	case errors.Is(err, ErrPagoExcedeSaldo):
		return fiber.NewError(fiber.StatusConflict, "El pago excede el saldo pendiente de la factura")
	case errors.Is(err, ErrTasaInvalida):
		return fiber.NewError(fiber.StatusBadRequest, "Tasa de impuesto o descuento inválida")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Error al procesar la factura")
	}
}
