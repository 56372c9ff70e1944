package proveedor

import (
	"errors"
	"time"

	"taller-backend/internal/audit"
	"taller-backend/internal/auth"
	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreatePedidoRequest struct {
	ProveedorID uint `json:"proveedor_id"`
	Lineas      []struct {
		CatalogoID uint `json:"catalogo_id"`
		Cantidad   int  `json:"cantidad"`
	} `json:"lineas"`
}

type EstadoPedidoRequest struct {
	Estado string `json:"estado"`
}

type EntregaRequest struct {
	FechaEntrega *string `json:"fecha_entrega"` // "2026-09-20"; omitir = hoy
	Observacion  string  `json:"observacion"`
}

type PagoPedidoRequest struct {
	Monto      float64 `json:"monto"`
	Metodo     string  `json:"metodo"`
	Referencia string  `json:"referencia"`
}

// POST /api/pedidos
func CreatePedidoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, adminName, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreatePedidoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.ProveedorID == 0 || len(body.Lineas) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "proveedor_id y al menos una línea son obligatorios")
		}

		lineas := make([]LineaPedido, 0, len(body.Lineas))
		for _, l := range body.Lineas {
			lineas = append(lineas, LineaPedido{CatalogoID: l.CatalogoID, Cantidad: l.Cantidad})
		}

		pedido, err := CreateOrder(database.DB, body.ProveedorID, lineas)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Proveedor o entrada de catálogo inexistente")
			}
			return fiber.NewError(fiber.StatusBadRequest, "No se pudo crear el pedido: "+err.Error())
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      adminID,
			UserName:    adminName,
			EntityType:  "pedido",
			EntityID:    pedido.ID,
			Action:      models.AuditActionCreate,
			Description: "Pedido creado: " + pedido.NumeroPedido,
			After:       pedido,
		})

		return c.Status(fiber.StatusCreated).JSON(pedido)
	}
}

// GET /api/pedidos?estado=&proveedor_id=
func ListPedidosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Proveedor").Model(&models.Pedido{})
		if estado := c.Query("estado"); estado != "" {
			dbq = dbq.Where("pedidos.estado = ?", estado)
		}
		if pid := c.Query("proveedor_id"); pid != "" {
			dbq = dbq.Where("pedidos.proveedor_id = ?", pid)
		}

		var pedidos []models.Pedido
		if err := dbq.Order("fecha_pedido desc").Find(&pedidos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los pedidos")
		}
		return c.JSON(pedidos)
	}
}

// GET /api/pedidos/:id
func GetPedidoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var pedido models.Pedido
		err := database.DB.
			Preload("Proveedor").
			Preload("Detalles").
			Preload("Entregas").
			Preload("Pagos").
			First(&pedido, "id = ?", c.Params("id")).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
		}
		return c.JSON(pedido)
	}
}

// POST /api/pedidos/:id/estado
func CambiarEstadoPedidoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body EstadoPedidoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		destino := models.EstadoPedido(body.Estado)
		switch destino {
		case models.PedidoConfirmado, models.PedidoEnTransito, models.PedidoEntregado, models.PedidoCancelado:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Estado destino inválido")
		}

		pedido, err := AdvanceOrderStatus(database.DB, uint(id), destino)
		if err != nil {
			switch {
			case errors.Is(err, ErrPedidoCerrado):
				return fiber.NewError(fiber.StatusConflict, "El pedido ya está cerrado")
			case errors.Is(err, ErrEstadoNoContiguo):
				return fiber.NewError(fiber.StatusConflict, "El estado destino no es contiguo al actual")
			case errors.Is(err, ErrCancelarEnvio):
				return fiber.NewError(fiber.StatusConflict, "No se puede cancelar un pedido ya despachado")
			case errors.Is(err, gorm.ErrRecordNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado del pedido")
			}
		}
		return c.JSON(pedido)
	}
}

// POST /api/pedidos/:id/entregas
func RegistrarEntregaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body EntregaRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
			}
		}

		var fecha time.Time
		if body.FechaEntrega != nil {
			fecha, err = time.Parse("2006-01-02", *body.FechaEntrega)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fecha_entrega inválida, formato esperado AAAA-MM-DD")
			}
		}

		entrega, err := RegisterDelivery(database.DB, uint(id), fecha, body.Observacion)
		if err != nil {
			switch {
			case errors.Is(err, ErrPedidoCerrado):
				return fiber.NewError(fiber.StatusConflict, "El pedido está cancelado")
			case errors.Is(err, gorm.ErrRecordNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar la entrega")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(entrega)
	}
}

// POST /api/pedidos/:id/pagos
// Pagos del taller al proveedor; inmutables una vez creados.
func CreatePagoPedidoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var pedido models.Pedido
		if err := database.DB.First(&pedido, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
		}
		if pedido.Estado == models.PedidoCancelado {
			return fiber.NewError(fiber.StatusConflict, "El pedido está cancelado")
		}

		var body PagoPedidoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Monto <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El monto debe ser mayor a cero")
		}

		metodo := models.MetodoPago(body.Metodo)
		switch metodo {
		case models.MetodoEfectivo, models.MetodoTarjeta, models.MetodoTransferencia, models.MetodoCheque:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Método de pago inválido")
		}

		pago := models.Pago{
			PedidoID:   &pedido.ID,
			Monto:      models.Round2(body.Monto),
			Metodo:     metodo,
			Referencia: body.Referencia,
			FechaPago:  time.Now(),
		}
		if err := database.DB.Create(&pago).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el pago")
		}
		return c.Status(fiber.StatusCreated).JSON(pago)
	}
}
