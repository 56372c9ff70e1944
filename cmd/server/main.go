package main

import (
	"strings"

	"taller-backend/internal/audit"
	"taller-backend/internal/auth"
	"taller-backend/internal/billing"
	"taller-backend/internal/config"
	"taller-backend/internal/database"
	"taller-backend/internal/fleet"
	"taller-backend/internal/inventory"
	"taller-backend/internal/management"
	"taller-backend/internal/models"
	"taller-backend/internal/proveedor"
	"taller-backend/internal/reports"
	"taller-backend/internal/servicio"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	if err := database.Seed(database.DB); err != nil {
		log.WithError(err).Fatal("no se pudo sembrar la base de datos")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.WithError(err).Error("error no controlado")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth público
	api.Post("/auth/registrar-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/verificar-2fa", auth.Verify2FAHandler(cfg))
	api.Post("/auth/recuperar", auth.RecoverPasswordHandler())
	api.Post("/auth/restablecer", auth.ResetPasswordHandler())

	// Todo lo demás exige JWT
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	// cada usuario ve su propio historial; el administrador puede filtrar
	protected.Get("/auth/historial-logins", auth.ListLoginHistoryHandler())

	soloAdmin := auth.RequireRol(models.RolAdministrador)
	personal := auth.RequireRol(models.RolAdministrador, models.RolMecanico, models.RolEspecialista)

	// Gestión de personas, usuarios y roles
	gestion := protected.Group("/management", soloAdmin)
	gestion.Post("/persons", management.CreatePersonaHandler())
	gestion.Get("/persons", management.ListPersonasHandler())
	gestion.Get("/persons/:id", management.GetPersonaHandler())
	gestion.Put("/persons/:id", management.UpdatePersonaHandler())
	gestion.Post("/users", management.CreateUsuarioHandler())
	gestion.Get("/users", management.ListUsuariosHandler())
	gestion.Get("/users/:id", management.GetUsuarioHandler())
	gestion.Put("/users/:id", management.UpdateUsuarioHandler())
	gestion.Get("/roles", management.ListRolesHandler())
	gestion.Post("/roles", management.CreateRolHandler())
	gestion.Delete("/roles/:id", management.DeleteRolHandler())

	// Vehículos: los clientes ven solo los suyos (el handler filtra por rol)
	protected.Post("/vehiculos", fleet.CreateVehiculoHandler())
	protected.Get("/vehiculos", fleet.ListVehiculosHandler())
	protected.Get("/vehiculos/:id", fleet.GetVehiculoHandler())
	protected.Put("/vehiculos/:id", soloAdmin, fleet.UpdateVehiculoHandler())

	// Registros de servicio; las asignaciones se crean anidadas bajo el registro
	protected.Post("/servicios", soloAdmin, servicio.CreateRegistroHandler())
	protected.Get("/servicios", servicio.ListRegistrosHandler())
	protected.Get("/servicios/:id", servicio.GetRegistroHandler())
	protected.Post("/servicios/:id/cancelar", soloAdmin, servicio.CancelRegistroHandler())
	protected.Post("/servicios/:id/calificar", servicio.CalificarRegistroHandler())
	protected.Post("/servicios/:id/asignaciones", soloAdmin, servicio.CreateAsignacionHandler())

	// Tipos de mantenimiento
	protected.Get("/tipos-mantenimiento", servicio.ListTiposHandler())
	protected.Post("/tipos-mantenimiento", soloAdmin, servicio.CreateTipoHandler())
	protected.Put("/tipos-mantenimiento/:id", soloAdmin, servicio.UpdateTipoHandler())

	// Asignaciones de trabajo y sus detalles
	asignaciones := protected.Group("/asignaciones")
	asignaciones.Get("", personal, servicio.ListAsignacionesHandler())
	asignaciones.Get("/:id", personal, servicio.GetAsignacionHandler())
	asignaciones.Post("/:id/iniciar", personal, servicio.StartAsignacionHandler())
	asignaciones.Post("/:id/pausar", personal, servicio.PauseAsignacionHandler())
	asignaciones.Post("/:id/completar", personal, servicio.CompleteAsignacionHandler())
	asignaciones.Post("/:id/cancelar", soloAdmin, servicio.CancelAsignacionHandler())
	asignaciones.Post("/:id/diagnosticos", personal, servicio.CreateDiagnosticoHandler())
	asignaciones.Post("/:id/sintomas", personal, servicio.CreateSintomaHandler())
	asignaciones.Post("/:id/avances", personal, servicio.CreateAvanceHandler())
	asignaciones.Post("/:id/danios", personal, servicio.CreateDanioHandler())
	asignaciones.Post("/:id/solicitudes-apoyo", personal, servicio.CreateSolicitudApoyoHandler())
	asignaciones.Post("/:id/adicionales", personal, servicio.CreateAdicionalHandler())
	protected.Post("/solicitudes-apoyo/:id/atender", personal, servicio.AtenderSolicitudApoyoHandler())
	protected.Post("/adicionales/:id/aprobar", soloAdmin, servicio.ResolveAdicionalHandler(true))
	protected.Post("/adicionales/:id/rechazar", soloAdmin, servicio.ResolveAdicionalHandler(false))

	// Inventario de repuestos
	inventario := protected.Group("/inventario", personal)
	inventario.Post("", soloAdmin, inventory.CreateInventarioHandler())
	inventario.Get("", inventory.ListInventarioHandler())
	inventario.Put("/:id", soloAdmin, inventory.UpdateInventarioHandler())
	inventario.Post("/solicitudes", inventory.CreateSolicitudHandler())
	inventario.Get("/solicitudes", inventory.ListSolicitudesHandler())
	inventario.Post("/solicitudes/:id/aprobar", soloAdmin, inventory.AprobarSolicitudHandler())
	inventario.Post("/solicitudes/:id/rechazar", soloAdmin, inventory.RechazarSolicitudHandler())
	inventario.Post("/solicitudes/:id/usar", inventory.UsarSolicitudHandler())

	// Proveedores, sus repuestos y catálogo
	proveedores := protected.Group("/proveedores")
	proveedores.Post("", soloAdmin, proveedor.CreateProveedorHandler())
	proveedores.Get("", personal, proveedor.ListProveedoresHandler())
	proveedores.Get("/:id", personal, proveedor.GetProveedorHandler())
	proveedores.Put("/:id", soloAdmin, proveedor.UpdateProveedorHandler())
	proveedores.Delete("/:id", soloAdmin, proveedor.DeleteProveedorHandler())
	proveedores.Post("/:id/repuestos", proveedor.CreateRepuestoHandler())
	proveedores.Get("/:id/repuestos", proveedor.ListRepuestosHandler())
	proveedores.Post("/:id/catalogo", proveedor.CreateCatalogoHandler())
	proveedores.Get("/:id/catalogo", proveedor.ListCatalogoHandler())
	protected.Put("/repuestos/:id", proveedor.UpdateRepuestoHandler())
	protected.Put("/catalogo/:id", proveedor.UpdateCatalogoHandler())

	// Pedidos de compra a proveedores
	pedidos := protected.Group("/pedidos")
	pedidos.Post("", soloAdmin, proveedor.CreatePedidoHandler())
	pedidos.Get("", proveedor.ListPedidosHandler())
	pedidos.Get("/:id", proveedor.GetPedidoHandler())
	pedidos.Post("/:id/estado", proveedor.CambiarEstadoPedidoHandler())
	pedidos.Post("/:id/entregas", proveedor.RegistrarEntregaHandler())
	pedidos.Post("/:id/pagos", soloAdmin, proveedor.CreatePagoPedidoHandler())

	// Facturación
	facturas := protected.Group("/facturas", soloAdmin)
	facturas.Post("/generar/:registroID", billing.GenerarFacturaHandler(cfg))
	facturas.Get("", billing.ListFacturasHandler())
	facturas.Get("/:id", billing.GetFacturaHandler())
	facturas.Post("/:id/pagos", billing.CreatePagoHandler())
	facturas.Get("/:id/pagos", billing.ListPagosHandler())

	// Reportes
	reportes := protected.Group("/reportes", soloAdmin)
	reportes.Get("/ingresos-mensuales", reports.IngresosMensualesHandler())
	reportes.Get("/mantenimientos-top", reports.MantenimientosTopHandler())
	reportes.Get("/carga-mecanicos", reports.CargaMecanicosHandler())
	reportes.Get("/stock-bajo", reports.StockBajoHandler())
	reportes.Get("/export", reports.ExportHandler())

	// Auditoría
	protected.Get("/audit-logs", soloAdmin, audit.ListAuditLogsHandler())

	log.WithField("puerto", cfg.HTTPPort).Info("servidor iniciado")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.WithError(err).Fatal("el servidor se detuvo")
	}
}
