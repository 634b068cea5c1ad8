package main

import (
	"log"
	"strings"

	"pasteleria-backend/internal/audit"
	"pasteleria-backend/internal/auth"
	"pasteleria-backend/internal/catalog"
	"pasteleria-backend/internal/clients"
	"pasteleria-backend/internal/config"
	"pasteleria-backend/internal/database"
	"pasteleria-backend/internal/models"
	"pasteleria-backend/internal/orders"
	"pasteleria-backend/internal/production"
	"pasteleria-backend/internal/sales"
	"pasteleria-backend/internal/sheets"
	"pasteleria-backend/internal/suppliers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	// CORS: los orígenes llegan separados por comas en la variable de entorno
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Autenticación pública
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Rutas protegidas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Administración: usuarios, mutación de catálogo y auditoría
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRol(models.RolAdministrador))

	adminRoutes.Post("/usuarios", auth.CreateUsuarioHandler())
	adminRoutes.Get("/usuarios", auth.ListUsuariosHandler())
	adminRoutes.Put("/usuarios/:id", auth.UpdateUsuarioHandler())
	adminRoutes.Patch("/usuarios/:id/estado", auth.ToggleUsuarioHandler())

	adminRoutes.Post("/productos", catalog.CreateProductoHandler())
	adminRoutes.Put("/productos/:id", catalog.UpdateProductoHandler())
	adminRoutes.Patch("/productos/:id/estado", catalog.ToggleProductoHandler())

	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Clientes
	protected.Post("/clientes", clients.CreateClienteHandler())
	protected.Get("/clientes", clients.ListClientesHandler())
	protected.Put("/clientes/:id", clients.UpdateClienteHandler())
	protected.Patch("/clientes/:id/estado", clients.ToggleClienteHandler())
	protected.Delete("/clientes/:id", clients.DeleteClienteHandler())

	// Proveedores
	protected.Post("/proveedores", suppliers.CreateProveedorHandler())
	protected.Get("/proveedores", suppliers.ListProveedoresHandler())
	protected.Put("/proveedores/:id", suppliers.UpdateProveedorHandler())
	protected.Patch("/proveedores/:id/estado", suppliers.ToggleProveedorHandler())

	// Catálogo de insumos
	protected.Post("/categorias-insumo", catalog.CreateCategoriaHandler())
	protected.Get("/categorias-insumo", catalog.ListCategoriasHandler())
	protected.Put("/categorias-insumo/:id", catalog.UpdateCategoriaHandler())
	protected.Patch("/categorias-insumo/:id/estado", catalog.ToggleCategoriaHandler())

	protected.Post("/insumos", catalog.CreateInsumoHandler())
	protected.Get("/insumos", catalog.ListInsumosHandler())
	protected.Put("/insumos/:id", catalog.UpdateInsumoHandler())
	protected.Patch("/insumos/:id/estado", catalog.ToggleInsumoHandler())

	// Productos terminados (lectura para todos los roles)
	protected.Get("/productos", catalog.ListProductosHandler())
	protected.Get("/productos/activos", catalog.ListProductosActivosHandler())
	protected.Get("/productos/:id", catalog.GetProductoHandler())

	// Fichas técnicas
	protected.Post("/fichas-tecnicas", sheets.CreateFichaHandler())
	protected.Get("/fichas-tecnicas", sheets.ListFichasHandler())
	protected.Get("/fichas-tecnicas/:id", sheets.GetFichaHandler())
	protected.Put("/fichas-tecnicas/:id", sheets.UpdateFichaHandler())
	protected.Patch("/fichas-tecnicas/:id/estado", sheets.ToggleFichaHandler())

	// Pedidos
	protected.Post("/pedidos", orders.CreatePedidoHandler())
	protected.Get("/pedidos", orders.ListPedidosHandler())
	protected.Get("/pedidos/:id", orders.GetPedidoHandler())
	protected.Put("/pedidos/:id", orders.UpdatePedidoHandler())
	protected.Put("/pedidos/:id/estado", orders.UpdateEstadoPedidoHandler())
	protected.Patch("/pedidos/:id/pagado", orders.TogglePagadoPedidoHandler())
	protected.Patch("/pedidos/:id/estado", orders.ToggleActivoPedidoHandler())

	// Ventas
	protected.Post("/ventas", sales.CreateVentaHandler())
	protected.Get("/ventas", sales.ListVentasHandler())
	protected.Get("/ventas/:id", sales.GetVentaHandler())
	protected.Put("/ventas/:id/estado", sales.UpdateEstadoVentaHandler())
	protected.Patch("/ventas/:id/estado", sales.ToggleActivoVentaHandler())

	// Órdenes de producción
	protected.Post("/ordenesproduccion", production.CreateOrdenHandler())
	protected.Get("/ordenesproduccion", production.ListOrdenesHandler())
	protected.Get("/ordenesproduccion/todas_ventas_asociadas", production.ListVentasAsociadasHandler())
	protected.Get("/ordenesproduccion/:id/ventas_asociadas", production.ListVentasDeOrdenHandler())
	protected.Put("/ordenesproduccion/:id", production.UpdateOrdenHandler())
	protected.Patch("/ordenesproduccion/:id/estado", production.ToggleOrdenHandler())

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
