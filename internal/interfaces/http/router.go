package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ordenes-pro/internal/application/auth"
	"github.com/tu-usuario/ordenes-pro/internal/application/ordenes"
	"github.com/tu-usuario/ordenes-pro/internal/application/proveedores"
	"github.com/tu-usuario/ordenes-pro/internal/application/reportes"
	"github.com/tu-usuario/ordenes-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrdenesUC     *ordenes.UseCase
	ProveedoresUC *proveedores.UseCase
	EstadoCuenta  *reportes.EstadoCuentaUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Proveedores y órdenes son solo para
// admins, igual que en el sistema original.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token + rol admin)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))

	// Proveedores
	provGroup := protected.Group("/proveedores")
	provHandler := NewProveedorHandler(deps.ProveedoresUC)
	provGroup.Get("/", provHandler.List)
	provGroup.Get("/:id", provHandler.GetByID)
	provGroup.Post("/", provHandler.Create)
	provGroup.Put("/:id", provHandler.Update)
	provGroup.Delete("/:id", provHandler.Delete)
	provGroup.Post("/:id/comprobantes", provHandler.CreateComprobante)
	provGroup.Get("/:id/comprobantes", provHandler.ListComprobantes)
	provGroup.Delete("/:id/comprobantes/:comprobanteId", provHandler.DeleteComprobante)

	// Reportes
	reporteHandler := NewReporteHandler(deps.EstadoCuenta)
	provGroup.Get("/:id/estado-cuenta", reporteHandler.EstadoCuenta)

	// Órdenes
	ordenGroup := protected.Group("/ordenes")
	ordenHandler := NewOrdenHandler(deps.OrdenesUC)
	ordenGroup.Get("/", ordenHandler.List)
	ordenGroup.Get("/:id", ordenHandler.GetByID)
	ordenGroup.Post("/", ordenHandler.Create)
	ordenGroup.Put("/:id", ordenHandler.Update)
	ordenGroup.Delete("/:id", ordenHandler.Delete)
}
