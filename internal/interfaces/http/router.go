package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bilkro/pos-api/internal/application/auth"
	"github.com/bilkro/pos-api/internal/application/cart"
	"github.com/bilkro/pos-api/internal/application/checkout"
	"github.com/bilkro/pos-api/internal/application/reporting"
	"github.com/bilkro/pos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CartUC      *cart.UseCase
	CheckoutUC  *checkout.UseCase
	ProductUC   *usecase.ProductUseCase
	SaleUC      *usecase.SaleUseCase
	ReportingUC *reporting.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Cart + checkout (protegido; cada usuario opera sobre su propio carrito)
	cartGroup := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC, deps.CheckoutUC)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:itemId", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:itemId", cartHandler.RemoveItem)
	cartGroup.Post("/checkout", cartHandler.Checkout)

	// Products (protegido; lecturas para cualquier usuario, escrituras y
	// valorización solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireAdmin(), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/valuation", RequireAdmin(), productHandler.Valuation)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireAdmin(), productHandler.Update)
	products.Post("/:id/restock", RequireAdmin(), productHandler.Restock)
	products.Delete("/:id", RequireAdmin(), productHandler.Delete)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Reports (protegido, solo admin)
	reports := protected.Group("/reports", RequireAdmin())
	reportHandler := NewReportHandler(deps.ReportingUC)
	reports.Get("/sales", reportHandler.SalesByPeriod)
	reports.Get("/products", reportHandler.Products)
	reports.Get("/categories", reportHandler.Categories)
	reports.Get("/payment-methods", reportHandler.PaymentMethods)
	reports.Get("/:id", reportHandler.GetByID)

	// Admin (listado de carritos de todos los usuarios)
	admin := protected.Group("/admin", RequireAdmin())
	admin.Get("/carts", cartHandler.ListCarts)
}
