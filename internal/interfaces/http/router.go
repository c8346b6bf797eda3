package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-pos/internal/application/auth"
	"github.com/tu-usuario/retail-pos/internal/application/catalog"
	"github.com/tu-usuario/retail-pos/internal/application/counterparty"
	appinvoicing "github.com/tu-usuario/retail-pos/internal/application/invoicing"
	"github.com/tu-usuario/retail-pos/internal/application/reporting"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Editor         *appinvoicing.DraftEditor
	SubmitDraft    *appinvoicing.SubmitDraftUseCase
	CatalogUC      *catalog.CatalogUseCase
	CounterpartyUC *counterparty.UseCase
	ReportUC       *reporting.ProfitReportUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
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

	// Catálogo (protegido)
	products := protected.Group("/products")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products.Post("/", catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Put("/:id", catalogHandler.UpdateProduct)
	products.Post("/:id/prices", catalogHandler.CreatePriceRecord)
	products.Get("/:id/prices", catalogHandler.GetPriceHistory)

	// Contrapartes (protegido)
	counterpartyHandler := NewCounterpartyHandler(deps.CounterpartyUC)
	customers := protected.Group("/customers")
	customers.Post("/", counterpartyHandler.CreateCustomer)
	customers.Get("/", counterpartyHandler.ListCustomers)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", counterpartyHandler.CreateSupplier)
	suppliers.Get("/", counterpartyHandler.ListSuppliers)

	// Borradores de factura (protegido)
	drafts := protected.Group("/drafts")
	draftHandler := NewDraftHandler(deps.Editor, deps.SubmitDraft)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Discard)
	drafts.Post("/:id/refresh", draftHandler.Refresh)
	drafts.Post("/:id/lines", draftHandler.AddProduct)
	drafts.Put("/:id/lines/:idx/quantity", draftHandler.SetQuantity)
	drafts.Put("/:id/lines/:idx/price-type", draftHandler.SetPriceType)
	drafts.Put("/:id/lines/:idx/unit-price", draftHandler.SetUnitPrice)
	drafts.Put("/:id/lines/:idx/private-price", draftHandler.SetPrivatePrice)
	drafts.Delete("/:id/lines/:idx", draftHandler.RemoveLine)
	drafts.Get("/:id/duplicate/:productId", draftHandler.IsDuplicate)
	drafts.Post("/:id/validate", draftHandler.Validate)
	drafts.Post("/:id/submit", draftHandler.Submit)

	// Facturas persistidas (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Editor, deps.SubmitDraft)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/open", invoiceHandler.OpenAsDraft)
	invoices.Post("/:id/payments", invoiceHandler.RegisterPayment)

	// Reportes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/profit", reportHandler.Profit)
}
