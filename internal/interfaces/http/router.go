package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cobranza-api/internal/application/auth"
	"github.com/jhoicas/Cobranza-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	InvoiceUC   *usecase.InvoiceUseCase
	DashboardUC *usecase.DashboardUseCase
	PlanUC      *usecase.PlanUseCase
	JWTSecret   string
	UploadDir   string // si no está vacío, sirve /uploads desde disco
}

// Router registra las rutas de la API.
//
// Superficie global (administración):
//
//	/api/v1/auth/...         login, registro, perfil propio
//	/api/v1/companies/...    CRUD de empresas (superadmin)
//	/api/v1/users/...        CRUD global de usuarios (superadmin)
//	/api/v1/invoices/...     facturas con filtro de filas por rol
//	/api/v1/plans            planes contratables (público)
//
// Superficie de tenant (la empresa va en la URL):
//
//	/api/v1/:company_key/...
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	authHandler := NewAuthHandler(deps.AuthUC)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	userHandler := NewUserHandler(deps.UserUC)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	planHandler := NewPlanHandler(deps.PlanUC)

	authRequired := AuthMiddleware(deps.JWTSecret, deps.AuthUC)
	tenantRequired := TenantMiddleware(deps.CompanyUC)

	if deps.UploadDir != "" {
		app.Static("/uploads", deps.UploadDir)
	}

	// Público
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	api.Get("/plans", planHandler.List)

	// Perfil propio (protegido)
	authGroup.Get("/me", authRequired, authHandler.Me)

	// Companies (protegido; mutaciones solo superadmin, decidido en el use case)
	companies := api.Group("/companies", authRequired)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Users global (protegido; solo superadmin, decidido en el use case)
	users := api.Group("/users", authRequired)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Invoices global (protegido; el filtro de filas lo pone el use case)
	invoices := api.Group("/invoices", authRequired)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/calendar", invoiceHandler.Calendar)
	invoices.Get("/by-date/:date", invoiceHandler.ByDueDate)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Patch("/:id/toggle-paid", invoiceHandler.TogglePaid)
	invoices.Post("/:id/upload", invoiceHandler.UploadFile)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Tenant: info pública y login por empresa, sin token.
	api.Get("/:company_key/info", companyHandler.PublicInfo)
	api.Post("/:company_key/auth/login", authHandler.TenantLogin)

	// Tenant protegido: el middleware resuelve la empresa y verifica acceso.
	tenant := api.Group("/:company_key", authRequired, tenantRequired)
	tenant.Get("/dashboard", dashboardHandler.Summary)
	tenant.Get("/profile", companyHandler.Profile)
	tenant.Put("/profile", companyHandler.UpdateProfile)
	tenant.Post("/profile/logo", companyHandler.UploadLogo)

	tenantUsers := tenant.Group("/users")
	tenantUsers.Get("/", userHandler.ListTenant)
	tenantUsers.Post("/", userHandler.CreateTenant)
	tenantUsers.Get("/:id", userHandler.GetTenant)
	tenantUsers.Put("/:id", userHandler.UpdateTenant)
	tenantUsers.Delete("/:id", userHandler.DeleteTenant)

	tenantInvoices := tenant.Group("/invoices")
	tenantInvoices.Get("/", invoiceHandler.List)
	tenantInvoices.Post("/", invoiceHandler.Create)
	tenantInvoices.Get("/calendar", invoiceHandler.Calendar)
	tenantInvoices.Get("/by-date/:date", invoiceHandler.ByDueDate)
	tenantInvoices.Get("/:id", invoiceHandler.Get)
	tenantInvoices.Put("/:id", invoiceHandler.Update)
	tenantInvoices.Delete("/:id", invoiceHandler.Delete)
	tenantInvoices.Patch("/:id/toggle-paid", invoiceHandler.TogglePaid)
	tenantInvoices.Post("/:id/upload", invoiceHandler.UploadFile)
	tenantInvoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
}
