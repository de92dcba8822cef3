package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albaranes/albaranes-api/internal/application/auth"
	"github.com/albaranes/albaranes-api/internal/application/usecase"
	"github.com/albaranes/albaranes-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	UserUC         *usecase.UserUseCase
	ClientUC       *usecase.ClientUseCase
	ProjectUC      *usecase.ProjectUseCase
	DeliveryNoteUC *usecase.DeliveryNoteUseCase
	MailUC         *usecase.MailUseCase
	Users          repository.UserRepository
	JWTSecret      string
}

// Router registra las rutas de la API. Las rutas literales (archived, one,
// restore...) van antes que las paramétricas del mismo grupo para que Fiber
// no las capture como :id.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authRequired := AuthMiddleware(deps.JWTSecret, deps.Users)

	// Identidad y perfil
	authHandler := NewAuthHandler(deps.AuthUC)
	userHandler := NewUserHandler(deps.UserUC)
	user := api.Group("/user")
	user.Post("/register", authHandler.Register)
	user.Post("/login", authHandler.Login)
	user.Post("/forgot-password", authHandler.ForgotPassword)
	user.Post("/reset-password", authHandler.ResetPassword)
	user.Post("/accept-invitation", authHandler.AcceptInvitation)
	user.Put("/validation", authRequired, authHandler.Verify)
	user.Post("/invite", authRequired, authHandler.Invite)
	user.Get("/", authRequired, userHandler.GetProfile)
	user.Put("/personal", authRequired, userHandler.UpdatePersonal)
	user.Patch("/company", authRequired, userHandler.UpdateCompany)
	user.Patch("/logo", authRequired, userHandler.UpdateLogo)
	user.Delete("/", authRequired, userHandler.DeleteAccount)

	// Clientes (protegido)
	clients := api.Group("/client", authRequired)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/archived", clientHandler.ListArchived)
	clients.Patch("/restore/:id", clientHandler.Restore)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Proyectos (protegido)
	projects := api.Group("/project", authRequired)
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/archived", projectHandler.ListArchived)
	projects.Get("/archived/:client", projectHandler.ListArchivedByClient)
	projects.Get("/one/:id", projectHandler.Get)
	projects.Patch("/archive/:id", projectHandler.Archive)
	projects.Patch("/restore/:id", projectHandler.Restore)
	projects.Patch("/activate/:id", projectHandler.Activate)
	projects.Patch("/prices/:id", projectHandler.UpdatePrices)
	projects.Patch("/amount/:id", projectHandler.UpdateAmount)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)
	projects.Get("/:client", projectHandler.ListByClient)
	projects.Get("/:client/:id", projectHandler.GetByClient)

	// Albaranes (protegido)
	notes := api.Group("/deliverynote", authRequired)
	noteHandler := NewDeliveryNoteHandler(deps.DeliveryNoteUC)
	notes.Post("/", noteHandler.Create)
	notes.Get("/", noteHandler.List)
	notes.Get("/pdf/:id", noteHandler.GeneratePDF)
	notes.Patch("/sign/:id", noteHandler.Sign)
	notes.Get("/:id", noteHandler.Get)
	notes.Delete("/:id", noteHandler.Delete)

	// Correo (protegido)
	mailHandler := NewMailHandler(deps.MailUC)
	api.Post("/mail", authRequired, mailHandler.Send)
}
