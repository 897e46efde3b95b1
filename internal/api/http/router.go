package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/grievance-service/internal/api/http/handlers"
	"github.com/spec-kit/grievance-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Complaints     *handlers.ComplaintsHandler
	Comments       *handlers.CommentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/register", cfg.Accounts.RegisterUser)
	authGroup.Post("/users/login", cfg.Accounts.LoginUser)
	authGroup.Post("/departments/register", cfg.Accounts.RegisterDepartment)
	authGroup.Post("/departments/login", cfg.Accounts.LoginDepartment)

	complaints := app.Group("/complaint", cfg.AuthMiddleware.Handle)
	complaints.Post("/generate-application", auth.RequireUser(), cfg.Complaints.GenerateApplication)
	complaints.Post("/send-complaint", auth.RequireUser(), cfg.Complaints.SendComplaint)
	complaints.Get("/user", auth.RequireUser(), cfg.Complaints.ListUserComplaints)
	complaints.Get("/department", auth.RequireDepartment(), cfg.Complaints.ListDepartmentComplaints)

	// reply routes registered before the :departmentId wildcards
	app.Post("/comment/reply/:commentId", cfg.AuthMiddleware.Handle, auth.RequireDepartment(), cfg.Comments.AddReply)
	app.Delete("/comment/reply/:commentId/:replyId", cfg.AuthMiddleware.Handle, auth.RequireDepartment(), cfg.Comments.DeleteReply)

	app.Get("/comment/:departmentId", cfg.Comments.ListDepartmentComments)
	app.Post("/comment/:departmentId", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Comments.AddComment)
	app.Delete("/comment/:departmentId/:commentId", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Comments.DeleteComment)
}
