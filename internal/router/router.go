package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskboard/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Project *apiHandler.ProjectHandler
	Task    *apiHandler.TaskHandler
	Health  *apiHandler.HealthHandler
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// New builds the route table. Session middleware gates everything below the
// auth endpoints; the membership guard additionally gates every
// project-scoped route, with ownership required for member invitation.
func New(handlers Handlers, session, member, owner Middleware) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.POST("/signup", handlers.Auth.Signup)
	r.POST("/login", handlers.Auth.Login)
	r.GET("/logout", session(handlers.Auth.Logout))
	r.GET("/me", session(handlers.Auth.Me))

	r.GET("/projects", session(handlers.Project.List))
	r.POST("/projects", session(handlers.Project.Create))

	r.GET("/projects/{id}/members", session(member(handlers.Project.Members)))
	r.POST("/projects/{id}/members", session(owner(handlers.Project.Invite)))
	r.GET("/projects/{id}/activity", session(member(handlers.Project.Activity)))

	r.GET("/projects/{id}/tasks", session(member(handlers.Task.GetBoard)))
	r.POST("/projects/{id}/tasks", session(member(handlers.Task.Create)))
	r.PUT("/projects/{id}/tasks/{taskId}", session(member(handlers.Task.Update)))
	r.DELETE("/projects/{id}/tasks/{taskId}", session(member(handlers.Task.Delete)))
	r.PUT("/projects/{id}/tasks/{taskId}/status", session(member(handlers.Task.UpdateStatus)))

	r.GET("/projects/{id}/tasks/{taskId}/comments", session(member(handlers.Task.ListComments)))
	r.POST("/projects/{id}/tasks/{taskId}/comments", session(member(handlers.Task.AddComment)))

	r.POST("/projects/{id}/subtasks", session(member(handlers.Task.AddSubtask)))
	r.PUT("/projects/{id}/subtasks/{subtaskId}", session(member(handlers.Task.UpdateSubtask)))

	return r
}
