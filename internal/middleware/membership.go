package middleware

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/pkg/httpcontext"
	projectUC "github.com/taskboard/backend/usecase/project"
)

// Guard decorates project-scoped routes with membership and ownership
// checks. The decision is terminal per request: on failure the handler
// never runs and no task, subtask or comment row is touched.
type Guard struct {
	projects *projectUC.UseCase
	adapter  *httpcontext.Adapter
	logger   *zap.Logger
}

func NewGuard(projects *projectUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *Guard {
	if adapter == nil {
		adapter = httpcontext.NewAdapter(5 * time.Second)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{projects: projects, adapter: adapter, logger: logger}
}

// RequireMember admits project members and records their role on the request.
func (g *Guard) RequireMember(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return g.check(next, false)
}

// RequireOwner admits only the project owner.
func (g *Guard) RequireOwner(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return g.check(next, true)
}

func (g *Guard) check(next fasthttp.RequestHandler, ownerOnly bool) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		userID, _ := ctx.UserValue("user_id").(string)
		projectID, _ := ctx.UserValue("id").(string)
		if userID == "" || projectID == "" {
			deny(ctx, fasthttp.StatusForbidden, domain.ErrCodeForbidden, "not a member of this project")
			return
		}

		stdCtx, cancel := g.adapter.Attach(ctx)
		defer cancel()

		var member *domain.Member
		var err error
		if ownerOnly {
			member, err = g.projects.CheckOwnership(stdCtx, userID, projectID)
		} else {
			member, err = g.projects.CheckMembership(stdCtx, userID, projectID)
		}
		if err != nil {
			if domain.IsDomainError(err, domain.ErrCodeForbidden) {
				deny(ctx, fasthttp.StatusForbidden, domain.ErrCodeForbidden, err.Error())
				return
			}
			g.logger.Error("membership check failed",
				zap.String("project_id", projectID),
				zap.Error(err))
			deny(ctx, fasthttp.StatusInternalServerError, domain.ErrCodeUnavailable, "storage unavailable")
			return
		}

		ctx.SetUserValue("member_role", member.Role)
		next(ctx)
	}
}
