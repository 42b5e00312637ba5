package middleware

import (
	"encoding/json"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskboard/backend/api/transport"
	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/pkg/httpcontext"
	"github.com/taskboard/backend/pkg/sessiontoken"
	authUC "github.com/taskboard/backend/usecase/auth"
)

// SessionAuth verifies the signed session cookie, resolves the session from
// the store and stashes the identity on the request. A missing or invalid
// cookie denies the request before any project data is touched. The store
// lookup runs under the same request deadline the handlers use.
func SessionAuth(codec *sessiontoken.Codec, auth *authUC.UseCase, cookieName string, adapter *httpcontext.Adapter, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if adapter == nil {
		adapter = httpcontext.NewAdapter(5 * time.Second)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			raw := string(ctx.Request.Header.Cookie(cookieName))
			if raw == "" {
				deny(ctx, fasthttp.StatusUnauthorized, domain.ErrCodeUnauthorized, "not logged in")
				return
			}

			sessionID, err := codec.Decode(raw)
			if err != nil {
				logger.Warn("rejected session cookie", zap.Error(err))
				deny(ctx, fasthttp.StatusUnauthorized, domain.ErrCodeUnauthorized, "not logged in")
				return
			}

			stdCtx, cancel := adapter.Attach(ctx)
			session, err := auth.GetSession(stdCtx, sessionID)
			cancel()
			if err != nil {
				if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
					logger.Error("session lookup failed", zap.Error(err))
					deny(ctx, fasthttp.StatusInternalServerError, domain.ErrCodeUnavailable, "storage unavailable")
					return
				}
				deny(ctx, fasthttp.StatusUnauthorized, domain.ErrCodeUnauthorized, "not logged in")
				return
			}

			ctx.SetUserValue("session_id", session.ID)
			ctx.SetUserValue("user_id", session.UserID)
			ctx.SetUserValue("user_name", session.UserName)

			next(ctx)
		}
	}
}

func deny(ctx *fasthttp.RequestCtx, status int, code domain.ErrorCode, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(transport.NewError(string(code), message))
	ctx.SetBody(body)
}
