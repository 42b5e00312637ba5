package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskboard/backend/api/transport"
	"github.com/taskboard/backend/pkg/httpcontext"
	"github.com/taskboard/backend/pkg/sessiontoken"
	authUC "github.com/taskboard/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc         *authUC.UseCase
	codec      *sessiontoken.Codec
	cookieName string
}

func NewAuthHandler(uc *authUC.UseCase, codec *sessiontoken.Codec, cookieName string, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	if cookieName == "" {
		cookieName = "session"
	}
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		codec:       codec,
		cookieName:  cookieName,
	}
}

// @Summary Create an account
// @Tags auth
// @Router /signup [post]
func (h *AuthHandler) Signup(ctx *fasthttp.RequestCtx) {
	var req transport.SignupRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Signup(stdCtx, req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]string{"id": user.ID})
}

// @Summary Log in and receive a session cookie
// @Tags auth
// @Router /login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	token, err := h.codec.Encode(session.ID, session.ExpiresAt)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)
	cookie.SetKey(h.cookieName)
	cookie.SetValue(token)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetExpire(session.ExpiresAt)
	ctx.Response.Header.SetCookie(cookie)

	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"user_id":   session.UserID,
		"user_name": session.UserName,
	})
}

// @Summary Log out, clear the session cookie
// @Tags auth
// @Router /logout [get]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	sessionID, _ := ctx.UserValue("session_id").(string)
	if sessionID != "" {
		stdCtx, cancel := h.requestContext(ctx)
		defer cancel()
		if err := h.uc.Logout(stdCtx, sessionID); err != nil {
			h.logger.Warn("failed to delete session", zap.Error(err))
		}
	}

	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)
	cookie.SetKey(h.cookieName)
	cookie.SetValue("")
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(cookie)

	ctx.Redirect("/login", fasthttp.StatusFound)
}

// @Summary Current user
// @Tags auth
// @Router /me [get]
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Me(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}
