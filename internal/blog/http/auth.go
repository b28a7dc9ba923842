package http

import (
	"net/http"

	"github.com/aussiebroadwan/miniblog/internal/blog/service"
	"github.com/aussiebroadwan/miniblog/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService

	errs errWriter
}

// HandleRegister creates a new account.
//
//	@Summary		Register a new account
//	@Description	Creates an account and returns a signed access token for it.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Registration details"
//	@Success		201		{object}	domain.AuthResult
//	@Failure		400		{object}	ErrorResponse	"Validation failed"
//	@Failure		409		{object}	ErrorResponse	"Username or email already taken"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errs.writeValidationError(ctx, w, err)
		return
	}

	result, err := h.AuthService.Register(ctx, service.RegisterParams{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, result)
}

// HandleLogin exchanges a username/password pair for an access token.
//
//	@Summary		Log in
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	domain.AuthResult
//	@Failure		400		{object}	ErrorResponse	"Validation failed"
//	@Failure		401		{object}	ErrorResponse	"Invalid username or password"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errs.writeValidationError(ctx, w, err)
		return
	}

	result, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		loginsTotal.WithLabelValues("failure").Inc()
		h.errs.writeServiceError(ctx, w, err)
		return
	}
	loginsTotal.WithLabelValues("success").Inc()

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, result)
}

// HandleMe returns the authenticated user's own account.
//
//	@Summary	Get the current user
//	@Tags		Auth
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	domain.PublicUser
//	@Failure	401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Router		/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		h.errs.write(ctx, w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	user, err := h.UserService.GetByID(ctx, actor.ID)
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, user)
}
