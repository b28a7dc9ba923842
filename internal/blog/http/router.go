package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aussiebroadwan/miniblog/internal/blog/domain"
	"github.com/aussiebroadwan/miniblog/internal/blog/service"
	"github.com/aussiebroadwan/miniblog/internal/blog/store"
	"github.com/aussiebroadwan/miniblog/pkg/httpx"
	"github.com/aussiebroadwan/miniblog/pkg/jwtx"
	"github.com/aussiebroadwan/miniblog/pkg/slogx"

	_ "github.com/aussiebroadwan/miniblog/api/blog" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	errs         errWriter

	store          store.Store
	AuthService    *service.AuthService
	UserService    *service.UserService
	PostService    *service.PostService
	CommentService *service.CommentService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	dev bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		errs:         errWriter{dev: dev},
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		MetricsMiddleware(r.Mux),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPosts()
	r.registerComments()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						MiniBlog API
//	@version					0.1.0
//	@description				A small blogging API: accounts, posts, and comments. Registration
//	@description				and login issue HS256-signed JWT access tokens; mutating a post or
//	@description				comment requires owning it.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/miniblog
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService: r.AuthService,
		UserService: r.UserService,
		errs:        r.errs,
	}

	// Credential endpoints get the strict limit to slow brute force.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerPosts() {
	h := &PostsHandler{PostService: r.PostService, errs: r.errs}

	// Public reads.
	r.Mux.Handle("GET /api/posts",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/posts/search",
		httpx.Chain(http.HandlerFunc(h.HandleSearch),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/posts/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Authenticated surface.
	r.Mux.Handle("GET /api/posts/my-posts",
		httpx.Chain(http.HandlerFunc(h.HandleMyPosts),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/posts",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /api/posts/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/posts/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerComments() {
	h := &CommentsHandler{CommentService: r.CommentService, errs: r.errs}

	r.Mux.Handle("GET /api/posts/{id}/comments",
		httpx.Chain(http.HandlerFunc(h.HandleListForPost),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/comments/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /api/comments/my-comments",
		httpx.Chain(http.HandlerFunc(h.HandleMyComments),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/posts/{id}/comments",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /api/comments/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/comments/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}

// actorFromContext builds the acting user from the verified claims that
// AuthnMiddleware stashed in the context.
func actorFromContext(ctx context.Context) (domain.Actor, bool) {
	claims := httpx.ClaimsFromContext(ctx)
	if claims == nil {
		return domain.Actor{}, false
	}

	id, err := claims.UserID()
	if err != nil {
		return domain.Actor{}, false
	}

	return domain.Actor{
		ID:       id,
		Username: claims.Username,
		Email:    claims.Email,
	}, true
}
