// Package router はHTTPルーティングを構成します。
package router

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "uventory_backend/internal/feature/auth/transport/handler"
	"uventory_backend/internal/feature/auth/transport/guard"
	producthandler "uventory_backend/internal/feature/products/transport/handler"
	userhandler "uventory_backend/internal/feature/users/transport/handler"
	platformhandler "uventory_backend/internal/platform/http/handler"
	"uventory_backend/internal/platform/http/middleware"
	"uventory_backend/internal/platform/http/response"
)

// APIPrefix はすべてのAPIルートの接頭辞です。
const APIPrefix = "/api/v1"

// Deps はルーターが必要とするハンドラーとミドルウェアの依存です。
type Deps struct {
	Auth     *authhandler.AuthHandler
	Users    *userhandler.UserHandler
	Products *producthandler.ProductHandler
	Status   *platformhandler.StatusHandler

	Credential guard.Strategy
	Bearer     guard.Strategy
	Limiter    middleware.Limiter

	Logger      *slog.Logger
	CORSOrigins []string
}

// HealthzPath は導通確認用のパスです。レート制限の対象外になります。
const HealthzPath = "/healthz"

// NewRouter はミドルウェアと全ルートを登録したginエンジンを返します。
// ロガー、CORS、レート制限はエンジン全体に掛かり、未定義ルートやプリフライトにも適用されます。
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, err any) {
			logger.Error("panic recovered", "error", err, "path", c.Request.URL.Path)
			response.Abort(c, http.StatusInternalServerError, response.MsgInternal)
		}),
		middleware.RequestLogger(logger),
		middleware.CORS(d.CORSOrigins),
		middleware.RateLimit(d.Limiter, HealthzPath),
	)
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path))
	})

	r.GET(HealthzPath, platformhandler.Liveness)
	r.HEAD(HealthzPath, platformhandler.Liveness)

	api := r.Group(APIPrefix)

	// 認証不要
	api.GET("/", d.Status.Welcome)
	api.GET("/health", d.Status.Health)
	api.POST("/auth/register", d.Auth.Register)
	// ログイン（資格情報をガードで検証してからJWT発行）
	api.POST("/auth/login", guard.Require(d.Credential), d.Auth.Login)

	// 認証必須のルート
	// → リクエストヘッダーに Bearer トークンが必要になる
	auth := api.Group("/")
	auth.Use(guard.Require(d.Bearer))
	{
		auth.GET("/auth/profile", d.Auth.Profile)

		auth.GET("/users", d.Users.List)
		auth.GET("/users/:id", d.Users.Get)
		auth.PATCH("/users/:id", d.Users.Update)
		auth.DELETE("/users/:id", d.Users.Delete)

		auth.POST("/products", d.Products.Create)
		auth.GET("/products", d.Products.List)
		auth.GET("/products/search", d.Products.Search)
		auth.GET("/products/:id", d.Products.Get)
		auth.PATCH("/products/:id", d.Products.Update)
		auth.DELETE("/products/:id", d.Products.Delete)
	}

	return r
}
