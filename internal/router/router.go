package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	authHandler "github.com/labfetch/labfetch-api/internal/handler/auth"
	"github.com/labfetch/labfetch-api/internal/handler/health"
	pickupHandler "github.com/labfetch/labfetch-api/internal/handler/pickup"
	promHandler "github.com/labfetch/labfetch-api/internal/handler/prometheus"
	settingsHandler "github.com/labfetch/labfetch-api/internal/handler/settings"
	"github.com/labfetch/labfetch-api/internal/middleware"
)

type Config struct {
	Logger         zerolog.Logger
	Mode           string
	ExposeErrors   bool
	CORSConfig     middleware.CORSConfig
	RequestTimeout time.Duration
	MaxUploadBytes int64
	// MaxBodyBytes caps JSON bodies on every route that reads one, uploads aside.
	MaxBodyBytes     int64
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	RateTTL          time.Duration
	HSTS             bool
}

type Handlers struct {
	Health   *health.Handler
	Metrics  *promHandler.Handler
	Auth     *authHandler.Handler
	Pickups  *pickupHandler.Handler
	Settings *settingsHandler.Handler
	// Uploads serves stored photos; it is mounted at UploadsPrefix.
	Uploads       http.Handler
	UploadsPrefix string
}

type Router struct {
	engine *gin.Engine
	auth   *middleware.AuthMiddleware
	h      Handlers
	config Config
}

func NewRouter(auth *middleware.AuthMiddleware, h Handlers, config Config) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = 25 << 20
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = 1 << 20
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	security := middleware.DefaultSecurityConfig()
	security.HSTS = config.HSTS

	engine.Use(
		middleware.RequestID(),
		middleware.ExposeErrors(config.ExposeErrors),
		middleware.Logger(config.Logger),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.SecurityHeaders(security),
		middleware.CORS(config.CORSConfig),
	)
	if h.Metrics != nil {
		engine.Use(h.Metrics.Middleware())
	}

	return &Router{engine: engine, auth: auth, h: h, config: config}
}

func (r *Router) Setup() *gin.Engine {
	r.h.Health.RegisterRoutes(r.engine)
	if r.h.Metrics != nil {
		r.engine.GET("/metrics", r.h.Metrics.Handler())
	}
	if r.h.Uploads != nil {
		uploads := gin.WrapH(r.h.Uploads)
		cache := middleware.Cache(middleware.CacheConfig{MaxAge: 86400})
		r.engine.GET(r.h.UploadsPrefix+"/*filepath", cache, uploads)
		r.engine.HEAD(r.h.UploadsPrefix+"/*filepath", cache, uploads)
	}

	api := r.engine.Group("/api")

	timeout := middleware.Timeout(r.config.RequestTimeout)
	body := middleware.SizeLimit(r.config.MaxBodyBytes)
	admin := []gin.HandlerFunc{
		r.auth.Authenticate(),
		middleware.Cache(middleware.NoStoreConfig()),
		timeout,
	}
	public := []gin.HandlerFunc{timeout, body}

	submit := public
	if r.config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  r.config.RateLimit,
			Burst: r.config.RateBurst,
			TTL:   r.config.RateTTL,
		})
		submit = append([]gin.HandlerFunc{limiter.RateLimit()}, public...)
	}

	r.h.Pickups.RegisterRoutes(api, pickupHandler.Routes{
		Public: submit,
		// No timeout: streams live until the client disconnects.
		Stream: []gin.HandlerFunc{r.auth.AuthenticateStream()},
		Admin:  admin,
		Update: []gin.HandlerFunc{body},
		Upload: []gin.HandlerFunc{middleware.SizeLimit(r.config.MaxUploadBytes)},
	})
	r.h.Settings.RegisterRoutes(api, settingsHandler.Routes{
		Public: public,
		Admin:  append(append([]gin.HandlerFunc{}, admin...), body),
	})
	r.h.Auth.RegisterRoutes(api, authHandler.Routes{
		Public: public,
		Admin:  admin,
	})

	return r.engine
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
