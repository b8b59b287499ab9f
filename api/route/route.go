package route

import (
	"net/http"
	"time"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/amitshekhariitbhu/go-auth-admin/api/middleware"
	"github.com/amitshekhariitbhu/go-auth-admin/bootstrap"
	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/repository"
	"github.com/amitshekhariitbhu/go-auth-admin/repository/repository_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/repository/repository_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/usecase"
	"github.com/amitshekhariitbhu/go-auth-admin/usecase/usecase_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/usecase/usecase_admin"
	"github.com/amitshekhariitbhu/go-auth-admin/usecase/usecase_auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Usecases are the application services the HTTP layer depends on.
type Usecases struct {
	Auth     domain_auth.AuthUsecase
	Admin    domain_auth.AdminUsecase
	Activity domain_activity.ActivityUsecase
}

type Options struct {
	SecureCookie bool
	// RateLimit guards the credential endpoints; nil disables it.
	RateLimit gin.HandlerFunc
	Logger    *zap.Logger
}

// Setup wires the stores of app into usecases and registers every route.
func Setup(app *bootstrap.Application, router *gin.Engine) {
	Register(router, NewUsecases(app), Options{
		SecureCookie: app.Env.IsProduction(),
		RateLimit:    NewRateLimiter(app),
		Logger:       app.Logger,
	})
}

func NewUsecases(app *bootstrap.Application) Usecases {
	timeout := app.Env.Timeout()
	db := app.Database()
	logger := app.Logger

	userRepo := repository_auth.NewUserRepository(db, domain.CollectionUser, logger)
	activityRepo := repository_activity.NewActivityRepository(db, domain.CollectionActivityLog, logger)
	actorRepo := repository.NewBaseMongoRepository[domain_activity.Actor](db, domain.CollectionUser)

	activity := usecase_activity.NewActivityUsecase(activityRepo, actorRepo, timeout, logger)
	images := usecase.NewProfileImages(app.Storage, logger)
	registrar := usecase_auth.NewRegistrar(userRepo, images, activity, timeout, logger)

	auth := usecase_auth.NewAuthUsecase(
		userRepo,
		registrar,
		images,
		activity,
		repository_auth.NewRedisOTPStore(app.Redis, logger),
		repository_auth.NewRedisPresenceTracker(app.Redis, logger),
		app.Mailer,
		usecase_auth.Config{
			JWTSecret:    app.Env.JWTSecret,
			TokenExpiry:  app.Env.TokenExpiry(),
			OTPTTL:       app.Env.OTPTTL(),
			OnlineWindow: app.Env.OnlineWindow(),
		},
		timeout,
		logger,
	)
	admin := usecase_admin.NewAdminUsecase(userRepo, registrar, images, activity, timeout, logger)

	return Usecases{Auth: auth, Admin: admin, Activity: activity}
}

// NewRateLimiter limits each client IP to RATE_LIMIT_PER_MINUTE requests,
// counted in Redis so every instance shares the budget.
func NewRateLimiter(app *bootstrap.Application) gin.HandlerFunc {
	store := rateli.RedisStore(&rateli.RedisOptions{
		RedisClient: app.Redis,
		Rate:        time.Minute,
		Limit:       uint(app.Env.RateLimitPerMinute),
	})
	log := app.Logger.Named("RateLimiter")
	return rateli.RateLimiter(store, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			log.Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
			})
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}

// Register mounts the user routes at "/", the admin routes at "/admin" and the
// activity log at "/admin/activity".
func Register(router *gin.Engine, uc Usecases, opts Options) {
	rateLimit := opts.RateLimit
	if rateLimit == nil {
		rateLimit = func(c *gin.Context) { c.Next() }
	}

	verify := middleware.VerifyAuth(uc.Auth, opts.Logger)
	admin := middleware.AdminAuth(uc.Auth, opts.Logger)

	NewAuthRouter(uc.Auth, opts.SecureCookie, verify, rateLimit, opts.Logger, router.Group("/"))
	NewAdminRouter(uc.Admin, admin, opts.Logger, router.Group("/admin"))
	NewActivityRouter(uc.Activity, admin, opts.Logger, router.Group("/admin/activity"))
}
