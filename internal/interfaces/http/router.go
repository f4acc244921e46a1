// Package http wires repositories, use cases, handlers and middleware into
// the Gin engine.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authusecases "github.com/terplist/terplist/internal/application/auth/usecases"
	grantusecases "github.com/terplist/terplist/internal/application/grant/usecases"
	notificationusecases "github.com/terplist/terplist/internal/application/notification/usecases"
	producerusecases "github.com/terplist/terplist/internal/application/producer/usecases"
	rankingusecases "github.com/terplist/terplist/internal/application/ranking/usecases"
	stateusecases "github.com/terplist/terplist/internal/application/state/usecases"
	strainusecases "github.com/terplist/terplist/internal/application/strain/usecases"
	voteusecases "github.com/terplist/terplist/internal/application/vote/usecases"
	"github.com/terplist/terplist/internal/domain/access"
	"github.com/terplist/terplist/internal/infrastructure/auth"
	"github.com/terplist/terplist/internal/infrastructure/cache"
	"github.com/terplist/terplist/internal/infrastructure/config"
	"github.com/terplist/terplist/internal/infrastructure/email"
	"github.com/terplist/terplist/internal/infrastructure/repository"
	"github.com/terplist/terplist/internal/interfaces/http/handlers"
	"github.com/terplist/terplist/internal/interfaces/http/middleware"
	"github.com/terplist/terplist/internal/shared/db"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/services/markdown"
	"github.com/terplist/terplist/internal/shared/utils"
)

// Router holds the configured Gin engine and the pieces the routes need.
type Router struct {
	engine         *gin.Engine
	cfg            *config.Config
	authMiddleware *middleware.AuthMiddleware
	voteLimiter    *cache.RateLimiter
	logger         logger.Interface

	authHandler         *handlers.AuthHandler
	stateHandler        *handlers.StateHandler
	producerHandler     *handlers.ProducerHandler
	voteHandler         *handlers.VoteHandler
	strainHandler       *handlers.StrainHandler
	rankingHandler      *handlers.RankingHandler
	subscriptionHandler *handlers.SubscriptionHandler
	grantHandler        *handlers.GrantHandler
}

// NewRouter builds the full dependency graph on top of the shared database
// and redis connections.
func NewRouter(database *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	if cfg.Server.Mode == "release" || cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	userRepo := repository.NewUserRepository(database, log)
	stateRepo := repository.NewStateRepository(database, log)
	producerRepo := repository.NewProducerRepository(database, log)
	voteRepo := repository.NewVoteRepository(database, log)
	snapshotRepo := repository.NewSnapshotRepository(database, log)
	strainRepo := repository.NewStrainRepository(database, log)
	grantRepo := repository.NewGrantRepository(database, log)
	subscriptionRepo := repository.NewDropSubscriptionRepository(database, log)

	txManager := db.NewTransactionManager(database)
	markdownSvc := markdown.NewService()
	hasher := auth.NewPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	emailSender := email.NewSender(&cfg.Email)

	resolver := access.NewResolver(
		repository.NewProducerDirectory(producerRepo),
		repository.NewGrantSource(grantRepo),
		log.Named("access"),
	)

	dropNotifier := notificationusecases.NewDropChangedNotifier(subscriptionRepo, producerRepo, emailSender, log.Named("notify"))

	registerUC := authusecases.NewRegisterUseCase(userRepo, grantRepo, hasher, jwtService, log)
	loginUC := authusecases.NewLoginUseCase(userRepo, grantRepo, hasher, jwtService, log)
	refreshUC := authusecases.NewRefreshUseCase(userRepo, grantRepo, jwtService, log)

	createStateUC := stateusecases.NewCreateStateUseCase(stateRepo, grantRepo, log)
	listStatesUC := stateusecases.NewListStatesUseCase(stateRepo, log)

	listProducersUC := producerusecases.NewListProducersUseCase(producerRepo, stateRepo, voteRepo, log)
	getProducerUC := producerusecases.NewGetProducerUseCase(producerRepo, voteRepo, markdownSvc, log)
	createProducerUC := producerusecases.NewCreateProducerUseCase(producerRepo, stateRepo, resolver, log)
	updateProducerUC := producerusecases.NewUpdateProducerUseCase(producerRepo, resolver, log)

	castVoteUC := voteusecases.NewCastVoteUseCase(producerRepo, stateRepo, voteRepo, txManager, log)

	createStrainUC := strainusecases.NewCreateStrainUseCase(strainRepo, producerRepo, resolver, dropNotifier, log)
	updateStrainUC := strainusecases.NewUpdateStrainUseCase(strainRepo, producerRepo, resolver, dropNotifier, log)
	deleteStrainUC := strainusecases.NewDeleteStrainUseCase(strainRepo, producerRepo, resolver, log)
	listStrainsUC := strainusecases.NewListStrainsUseCase(strainRepo, producerRepo, markdownSvc, log)
	listDropsUC := strainusecases.NewListDropsUseCase(strainRepo, producerRepo, stateRepo, log)

	ratingHistoryUC := rankingusecases.NewGetRatingHistoryUseCase(producerRepo, snapshotRepo, log)

	subscribeUC := notificationusecases.NewSubscribeUseCase(subscriptionRepo, producerRepo, log)
	unsubscribeUC := notificationusecases.NewUnsubscribeUseCase(subscriptionRepo, producerRepo, log)

	manageGrantsUC := grantusecases.NewManageGrantsUseCase(grantRepo, userRepo, producerRepo, stateRepo, log)

	return &Router{
		engine:         engine,
		cfg:            cfg,
		authMiddleware: middleware.NewAuthMiddleware(jwtService, userRepo, log.Named("auth")),
		voteLimiter:    cache.NewRateLimiter(redisClient, cfg.RateLimit.VotesPerMinute, time.Minute),
		logger:         log,

		authHandler:         handlers.NewAuthHandler(registerUC, loginUC, refreshUC, log),
		stateHandler:        handlers.NewStateHandler(createStateUC, listStatesUC, log),
		producerHandler:     handlers.NewProducerHandler(listProducersUC, getProducerUC, createProducerUC, updateProducerUC, log),
		voteHandler:         handlers.NewVoteHandler(castVoteUC, log),
		strainHandler:       handlers.NewStrainHandler(createStrainUC, updateStrainUC, deleteStrainUC, listStrainsUC, listDropsUC, log),
		rankingHandler:      handlers.NewRankingHandler(ratingHistoryUC, log),
		subscriptionHandler: handlers.NewSubscriptionHandler(subscribeUC, unsubscribeUC, log),
		grantHandler:        handlers.NewGrantHandler(manageGrantsUC, log),
	}
}

// SetupRoutes registers middleware and all routes on the engine.
func (r *Router) SetupRoutes() *gin.Engine {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestLogging(r.logger.Named("http")))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", func(c *gin.Context) {
		utils.OKResponse(c, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
	}

	api.GET("/states", r.stateHandler.ListStates)
	api.GET("/producers", r.producerHandler.ListProducers)
	api.GET("/producers/:id", r.producerHandler.GetProducer)
	api.GET("/producers/:id/ratings", r.rankingHandler.GetRatingHistory)
	api.GET("/producers/:id/strains", r.strainHandler.ListStrains)
	api.GET("/drops", r.strainHandler.ListDrops)

	authed := api.Group("")
	authed.Use(r.authMiddleware.RequireAuth())
	{
		authed.POST("/states", r.stateHandler.CreateState)
		authed.POST("/producers", r.producerHandler.CreateProducer)
		authed.PUT("/producers/:id", r.producerHandler.UpdateProducer)
		authed.PUT("/producers/:id/vote",
			middleware.RateLimit(r.voteLimiter, r.logger.Named("ratelimit")),
			r.voteHandler.CastVote)
		authed.POST("/producers/:id/strains", r.strainHandler.CreateStrain)
		authed.PUT("/strains/:id", r.strainHandler.UpdateStrain)
		authed.DELETE("/strains/:id", r.strainHandler.DeleteStrain)
		authed.PUT("/producers/:id/subscription", r.subscriptionHandler.Subscribe)
		authed.DELETE("/producers/:id/subscription", r.subscriptionHandler.Unsubscribe)

		admin := authed.Group("/admin/grants")
		{
			admin.POST("/producers", r.grantHandler.GrantProducerAdmin)
			admin.DELETE("/producers", r.grantHandler.RevokeProducerAdmin)
			admin.POST("/states", r.grantHandler.GrantStateAdmin)
			admin.DELETE("/states", r.grantHandler.RevokeStateAdmin)
		}
	}

	return r.engine
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
