package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/gymstats/achievements"
	gymstatsmcp "github.com/2beens/liftlog/internal/gymstats/mcp"
	"github.com/2beens/liftlog/internal/gymstats/progression"
	"github.com/2beens/liftlog/internal/gymstats/sets"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
	"github.com/2beens/liftlog/internal/kvstore"
	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

const redisKeyPrefix = "liftlog:"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	rateLimiter    middleware.RequestRateLimiter
	authMiddleware *middleware.AuthMiddlewareHandler

	setsService         *sets.Service
	workoutsService     *workouts.Service
	achievementsService *achievements.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	APISecretHash           string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbParams := db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	}

	if params.Config.RunMigrations {
		if err := db.Migrate(dbParams); err != nil {
			return nil, fmt.Errorf("db migrate: %w", err)
		}
	}

	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("liftlog", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "liftlog-backend", rdb)
	if err != nil {
		return nil, err
	}

	var store kvstore.Store
	if params.Config.UseRedisStore {
		log.Debugln("using redis kv store")
		store = kvstore.NewRedisStore(rdb, redisKeyPrefix)
	} else {
		log.Warnf("using in-memory kv store (%d MB), unlocked achievements are lost on eviction or restart", params.Config.MemoryStoreSizeMB)
		store = kvstore.NewMemoryStore(params.Config.MemoryStoreSizeMB)
	}

	s := newServer(
		params.Config,
		params.VersionInfo,
		store,
		redis_rate.NewLimiter(rdb),
		middleware.NewAuthMiddlewareHandler(
			params.APISecretHash,
			kvstore.NewMemoryStore(1),
			time.Duration(params.Config.AuthCacheTTLSeconds)*time.Second,
		),
		sets.NewRepo(dbPool),
		workouts.NewRepo(dbPool),
		metricsManager,
	)
	s.dbPool = dbPool
	s.redisClient = rdb
	s.promRegistry = promRegistry
	s.otelShutdown = otelShutdown

	return s, nil
}

// newServer wires the gymstats services on top of the given storage.
func newServer(
	cfg *config.Config,
	versionInfo string,
	store kvstore.Store,
	rateLimiter middleware.RequestRateLimiter,
	authMiddleware *middleware.AuthMiddlewareHandler,
	setsRepo *sets.Repo,
	workoutsRepo *workouts.Repo,
	metricsManager *metrics.Manager,
) *Server {
	setsService := sets.NewService(setsRepo, store, metricsManager)
	workoutsService := workouts.NewService(workoutsRepo)
	achievementsService := achievements.NewService(
		setsService,
		workoutsService,
		achievements.NewUnlockStore(store),
		metricsManager,
	)

	return &Server{
		config:              cfg,
		versionInfo:         versionInfo,
		rateLimiter:         rateLimiter,
		authMiddleware:      authMiddleware,
		setsService:         setsService,
		workoutsService:     workoutsService,
		achievementsService: achievementsService,
		metricsManager:      metricsManager,
		otelShutdown:        func() {},
	}
}

func (s *Server) routerSetup() http.Handler {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")
	r.HandleFunc("/version", s.handleVersion).Methods("GET").Name("version")

	allowedPerMin := s.config.WriteRateLimitAllowedPerMin

	setsHandler := sets.NewHandler(s.setsService)
	setsHandler.SetupRoutes(r, s.rateLimiter, allowedPerMin, s.metricsManager)

	workoutsHandler := workouts.NewHandler(s.workoutsService)
	workoutsHandler.SetupRoutes(r, s.rateLimiter, allowedPerMin, s.metricsManager)

	progressionHandler := progression.NewHandler(
		s.setsService,
		s.config.RecentSetsWindow,
		s.config.DefaultWeightIncrement,
		s.metricsManager,
	)
	progressionHandler.SetupRoutes(r)

	achievementsHandler := achievements.NewHandler(s.achievementsService)
	achievementsHandler.SetupRoutes(r, s.rateLimiter, allowedPerMin, s.metricsManager)

	mcpServer := gymstatsmcp.NewServer(s.setsService, s.achievementsService, gymstatsmcp.Params{
		Version:          s.versionInfo,
		HistorySize:      s.config.RecentSetsWindow,
		DefaultIncrement: s.config.DefaultWeightIncrement,
	})
	r.PathPrefix("/mcp").Handler(mcpserver.NewStreamableHTTPServer(mcpServer)).Name("mcp")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(s.authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	// cors wraps the router so preflight requests never reach route matching
	return middleware.Cors(s.config.AllowedOrigins)(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, s.versionInfo)
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		err = multierr.Append(err, s.httpServer.Shutdown(ctx))
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		err = multierr.Append(err, s.metricsHttpServer.Shutdown(ctx))
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		err = multierr.Append(err, s.redisClient.Close())
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	for _, shutdownErr := range multierr.Errors(err) {
		log.Errorf(" >>> graceful shutdown: %s", shutdownErr)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
