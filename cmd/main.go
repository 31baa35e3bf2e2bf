package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/facades"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/handlers"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/ids"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/middlewares"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/repositories"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-wallet-ledger API
// @version 1.0.0
// @description Wallet ledger: balances, transactions, transfers and spending limits
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

type config struct {
	AppHost   string
	AppPort   string
	LogLevel  string
	LogFormat string
	GRPCPort  string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisBalanceTTL   time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecretKey string
	JWTExp       time.Duration

	LedgerCurrency     string
	LedgerTimezone     string
	DailyLimit         decimal.Decimal
	MonthlyLimit       decimal.Decimal
	LedgerMaxAttempts  int
	LedgerRetryBase    time.Duration
	LedgerStoreTimeout time.Duration
}

// parseConfig loads environment variables from a file and returns
// the application, storage, messaging, JWT and ledger configuration.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var (
		cfg config
		err error
	)
	getInt := func(key, defaultValue string) int {
		if err != nil {
			return 0
		}
		var n int
		if n, err = strconv.Atoi(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
		return n
	}
	getDecimal := func(key, defaultValue string) decimal.Decimal {
		if err != nil {
			return decimal.Zero
		}
		var d decimal.Decimal
		if d, err = decimal.NewFromString(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
		return d
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("APP_LOG_FORMAT", logger.FormatJSON)
	cfg.GRPCPort = getEnv("GRPC_PORT", "50051")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	cfg.PGPort = getInt("POSTGRES_PORT", "5432")
	cfg.PGMaxOpenConns = getInt("POSTGRES_MAX_OPEN_CONNS", "16")
	cfg.PGMaxIdleConns = getInt("POSTGRES_MAX_IDLE_CONNS", "8")

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisPort = getInt("REDIS_PORT", "6379")
	cfg.RedisDB = getInt("REDIS_DB", "0")
	cfg.RedisPoolSize = getInt("REDIS_POOL_SIZE", "10")
	cfg.RedisMinIdleConns = getInt("REDIS_MIN_IDLE_CONNS", "2")
	cfg.RedisBalanceTTL = time.Duration(getInt("REDIS_BALANCE_TTL_SECOND", "30")) * time.Second

	// Kafka config; no brokers disables event publishing
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "wallet-ledger-events")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	cfg.JWTExp = time.Duration(getInt("JWT_EXP_SECOND", "3600")) * time.Second

	// Ledger config
	cfg.LedgerCurrency = getEnv("LEDGER_CURRENCY", "OMR")
	cfg.LedgerTimezone = getEnv("LEDGER_TIMEZONE", "Asia/Muscat")
	cfg.DailyLimit = getDecimal("LEDGER_DEFAULT_DAILY_LIMIT", "0")
	cfg.MonthlyLimit = getDecimal("LEDGER_DEFAULT_MONTHLY_LIMIT", "0")
	cfg.LedgerMaxAttempts = getInt("LEDGER_MAX_ATTEMPTS", "5")
	cfg.LedgerRetryBase = time.Duration(getInt("LEDGER_RETRY_BASE_MS", "10")) * time.Millisecond
	cfg.LedgerStoreTimeout = time.Duration(getInt("LEDGER_STORE_TIMEOUT_MS", "3000")) * time.Millisecond

	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// routeHandlers are the protected wallet endpoints.
type routeHandlers struct {
	balance          http.HandlerFunc
	applyTransaction http.HandlerFunc
	listTransactions http.HandlerFunc
	transfer         http.HandlerFunc
	autoTopUp        http.HandlerFunc
	getSettings      http.HandlerFunc
	updateSettings   http.HandlerFunc
}

// newRouter mounts the wallet API under /api/v1 behind JWT auth.
func newRouter(cfg *config, tokener middlewares.Tokener, h routeHandlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokener))

			r.Get("/wallet/balance", h.balance)
			r.Post("/wallet/transactions", h.applyTransaction)
			r.Get("/wallet/transactions", h.listTransactions)
			r.Post("/wallet/transfer", h.transfer)
			r.Get("/wallet/auto-top-up", h.autoTopUp)
			r.Get("/wallet/settings", h.getSettings)
			r.Patch("/wallet/settings", h.updateSettings)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	return r
}

// run initializes the logger, database, Redis, Kafka writer, HTTP and gRPC
// servers. It wires the ledger and handles graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel,
		logger.WithFormat(cfg.LogFormat),
		logger.WithFields(map[string]any{"service": "gw-wallet-ledger", "version": buildVersion}),
	); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	location, err := time.LoadLocation(cfg.LedgerTimezone)
	if err != nil {
		return fmt.Errorf("load ledger timezone %q: %w", cfg.LedgerTimezone, err)
	}

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("postgres connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer for ledger events
	var eventWriter facades.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		kw := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		}
		defer kw.Close()
		eventWriter = kw
	} else {
		logger.Log.Warn("KAFKA_BROKERS is empty, ledger events are not published")
	}

	idGen := ids.New()

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(cfg.JWTExp),
	)

	// Initialize repositories
	walletReader := repositories.NewWalletReaderRepository(db)
	walletWriter := repositories.NewWalletWriterRepository(db, idGen)
	settingsRepo := repositories.NewSettingsRepository(db)
	balanceCache := repositories.NewBalanceCacheRepository(rdb, cfg.RedisBalanceTTL)

	// Initialize services
	policy := services.NewPolicyEvaluator(walletReader, settingsRepo, services.PolicyConfig{
		DailyLimit:   cfg.DailyLimit,
		MonthlyLimit: cfg.MonthlyLimit,
		Location:     location,
	})
	engine := services.NewTransactionEngine(walletReader, walletWriter, policy, services.EngineConfig{
		Currency:     cfg.LedgerCurrency,
		MaxAttempts:  cfg.LedgerMaxAttempts,
		RetryBase:    cfg.LedgerRetryBase,
		StoreTimeout: cfg.LedgerStoreTimeout,
	})
	transfers := services.NewTransferCoordinator(engine, walletReader, idGen)
	walletService := services.NewWalletService(walletReader, balanceCache)
	settingsService := services.NewSettingsService(settingsRepo)

	events := facades.NewLedgerEventsKafkaFacade(eventWriter, idGen)

	// Initialize handlers
	router := newRouter(cfg, tokens, routeHandlers{
		balance:          handlers.NewGetBalanceHandler(walletService),
		applyTransaction: handlers.NewApplyTransactionHandler(engine, events, walletService),
		listTransactions: handlers.NewListTransactionsHandler(walletService),
		transfer:         handlers.NewTransferHandler(transfers, events, walletService),
		autoTopUp:        handlers.NewAutoTopUpHandler(policy),
		getSettings:      handlers.NewGetSettingsHandler(settingsService),
		updateSettings:   handlers.NewUpdateSettingsHandler(settingsService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// gRPC health service
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.AppHost, cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("grpc listen failed: %w", err)
	}

	// Graceful shutdown
	errChan := make(chan error, 2)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	go func() {
		logger.Log.Infof("gRPC health server listening on %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil && err != grpc.ErrServerStopped {
			errChan <- fmt.Errorf("grpc server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping servers...")
	case serveErr := <-errChan:
		grpcServer.Stop()
		return serveErr
	}

	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}
	grpcServer.GracefulStop()

	logger.Log.Info("Servers stopped gracefully")
	return nil
}
