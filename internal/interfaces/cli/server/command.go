package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	billingUC "github.com/fitmo-inc/fitmo/internal/application/billing/usecases"
	commissionUC "github.com/fitmo-inc/fitmo/internal/application/commission/usecases"
	organizationUC "github.com/fitmo-inc/fitmo/internal/application/organization/usecases"
	planUC "github.com/fitmo-inc/fitmo/internal/application/plan/usecases"
	subscriptionUC "github.com/fitmo-inc/fitmo/internal/application/subscription/usecases"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/auth"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/cache"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/config"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/database"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/email"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/migration"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/payment"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/ratelimit"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/repository"
	"github.com/fitmo-inc/fitmo/internal/interfaces/http/handlers"
	"github.com/fitmo-inc/fitmo/internal/interfaces/http/middleware"
	"github.com/fitmo-inc/fitmo/internal/interfaces/http/routes"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Fitmo billing HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server",
		"environment", env,
		"auto_migrate", autoMigrate)

	if err := biztime.Init(cfg.Billing.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := handleMigrations(env); err != nil {
		logger.Fatal("migration handling failed", "error", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	var planCache planUC.PlanCache
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, plan cache disabled", "error", err)
		planCache = cache.NewNoopPlanCache()
	} else {
		planCache = cache.NewRedisPlanCache(redisClient, logger.NewLogger())
	}
	pingCancel()

	gormDB := database.Get()
	txManager := db.NewTransactionManager(gormDB)

	planRepo := repository.NewPlanRepository(gormDB, logger.NewLogger())
	subscriptionRepo := repository.NewTrainerSubscriptionRepository(gormDB, logger.NewLogger())
	orgRepo := repository.NewOrganizationRepository(gormDB, logger.NewLogger())
	invitationRepo := repository.NewInvitationRepository(gormDB, logger.NewLogger())
	overageRepo := repository.NewSeatOverageRepository(gormDB, logger.NewLogger())
	billingSubRepo := repository.NewBillingSubscriptionRepository(gormDB, logger.NewLogger())
	invoiceRepo := repository.NewInvoiceRepository(gormDB, logger.NewLogger())
	bookingRepo := repository.NewBookingRepository(gormDB, logger.NewLogger())

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	mailer := email.NewSMTPEmailService(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.Username,
		Password:    cfg.Email.Password,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		BaseURL:     cfg.Email.BaseURL,
	})

	gateway := payment.NewStripeGateway(payment.StripeConfig{
		SecretKey:      cfg.Stripe.SecretKey,
		APIBaseURL:     cfg.Stripe.APIBaseURL,
		TimeoutSeconds: cfg.Stripe.TimeoutSeconds,
	}, logger.NewLogger())
	webhookVerifier := payment.NewWebhookVerifier(cfg.Stripe.WebhookSecret, payment.DefaultSignatureTolerance)

	commissionPolicy := subscription.NewCommissionPolicy(cfg.Billing.DefaultCommissionRate)

	listPlansUC := planUC.NewListPlansUseCase(planRepo, planCache, logger.NewLogger())
	getPlanUC := planUC.NewGetPlanUseCase(planRepo, logger.NewLogger())

	getMySubscriptionUC := subscriptionUC.NewGetMySubscriptionUseCase(subscriptionRepo, planRepo, orgRepo, logger.NewLogger())
	startSubscriptionUC := subscriptionUC.NewStartSubscriptionUseCase(subscriptionRepo, planRepo, logger.NewLogger())
	upgradePlanUC := subscriptionUC.NewUpgradePlanUseCase(subscriptionRepo, planRepo, logger.NewLogger())
	previewUpgradeUC := subscriptionUC.NewPreviewUpgradeUseCase(subscriptionRepo, planRepo, logger.NewLogger())
	cancelSubscriptionUC := subscriptionUC.NewCancelSubscriptionUseCase(subscriptionRepo, billingSubRepo, gateway, logger.NewLogger())

	createOrganizationUC := organizationUC.NewCreateOrganizationUseCase(orgRepo, planRepo, logger.NewLogger())
	getOrganizationUC := organizationUC.NewGetOrganizationUseCase(orgRepo, planRepo, logger.NewLogger())
	addTrainerUC := organizationUC.NewAddTrainerUseCase(orgRepo, planRepo, subscriptionRepo, txManager, logger.NewLogger())
	removeTrainerUC := organizationUC.NewRemoveTrainerUseCase(orgRepo, subscriptionRepo, txManager, logger.NewLogger())
	inviteTrainerUC := organizationUC.NewInviteTrainerUseCase(orgRepo, invitationRepo, planRepo, mailer, logger.NewLogger())
	listTrainersUC := organizationUC.NewListTrainersUseCase(orgRepo, subscriptionRepo, logger.NewLogger())
	purchaseSeatsUC := organizationUC.NewPurchaseSeatsUseCase(orgRepo, planRepo, overageRepo, txManager, logger.NewLogger())
	changeOrgPlanUC := organizationUC.NewChangeOrgPlanUseCase(orgRepo, planRepo, subscriptionRepo, txManager, logger.NewLogger())
	listMyInvitationsUC := organizationUC.NewListMyInvitationsUseCase(invitationRepo, orgRepo, logger.NewLogger())
	acceptInvitationUC := organizationUC.NewAcceptInvitationUseCase(orgRepo, invitationRepo, planRepo, subscriptionRepo, txManager, logger.NewLogger())

	applyCommissionUC := commissionUC.NewApplyBookingCommissionUseCase(bookingRepo, subscriptionRepo, planRepo, commissionPolicy, logger.NewLogger())
	getEarningsUC := commissionUC.NewGetEarningsUseCase(bookingRepo, logger.NewLogger())

	createCheckoutUC := billingUC.NewCreateCheckoutUseCase(planRepo, subscriptionRepo, orgRepo, gateway, logger.NewLogger())
	listInvoicesUC := billingUC.NewListMyInvoicesUseCase(invoiceRepo, subscriptionRepo, orgRepo, logger.NewLogger())
	getInvoiceUC := billingUC.NewGetInvoiceUseCase(invoiceRepo, subscriptionRepo, orgRepo, logger.NewLogger())
	processWebhookUC := billingUC.NewProcessWebhookEventUseCase(billingSubRepo, invoiceRepo, subscriptionRepo, orgRepo, planRepo, txManager, logger.NewLogger())

	planHandler := handlers.NewPlanHandler(listPlansUC, getPlanUC)
	subscriptionHandler := handlers.NewSubscriptionHandler(getMySubscriptionUC, startSubscriptionUC, upgradePlanUC, previewUpgradeUC, cancelSubscriptionUC)
	organizationHandler := handlers.NewOrganizationHandler(createOrganizationUC, getOrganizationUC, addTrainerUC, removeTrainerUC, inviteTrainerUC, listTrainersUC, purchaseSeatsUC, changeOrgPlanUC)
	invitationHandler := handlers.NewInvitationHandler(listMyInvitationsUC, acceptInvitationUC)
	commissionHandler := handlers.NewCommissionHandler(applyCommissionUC, getEarningsUC)
	billingHandler := handlers.NewBillingHandler(createCheckoutUC, listInvoicesUC, getInvoiceUC)
	webhookHandler := handlers.NewWebhookHandler(webhookVerifier, processWebhookUC)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, logger.NewLogger())
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(
		ratelimit.NewRedisRateLimiter(redisClient),
		ratelimit.RateLimitConfig{
			RequestsPerMinute: cfg.Server.RateLimitPerMinute,
			RequestsPerHour:   cfg.Server.RateLimitPerHour,
		},
		logger.NewLogger(),
	)

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestLogger(logger.NewLogger()))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	engine.Use(rateLimitMiddleware.Limit())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupPlanRoutes(engine, &routes.PlanRouteConfig{
		PlanHandler: planHandler,
	})
	routes.SetupSubscriptionRoutes(engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: subscriptionHandler,
		CommissionHandler:   commissionHandler,
		BillingHandler:      billingHandler,
		AuthMiddleware:      authMiddleware,
	})
	routes.SetupOrganizationRoutes(engine, &routes.OrganizationRouteConfig{
		OrganizationHandler: organizationHandler,
		InvitationHandler:   invitationHandler,
		AuthMiddleware:      authMiddleware,
	})
	routes.SetupBillingRoutes(engine, &routes.BillingRouteConfig{
		BillingHandler:    billingHandler,
		CommissionHandler: commissionHandler,
		WebhookHandler:    webhookHandler,
		AuthMiddleware:    authMiddleware,
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func handleMigrations(environment string) error {
	if skipMigrationCheck {
		logger.Info("skipping migration check")
		return nil
	}

	if autoMigrate {
		if environment == "production" {
			logger.Warn("auto-migration is enabled in production environment - this is not recommended!")
		}

		logger.Info("running auto-migration")
		migrationManager := migration.NewManager(environment)
		if err := migrationManager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		logger.Info("auto-migration completed successfully")
		return nil
	}

	logger.Info("checking migration status")

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		logger.Warn("failed to get migration scripts path", "error", err)
		return nil
	}

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	if migrateStrategy, ok := strategy.(*migration.GolangMigrateStrategy); ok {
		version, dirty, err := migrateStrategy.GetVersion(database.Get())
		if err != nil {
			logger.Warn("failed to check migration status", "error", err)
		} else {
			logger.Info("current migration version",
				"version", version,
				"dirty", dirty)
		}
	}

	logger.Info("migration check completed")

	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "development", "dev":
		return "debug"
	case "test", "testing":
		return "test"
	case "debug":
		return "debug"
	case "release":
		return "release"
	default:
		return "debug"
	}
}
