package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/domain/repository"
	"linkedin-autoposter/infrastructure/cache"
	"linkedin-autoposter/infrastructure/clients/linkedin"
	"linkedin-autoposter/infrastructure/configuration"
	"linkedin-autoposter/infrastructure/logger"
	"linkedin-autoposter/infrastructure/mail"
	"linkedin-autoposter/infrastructure/persistence"
	"linkedin-autoposter/infrastructure/pubsub"
	"linkedin-autoposter/infrastructure/realtime"
	"linkedin-autoposter/infrastructure/scheduler"
	"linkedin-autoposter/infrastructure/servicebus"
	"linkedin-autoposter/infrastructure/utils"
	httpHandler "linkedin-autoposter/interfaces/http"
	"linkedin-autoposter/server"
	"linkedin-autoposter/usecase"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const jobTimeout = 2 * time.Minute

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

// stores is the persistence selected at startup. Optional parts may be nil.
type stores struct {
	kv     repository.IKeyValue
	states repository.IStateStore
	media  repository.IMedia
	audit  repository.IPublishAudit
}

func main() {
	defer recoverPanic()

	configuration.LoadEnvFromFile("config.env", ".env")
	cfg, err := configuration.Load()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Configuration failed")
		os.Exit(2)
	}
	logger.Configure(cfg.Logger.Format, cfg.Logger.Level)

	// `linkedin-autoposter token <operator>` prints a bearer token for the /api routes.
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := printOperatorToken(cfg, os.Args[2:]); err != nil {
			logger.GetLogger().WithField("error", err).Error("Cannot generate operator token")
			os.Exit(2)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	app := cfg.App
	loc, err := time.LoadLocation(app.Timezone)
	if err != nil {
		logger.GetLogger().WithField("timezone", app.Timezone).WithField("error", err).Warn("Unknown timezone, using UTC")
		loc = time.UTC
	}
	now := func() time.Time { return utils.GetCurrentTime().In(loc) }

	st, err := initiateStores(ctx, cfg, now)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Store initialization failed")
		os.Exit(2)
	}

	tokens := persistence.NewTokenStore(st.kv)
	settingsUC := usecase.NewSettingsUsecase(persistence.NewSettingsRepository(st.kv), usecase.SettingsDefaults{
		Credentials: model.Credentials{ClientID: cfg.LinkedIn.ClientID, ClientSecret: cfg.LinkedIn.ClientSecret},
		PostTypes:   cfg.Share.PostTypes,
	})

	linkedInClient := linkedin.NewLinkedInClient(linkedin.Config{
		APIBaseURL:   cfg.LinkedIn.APIBaseURL,
		APIVersion:   cfg.LinkedIn.APIVersion,
		Timeout:      cfg.LinkedIn.Timeout(),
		MediaTimeout: cfg.LinkedIn.MediaTimeout(),
	})

	oauthUC := usecase.NewOAuthUsecase(usecase.OAuthConfig{
		Endpoint:    cfg.LinkedIn.Endpoint(),
		RedirectURI: cfg.LinkedIn.RedirectURI,
		HTTPClient:  &http.Client{Timeout: cfg.LinkedIn.Timeout()},
	}, settingsUC, tokens, st.states, linkedInClient, now)

	shareHub := realtime.NewShareHub()
	notifiers := []repository.IOutcomeNotifier{shareHub}
	notifiers = append(notifiers, initiateNotifiers(ctx, cfg)...)

	autopostUC := usecase.NewAutopostUsecase(
		usecase.SiteConfig{Name: app.SiteName, URL: app.SiteURL, LogoURL: app.SiteLogoURL},
		settingsUC,
		tokens,
		persistence.NewGalleryRepository(st.kv),
		persistence.NewPublishRecordRepository(st.kv),
		usecase.NewPostPublisher(linkedInClient),
		now,
	).WithMedia(st.media).WithNotifiers(notifiers...)
	if st.audit != nil {
		autopostUC = autopostUC.WithAudit(st.audit)
	}

	expiryMonitor := usecase.NewExpiryMonitor(usecase.ExpiryConfig{
		SiteName:   app.SiteName,
		BaseURL:    app.BaseURL,
		AdminEmail: cfg.Mail.AdminEmail,
	}, tokens, persistence.NewExpiryEmailStateRepository(st.kv), mail.NewSMTPMailer(cfg.Mail), now)

	jobs := scheduler.NewScheduler(loc, jobTimeout)
	if err := jobs.Add(ctx, "expiry-check", cfg.Scheduler.ExpiryCheckSpec, func(jobCtx context.Context) {
		if err := expiryMonitor.Check(jobCtx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Token expiry check failed")
		}
	}); err != nil {
		logger.GetLogger().WithField("spec", cfg.Scheduler.ExpiryCheckSpec).WithField("error", err).Error("Cannot schedule expiry check")
	}
	g.Go(func() error {
		return jobs.Run(ctx)
	})

	router := server.InitiateRouter(server.RouterConfig{
		SecretKey:      app.SecretKey,
		AllowedOrigins: app.AllowedOrigins,
	}, server.Handlers{
		Health:      httpHandler.NewHealthHandler(),
		OAuth:       httpHandler.NewLinkedInOAuthHandler(oauthUC),
		Share:       httpHandler.NewShareHandler(autopostUC),
		Settings:    httpHandler.NewSettingsHandler(settingsUC),
		ShareStream: shareHub.Serve,
	})

	logger.GetLogger().WithFields(map[string]interface{}{"port": app.Port, "tls": app.TLSEnabled, "vendor": cfg.Database.Vendor}).Info("Starting application")
	httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.Port),
		Handler: router,
	}
	g.Go(func() error {
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
			logger.GetLogger().WithFields(map[string]interface{}{"cert": cert, "key": key}).Info("Serving HTTPS")
			if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	_ = httpServer.Shutdown(shutdownCtx)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// initiateStores picks the key-value backend from Database.Vendor. Redis is
// also used for OAuth state when reachable; Mongo and MySQL are optional.
func initiateStores(ctx context.Context, cfg *configuration.Config, now func() time.Time) (stores, error) {
	var st stores

	var redisClient *redis.Client
	if cfg.RedisClient.Host != "" {
		client, err := cache.NewCache(
			ctx,
			fmt.Sprintf("%s:%s", cfg.RedisClient.Host, cfg.RedisClient.Port),
			cfg.RedisClient.Username,
			cfg.RedisClient.Password,
			cfg.RedisClient.DB,
		)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis not available - OAuth state kept in memory")
		} else {
			redisClient = client
			logger.GetLogger().Info("Redis client initialized successfully.")
		}
	}

	switch cfg.Database.Vendor {
	case "postgres":
		db, err := persistence.NewPostgreSQLDB(cfg.Database.Psql)
		if err != nil {
			return st, fmt.Errorf("postgres: %w", err)
		}
		if err := persistence.EnsureSettingsSchema(db); err != nil {
			return st, fmt.Errorf("postgres schema: %w", err)
		}
		st.kv = persistence.NewKeyValueRepository(db)
	case "mssql":
		db, err := persistence.NewMSSQLDB(cfg.Database.Mssql)
		if err != nil {
			return st, fmt.Errorf("mssql: %w", err)
		}
		if err := persistence.EnsureSettingsSchemaMSSQL(db); err != nil {
			return st, fmt.Errorf("mssql schema: %w", err)
		}
		st.kv = persistence.NewKeyValueRepositoryMSSQL(db)
	case "redis":
		if redisClient == nil {
			return st, errors.New("redis vendor selected but redis is not available")
		}
		st.kv = cache.NewKeyValueCache(redisClient)
	case "memory":
		logger.GetLogger().Warn("Using in-memory store; settings and tokens are lost on restart")
		st.kv = persistence.NewMemoryKeyValue()
	default:
		return st, fmt.Errorf("unknown store vendor %q", cfg.Database.Vendor)
	}

	if redisClient != nil {
		st.states = cache.NewStateCache(redisClient)
	} else {
		st.states = cache.NewMemoryStateStore(now)
	}

	st.media = persistence.NewMemoryMedia(cfg.Share.MediaURLs)
	if cfg.Database.Mongo.Host != "" {
		mongoDb, err := persistence.NewMongoDb(ctx, cfg.Database.Mongo)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("MongoDB not available - continuing without media library")
		} else {
			st.media = persistence.NewMediaRepository(mongoDb)
			logger.GetLogger().Info("MongoDB connected successfully")
		}
	}

	if cfg.Database.MySql.Host != "" {
		auditDb, err := persistence.NewAuditDB(cfg.Database.MySql)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("MySQL not available - publish audit disabled")
		} else if err := persistence.EnsurePublishAuditSchema(auditDb); err != nil {
			logger.GetLogger().WithField("error", err).Warn("failed ensuring publish audit schema - publish audit disabled")
		} else {
			st.audit = persistence.NewPublishAuditRepository(auditDb)
		}
	}
	return st, nil
}

func initiateNotifiers(ctx context.Context, cfg *configuration.Config) []repository.IOutcomeNotifier {
	var out []repository.IOutcomeNotifier

	if cfg.Pubsub.ProjectID != "" && cfg.Pubsub.TopicID != "" {
		client, err := pubsub.NewPubSub(ctx, cfg.Pubsub.ProjectID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while instantiate PubSub")
		} else if publisher, err := pubsub.NewOutcomePublisher(ctx, client, cfg.Pubsub.TopicID); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while preparing PubSub topic")
		} else {
			out = append(out, publisher)
		}
	}

	if cfg.ServiceBus.Namespace != "" && cfg.ServiceBus.Queue != "" {
		client, err := servicebus.NewServiceBus(cfg.ServiceBus.Namespace)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Azure Service Bus not available - continuing without Service Bus notifications")
		} else if sender, err := servicebus.NewOutcomeSender(client, cfg.ServiceBus.Queue); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Azure Service Bus sender failed")
		} else {
			out = append(out, sender)
		}
	}
	return out
}

func printOperatorToken(cfg *configuration.Config, args []string) error {
	operator := "admin"
	if len(args) > 0 && args[0] != "" {
		operator = args[0]
	}
	token, err := utils.IssueOperatorToken(operator, cfg.App.SecretKey, utils.GetCurrentTime(), utils.OperatorTokenTTL)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
