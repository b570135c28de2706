package museumcatalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/museum-catalog/internal/cache"
	"github.com/magabrotheeeer/museum-catalog/internal/config"
	customjwt "github.com/magabrotheeeer/museum-catalog/internal/lib/jwt"
	"github.com/magabrotheeeer/museum-catalog/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/museum-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/museum-catalog/internal/mediastore"
	"github.com/magabrotheeeer/museum-catalog/internal/migrations"
	authservice "github.com/magabrotheeeer/museum-catalog/internal/services/auth"
	feedbackservice "github.com/magabrotheeeer/museum-catalog/internal/services/feedback"
	museumservice "github.com/magabrotheeeer/museum-catalog/internal/services/museum"
	userservice "github.com/magabrotheeeer/museum-catalog/internal/services/user"
	"github.com/magabrotheeeer/museum-catalog/internal/storage/repository"
)

type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	db, err := repository.New(cfg.StorageConnectionString, loc)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Недоступность брокера не мешает старту: публикация событий best-effort.
	var rabbitConn *amqp.Connection
	var publisher *feedbackservice.RabbitPublisher
	rabbitConn, err = rabbitmq.Connect(cfg.RabbitConnection.AddressRabbit,
		cfg.RabbitConnection.Retries, cfg.RabbitConnection.RetryDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, feedback events disabled", sl.Err(err))
	} else {
		ch, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetCatalogQueues())
		if err != nil {
			logger.Warn("failed to setup rabbitmq channel, feedback events disabled", sl.Err(err))
		} else {
			publisher = feedbackservice.NewRabbitPublisher(ch)
		}
	}

	mediaClient := mediastore.NewClient(cfg.MediaStore)
	jwtMaker := customjwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	userService := userservice.NewUserService(db, logger)
	museumService := museumservice.NewMuseumService(db, mediaClient, cacheRedis,
		cfg.MediaStore.UploadFolder, logger)

	var feedbackService *feedbackservice.FeedbackService
	if publisher != nil {
		feedbackService = feedbackservice.NewFeedbackService(db, publisher, logger)
	} else {
		feedbackService = feedbackservice.NewFeedbackService(db, nil, logger)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, userService, feedbackService, museumService, jwtMaker)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.rabbitConn != nil {
			_ = a.rabbitConn.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
