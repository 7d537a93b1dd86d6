package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/pluri-rh/timesheet-manager/backend/internal/config"
	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
	"github.com/pluri-rh/timesheet-manager/backend/internal/handler"
	"github.com/pluri-rh/timesheet-manager/backend/internal/notifier"
	"github.com/pluri-rh/timesheet-manager/backend/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("impossible de charger la configuration", "error", err)
		return
	}

	/**********************************************
	 * base de données
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("impossible de créer le pool de connexions", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect by itself, ping to fail fast
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("impossible de joindre la base de données", "error", err)
		return
	}

	/**********************************************
	 * repository
	 **********************************************/
	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * compte agence initial
	 **********************************************/
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("impossible de hacher le mot de passe initial", "error", err)
		return
	}
	agencyName := cfg.InitialAdmin.AgencyName
	initialAdmin := &domain.Profile{
		Email:        cfg.InitialAdmin.Email,
		PasswordHash: string(passwordHash),
		Role:         domain.RoleAgence,
		AgencyName:   &agencyName,
		FirstName:    cfg.InitialAdmin.FirstName,
		LastName:     cfg.InitialAdmin.LastName,
	}
	if err := repo.CreateProfile(initialAdmin); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "profiles_email_key":
				// the initial account already exists, nothing to do
			default:
				logger.Error("impossible de créer le compte agence initial", "error", err)
				return
			}
		default:
			logger.Error("impossible de créer le compte agence initial", "error", err)
			return
		}
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("impossible de se connecter à rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("impossible d'ouvrir un canal rabbitmq", "error", err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		"email_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("impossible de déclarer la file email", "error", err)
		return
	}

	/**********************************************
	 * redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	/**********************************************
	 * notifier + handler
	 **********************************************/
	notif := notifier.New(cfg, ch)

	handler, err := handler.NewHandler(cfg, repo, notif, rdb)
	if err != nil {
		logger.Error("impossible de créer le handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * serveur HTTP
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("démarrage du serveur...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("impossible de démarrer le serveur", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("arrêt du serveur...")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("arrêt du serveur échoué", slog.String("error", err.Error()))
	}
	logger.Info("serveur arrêté")
}
