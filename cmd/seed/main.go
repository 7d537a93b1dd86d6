package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pluri-rh/timesheet-manager/backend/internal/config"
	"github.com/pluri-rh/timesheet-manager/backend/internal/repository"
	"github.com/pluri-rh/timesheet-manager/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "opération à exécuter (1: insérer des intérimaires, 2: insérer des relevés d'heures avec jetons)")
	flag.IntVar(&n, "n", 5, "nombre d'enregistrements à insérer")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Lecture de la configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("impossible de lire la configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Création du pool de connexions
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

	// sql.Open ne se connecte pas tout de suite, un ping explicite est requis
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("impossible de se connecter à la base de données", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	// Les fixtures se rattachent toutes au compte agence initial
	agency, err := repo.GetProfileByEmail(cfg.InitialAdmin.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			logger.Error("le compte agence initial n'existe pas, lancer d'abord l'API", slog.String("email", cfg.InitialAdmin.Email))
		default:
			logger.Error("impossible de récupérer le compte agence", slog.String("error", err.Error()))
		}
		return
	}

	switch op {
	case 0:
		logger.Error("aucune opération spécifiée")
	case 1:
		if n <= 0 {
			logger.Error("nombre d'intérimaires invalide")
			return
		}

		profiles, err := seed.SeedInterimaires(repo, agency, n, cfg.Seed.User.Password)
		if err != nil {
			logger.Error("impossible d'insérer les intérimaires", slog.String("error", err.Error()))
			return
		}

		logger.Info("intérimaires insérés", slog.Int("count", len(profiles)))
	case 2:
		if n <= 0 {
			logger.Error("nombre de relevés invalide")
			return
		}

		workers, err := repo.GetInterimairesByAgency(agency.ID)
		if err != nil {
			logger.Error("impossible de récupérer les intérimaires", slog.String("error", err.Error()))
			return
		}

		if err := seed.SeedTimesheets(repo, agency, workers, n); err != nil {
			logger.Error("impossible d'insérer les relevés", slog.String("error", err.Error()))
			return
		}

		logger.Info("relevés insérés", slog.Int("count", n))
	default:
		logger.Error("opération inconnue")
	}
}
