package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
	"github.com/redis/go-redis/v9"

	"github.com/pluri-rh/timesheet-manager/backend/internal/config"
	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
	"github.com/pluri-rh/timesheet-manager/backend/internal/notifier"
	"github.com/pluri-rh/timesheet-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	notifier    *notifier.Notifier
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notif *notifier.Notifier, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	fr := fr.New()
	uni := ut.New(fr, fr)
	trans, _ := uni.GetTranslator("fr")
	if err := fr_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		notifier:    notif,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// authentification
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Validation routes are public: the emailed token is the credential.
	h.Mux.Route("/validation/{token}", func(r chi.Router) {
		r.Get("/", h.ResolveValidationToken)
		r.Post("/decision", h.DecideValidation)
	})

	// everything below requires a session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myProfile)
			r.Get("/", h.GetMyProfile)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/interimaires", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAgence}))
			r.Use(h.myProfile)
			r.Post("/", h.CreateInterimaire)
			r.Get("/", h.GetMyInterimaires)
		})

		r.Route("/timesheets", func(r chi.Router) {
			r.Use(h.myProfile)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAgence, domain.RoleInterimaire})).Post("/", h.SubmitTimesheet)
			r.Get("/", h.GetTimesheets)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.timesheetRecord)
				r.Get("/", h.GetTimesheet)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAgence}))
			r.Use(h.myProfile)
			r.Get("/stats", h.GetAgencyStats)
		})
	})
}
